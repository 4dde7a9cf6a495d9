package quota

import "errors"

// ErrInvalidConfiguration reports allocator input that cannot produce a
// valid table: no chapters, a zero weight sum, negative values, or a floor
// too large for the requested total.
var ErrInvalidConfiguration = errors.New("invalid configuration")

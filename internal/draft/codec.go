package draft

import (
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"
)

// FormatVersion is the serialization format written by Encode.
const FormatVersion = "v1.0.0"

// Encode serializes a draft as JSON.
func Encode(d *Draft) ([]byte, error) {
	if d.FormatVersion == "" {
		d.FormatVersion = FormatVersion
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return b, nil
}

// Decode parses a draft written by Encode. Drafts from a different major
// format version are rejected with ErrIncompatibleFormat.
func Decode(data []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if err := CheckFormat(d.FormatVersion); err != nil {
		return nil, err
	}
	return &d, nil
}

// CheckFormat reports whether a stored format version can be read.
func CheckFormat(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleFormat, v)
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s (supported %s.x)", ErrIncompatibleFormat, v, semver.Major(FormatVersion))
	}
	return nil
}

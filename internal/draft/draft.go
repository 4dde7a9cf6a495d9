// Package draft models an exam draft: its sections, their quota tables and
// the questions selected for each section.
package draft

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/syllabus"
	"github.com/google/uuid"
)

var (
	ErrUnknownSection     = errors.New("unknown section")
	ErrDuplicateSection   = errors.New("section already exists")
	ErrIncompatibleFormat = errors.New("incompatible draft format")
)

// Draft is one exam paper under construction.
type Draft struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description,omitempty"`
	FormatVersion string     `json:"format_version"`
	Sections      []*Section `json:"sections"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// New creates an empty draft with a fresh ID.
func New(code, description string) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:            uuid.New(),
		Code:          strings.TrimSpace(code),
		Description:   description,
		FormatVersion: FormatVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AddSection appends a section for the given chapters. The table is left
// empty until Generate is called.
func (d *Draft) AddSection(name string, chapters []syllabus.Chapter, cfg quota.Config) (*Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("section name is required")
	}
	if _, err := d.Section(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSection, name)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("section %s: no chapters", name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("section %s: %w", name, err)
	}

	chs := make([]syllabus.Chapter, len(chapters))
	copy(chs, chapters)
	s := &Section{Name: name, Chapters: chs, Config: cfg}
	d.Sections = append(d.Sections, s)
	d.Touch()
	return s, nil
}

// Section looks a section up by name, case-insensitive.
func (d *Draft) Section(name string) (*Section, error) {
	for _, s := range d.Sections {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
}

// RemoveSection drops a section and its selections.
func (d *Draft) RemoveSection(name string) error {
	for i, s := range d.Sections {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
			d.Touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownSection, name)
}

// Touch bumps UpdatedAt.
func (d *Draft) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Issues lists every table and selection error across the draft's
// sections, each prefixed with the section name.
func (d *Draft) Issues() []string {
	var out []string
	if len(d.Sections) == 0 {
		return []string{"draft has no sections"}
	}
	for _, s := range d.Sections {
		for _, e := range quota.Validate(s.Table).Errors {
			out = append(out, s.Name+": "+e)
		}
		for _, e := range s.Verdict().Errors {
			out = append(out, s.Name+": "+e)
		}
	}
	return out
}

// Ready reports whether every section's table is valid and its selection
// passes final validation, so the draft can be exported.
func (d *Draft) Ready() bool {
	return len(d.Issues()) == 0
}

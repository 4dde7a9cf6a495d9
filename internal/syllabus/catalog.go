package syllabus

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/examdraft/internal/yamldoc"
)

var (
	ErrUnknownSubject = errors.New("unknown subject")
	ErrUnknownChapter = errors.New("unknown chapter")
)

// Catalog is the chapter reference data for every subject.
type Catalog struct {
	Subjects []Subject `yaml:"subjects" json:"subjects"`
}

var catalogSchema = yamldoc.Schema{
	Name: "catalog",
	Definition: `{
  "type": "object",
  "required": ["subjects"],
  "properties": {
    "subjects": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "chapters"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "chapters": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["code", "name", "level"],
              "properties": {
                "code": {"type": "string", "minLength": 1},
                "name": {"type": "string"},
                "level": {"type": "integer"}
              }
            }
          }
        }
      }
    }
  }
}`,
}

// LoadCatalog reads and validates a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yamldoc.Decode(data, catalogSchema, &c); err != nil {
		return nil, err
	}
	for i := range c.Subjects {
		c.Subjects[i].Name = strings.TrimSpace(c.Subjects[i].Name)
		for j := range c.Subjects[i].Chapters {
			ch := &c.Subjects[i].Chapters[j]
			ch.Code = strings.TrimSpace(ch.Code)
			ch.Name = strings.TrimSpace(ch.Name)
		}
	}
	if err := validateCatalog(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Subject returns the subject with the given name (case-insensitive).
func (c *Catalog) Subject(name string) (Subject, error) {
	for _, s := range c.Subjects {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Subject{}, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
}

// SubjectNames returns subject names in catalog order.
func (c *Catalog) SubjectNames() []string {
	names := make([]string, len(c.Subjects))
	for i, s := range c.Subjects {
		names[i] = s.Name
	}
	return names
}

// Chapters returns the active chapter set for a subject. With no codes it
// returns every chapter; otherwise it returns the named chapters in the
// order given.
func (c *Catalog) Chapters(subject string, codes ...string) ([]Chapter, error) {
	s, err := c.Subject(subject)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		out := make([]Chapter, len(s.Chapters))
		copy(out, s.Chapters)
		return out, nil
	}

	byCode := make(map[string]Chapter, len(s.Chapters))
	for _, ch := range s.Chapters {
		byCode[strings.ToUpper(ch.Code)] = ch
	}

	out := make([]Chapter, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		key := strings.ToUpper(strings.TrimSpace(code))
		ch, ok := byCode[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q in subject %q", ErrUnknownChapter, code, s.Name)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ch)
	}
	return out, nil
}

// Package portfolio defines the portfolio document and its JSON encoding.
package portfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
)

// ErrInvalidDocument is returned when a document is missing one of its
// required top-level fields or cannot be parsed as a document at all.
var ErrInvalidDocument = errors.New("invalid data structure")

// Document is the whole portfolio. It is always stored and replaced as one unit.
type Document struct {
	PersonalInfo PersonalInfo    `json:"personalInfo"`
	Skills       []SkillCategory `json:"skills"`
	Projects     []Project       `json:"projects"`
	Achievements []Achievement   `json:"achievements"`

	Extra Extra `json:"-"`
}

// PersonalInfo is an open object; the client adds keys as it needs them
// (name, title, email, github, linkedin, leetcode, profileImage, resumeFile, ...).
type PersonalInfo map[string]any

func (p PersonalInfo) str(key string) string {
	s, _ := p[key].(string)
	return s
}

// Name returns the "name" entry, or "" if it is unset or not a string.
func (p PersonalInfo) Name() string { return p.str("name") }

// Title returns the "title" entry.
func (p PersonalInfo) Title() string { return p.str("title") }

// Email returns the "email" entry.
func (p PersonalInfo) Email() string { return p.str("email") }

// Each item below carries an Extra so that a document survives a read and
// write unchanged, whatever fields the editor put on it.

type SkillCategory struct {
	Title string      `json:"title"`
	Items []SkillItem `json:"items"`
	Extra Extra       `json:"-"`
}

type SkillItem struct {
	Name  string `json:"name"`
	Extra Extra  `json:"-"`
}

type Project struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Tech         string `json:"tech,omitempty"`
	Link         string `json:"link,omitempty"`
	Image        string `json:"image,omitempty"`
	RequiresAuth bool   `json:"requiresAuth,omitempty"`
	Extra        Extra  `json:"-"`
}

type Achievement struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Extra       Extra  `json:"-"`
}

// Validate checks that all four top-level fields are present. Only presence
// is checked: empty arrays and an empty personalInfo object are accepted,
// while a missing key or an explicit null is not.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	var missing []string
	if doc.PersonalInfo == nil {
		missing = append(missing, "personalInfo")
	}
	if doc.Skills == nil {
		missing = append(missing, "skills")
	}
	if doc.Projects == nil {
		missing = append(missing, "projects")
	}
	if doc.Achievements == nil {
		missing = append(missing, "achievements")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrInvalidDocument, missing)
	}
	return nil
}

// Decode parses a document from r and validates it. Anything that is not a
// JSON object of the right shape is reported as ErrInvalidDocument.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	// The body must be exactly one JSON value.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after document")
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Unmarshal is Decode for a byte slice.
func Unmarshal(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes doc as 2-space indented JSON followed by a newline. HTML
// characters are written as-is so the file stays readable.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Marshal is Encode into a byte slice.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		PersonalInfo: clonePersonalInfo(d.PersonalInfo),
		Skills: cloneEach(d.Skills, func(c SkillCategory) SkillCategory {
			c.Items = cloneEach(c.Items, func(i SkillItem) SkillItem {
				i.Extra = maps.Clone(i.Extra)
				return i
			})
			c.Extra = maps.Clone(c.Extra)
			return c
		}),
		Projects: cloneEach(d.Projects, func(p Project) Project {
			p.Extra = maps.Clone(p.Extra)
			return p
		}),
		Achievements: cloneEach(d.Achievements, func(a Achievement) Achievement {
			a.Extra = maps.Clone(a.Extra)
			return a
		}),
		Extra: maps.Clone(d.Extra),
	}
}

// cloneEach copies s, passing every element through fn. nil stays nil.
func cloneEach[T any](s []T, fn func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

func clonePersonalInfo(p PersonalInfo) PersonalInfo {
	if p == nil {
		return nil
	}
	out := make(PersonalInfo, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the values encoding/json produces for an untyped object.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

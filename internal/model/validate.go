package model

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Field length limits in characters, matching the server's validation
// schema. Counted after NFC normalization so combining sequences measure
// as their composed form.
const (
	maxTitleLen = 200
	maxNameLen  = 100
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all invalid fields of one input. It is
// surfaced to the caller before any persistence happens.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}

	return fmt.Sprintf("model: invalid input: %s", strings.Join(msgs, "; "))
}

// Validate checks a journal input, normalizing the title to NFC first so
// length limits apply to the composed form. Tags may be empty but a nil
// slice is normalized to an empty one so the wire encoding is always [].
func (in *JournalInput) Validate() error {
	in.Title = norm.NFC.String(strings.TrimSpace(in.Title))

	var fields []FieldError

	if in.Title == "" {
		fields = append(fields, FieldError{"title", "title is required"})
	} else if utf8.RuneCountInString(in.Title) > maxTitleLen {
		fields = append(fields, FieldError{"title", "title is too long"})
	}

	if strings.TrimSpace(in.Content) == "" {
		fields = append(fields, FieldError{"content", "content is required"})
	}

	if in.Tags == nil {
		in.Tags = []string{}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// Validate checks a project input. TechStack requires at least one entry.
func (in *ProjectInput) Validate() error {
	in.Name = norm.NFC.String(strings.TrimSpace(in.Name))

	var fields []FieldError

	if in.Name == "" {
		fields = append(fields, FieldError{"name", "project name is required"})
	} else if utf8.RuneCountInString(in.Name) > maxNameLen {
		fields = append(fields, FieldError{"name", "name is too long"})
	}

	if strings.TrimSpace(in.Description) == "" {
		fields = append(fields, FieldError{"description", "description is required"})
	}

	if len(in.TechStack) == 0 {
		fields = append(fields, FieldError{"techStack", "at least one technology is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     JournalInput
		wantField string
	}{
		{
			name:  "valid",
			input: JournalInput{Title: "Learned goroutines", Content: "notes"},
		},
		{
			name:      "missing title",
			input:     JournalInput{Content: "notes"},
			wantField: "title",
		},
		{
			name:      "whitespace title",
			input:     JournalInput{Title: "   ", Content: "notes"},
			wantField: "title",
		},
		{
			name:      "title too long",
			input:     JournalInput{Title: strings.Repeat("x", 201), Content: "notes"},
			wantField: "title",
		},
		{
			name:  "title at the limit",
			input: JournalInput{Title: strings.Repeat("x", 200), Content: "notes"},
		},
		{
			name:  "multi-byte title at the limit",
			input: JournalInput{Title: strings.Repeat("é", 200), Content: "notes"},
		},
		{
			name:      "multi-byte title over the limit",
			input:     JournalInput{Title: strings.Repeat("é", 201), Content: "notes"},
			wantField: "title",
		},
		{
			name:      "missing content",
			input:     JournalInput{Title: "T"},
			wantField: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Fields[0].Field)
		})
	}
}

func TestJournalInputValidate_NormalizesTitle(t *testing.T) {
	t.Parallel()

	// Decomposed input (e + combining acute) composes to a single rune.
	in := JournalInput{Title: "  cafe\u0301  ", Content: "notes"}

	require.NoError(t, in.Validate())
	assert.Equal(t, "caf\u00e9", in.Title)
}

func TestJournalInputValidate_NilTagsBecomeEmpty(t *testing.T) {
	t.Parallel()

	in := JournalInput{Title: "T", Content: "C"}

	require.NoError(t, in.Validate())
	assert.NotNil(t, in.Tags)
	assert.Empty(t, in.Tags)
}

func TestJournalInputValidate_AggregatesAllFields(t *testing.T) {
	t.Parallel()

	in := JournalInput{}

	var verr *ValidationError
	require.ErrorAs(t, in.Validate(), &verr)
	assert.Len(t, verr.Fields, 2, "both title and content are reported")
}

func TestProjectInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     ProjectInput
		wantField string
	}{
		{
			name:  "valid",
			input: ProjectInput{Name: "learnlog", Description: "d", TechStack: []string{"go"}},
		},
		{
			name:      "missing name",
			input:     ProjectInput{Description: "d", TechStack: []string{"go"}},
			wantField: "name",
		},
		{
			name:      "name too long",
			input:     ProjectInput{Name: strings.Repeat("x", 101), Description: "d", TechStack: []string{"go"}},
			wantField: "name",
		},
		{
			name:  "multi-byte name at the limit",
			input: ProjectInput{Name: strings.Repeat("日", 100), Description: "d", TechStack: []string{"go"}},
		},
		{
			name:      "multi-byte name over the limit",
			input:     ProjectInput{Name: strings.Repeat("日", 101), Description: "d", TechStack: []string{"go"}},
			wantField: "name",
		},
		{
			name:      "missing description",
			input:     ProjectInput{Name: "P", TechStack: []string{"go"}},
			wantField: "description",
		},
		{
			name:      "empty tech stack",
			input:     ProjectInput{Name: "P", Description: "d", TechStack: []string{}},
			wantField: "techStack",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Fields[0].Field)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: []FieldError{
		{"title", "title is required"},
		{"content", "content is required"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "title: title is required")
	assert.Contains(t, msg, "content: content is required")
}

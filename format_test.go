package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/learnlog/learnlog/internal/model"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer", 5))

	// Multi-byte runes count as one.
	assert.Equal(t, "héll…", truncate("héllo world", 5))
}

func TestPrintTable_AlignsColumns(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	printTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"a", "short"},
		{"longer-id", "x"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"ID         NAME",
		"a          short",
		"longer-id  x",
	}, lines)
}

func TestPrintTable_NoTrailingSpaces(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	printTable(&buf, []string{"A", "B"}, [][]string{{"wide-cell", "x"}})

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestPrintJournalTable_Empty(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	printJournalTable(&buf, nil)
	assert.Equal(t, "No journal entries\n", buf.String())
}

func TestPrintJournalTable_Rows(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	printJournalTable(&buf, []model.Journal{{
		ID:    "id-1",
		Title: "Learned about channels",
		Tags:  []string{"go", "concurrency"},
		Date:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	assert.Contains(t, out, "id-1")
	assert.Contains(t, out, "Learned about channels")
	assert.Contains(t, out, "go,concurrency")
}

func TestPrintProject_Detail(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	printProject(&buf, &model.Project{
		ID:          "p1",
		Name:        "learnlog",
		Description: "offline-first journal",
		TechStack:   []string{"go", "sqlite"},
		CreatedAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	})

	out := buf.String()
	assert.Contains(t, out, "Name:    learnlog")
	assert.Contains(t, out, "go, sqlite")
	assert.True(t, strings.HasSuffix(out, "offline-first journal\n"))
}

func TestPrintJSON_Indented(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	err := printJSON(&buf, map[string]int{"pending": 3})
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"pending\": 3\n}\n", buf.String())
}

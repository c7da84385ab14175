package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/learnlog/learnlog/internal/model"
)

// statusf prints a progress message to stderr unless quiet mode is set.
func statusf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// onlineBadge renders the connectivity indicator, colored when stdout is
// a terminal.
func onlineBadge(online, syncing bool) string {
	label := "offline"

	switch {
	case syncing:
		label = "syncing"
	case online:
		label = "online"
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return label
	}

	color := "31" // red
	if online {
		color = "32" // green
	}

	return "\x1b[" + color + "m" + label + "\x1b[0m"
}

// formatTime returns a compact timestamp for table display.
func formatTime(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() {
		return t.Local().Format("Jan _2 15:04")
	}

	return t.Local().Format("Jan _2  2006")
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}

func printJournalTable(w io.Writer, journals []model.Journal) {
	if len(journals) == 0 {
		fmt.Fprintln(w, "No journal entries")
		return
	}

	rows := make([][]string, 0, len(journals))
	for _, j := range journals {
		rows = append(rows, []string{
			j.ID,
			formatTime(j.Date),
			truncate(j.Title, 40),
			strings.Join(j.Tags, ","),
		})
	}

	printTable(w, []string{"ID", "DATE", "TITLE", "TAGS"}, rows)
}

func printJournal(w io.Writer, j *model.Journal) {
	fmt.Fprintf(w, "ID:      %s\n", j.ID)
	fmt.Fprintf(w, "Title:   %s\n", j.Title)
	fmt.Fprintf(w, "Date:    %s\n", formatTime(j.Date))
	fmt.Fprintf(w, "Tags:    %s\n", strings.Join(j.Tags, ", "))
	fmt.Fprintf(w, "Updated: %s\n\n", formatTime(j.UpdatedAt))
	fmt.Fprintln(w, j.Content)
}

func printProjectTable(w io.Writer, projects []model.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects")
		return
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ID,
			truncate(p.Name, 30),
			strings.Join(p.TechStack, ","),
			formatTime(p.CreatedAt),
		})
	}

	printTable(w, []string{"ID", "NAME", "TECH", "CREATED"}, rows)
}

func printProject(w io.Writer, p *model.Project) {
	fmt.Fprintf(w, "ID:      %s\n", p.ID)
	fmt.Fprintf(w, "Name:    %s\n", p.Name)
	fmt.Fprintf(w, "Tech:    %s\n", strings.Join(p.TechStack, ", "))
	fmt.Fprintf(w, "Created: %s\n\n", formatTime(p.CreatedAt))
	fmt.Fprintln(w, p.Description)
}

// printTable writes aligned columns. headers and each row must have the
// same length.
func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(w, headers, widths)

	for _, row := range rows {
		printRow(w, row, widths)
	}
}

func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnlog/learnlog/internal/model"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Manage journal entries",
	}

	cmd.AddCommand(newJournalAddCmd())
	cmd.AddCommand(newJournalListCmd())
	cmd.AddCommand(newJournalShowCmd())
	cmd.AddCommand(newJournalEditCmd())
	cmd.AddCommand(newJournalRmCmd())

	return cmd
}

func newJournalAddCmd() *cobra.Command {
	var (
		title   string
		content string
		tags    []string
		dateStr string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a journal entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := model.JournalInput{Title: title, Content: content, Tags: tags}

			if dateStr != "" {
				date, err := time.Parse(time.DateOnly, dateStr)
				if err != nil {
					return fmt.Errorf("parsing --date %q (want YYYY-MM-DD): %w", dateStr, err)
				}

				in.Date = date
			}

			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			j, err := app.Journals.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), j)
			}

			statusf("Created journal entry %s\n", j.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "entry title (required)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "entry content, markdown (required)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	cmd.Flags().StringVar(&dateStr, "date", "", "subject date (YYYY-MM-DD, default today)")

	return cmd
}

func newJournalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			journals, err := app.Journals.List(cmd.Context())
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), journals)
			}

			printJournalTable(cmd.OutOrStdout(), journals)

			return nil
		},
	}
}

func newJournalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			j, err := app.Journals.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), j)
			}

			printJournal(cmd.OutOrStdout(), j)

			return nil
		},
	}
}

func newJournalEditCmd() *cobra.Command {
	var (
		title   string
		content string
		tags    []string
		dateStr string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.JournalPatch

			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}

			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}

			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}

			if cmd.Flags().Changed("date") {
				date, err := time.Parse(time.DateOnly, dateStr)
				if err != nil {
					return fmt.Errorf("parsing --date %q (want YYYY-MM-DD): %w", dateStr, err)
				}

				patch.Date = &date
			}

			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			j, err := app.Journals.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), j)
			}

			statusf("Updated journal entry %s\n", j.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new content")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "new comma-separated tags")
	cmd.Flags().StringVar(&dateStr, "date", "", "new subject date (YYYY-MM-DD)")

	return cmd
}

func newJournalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Journals.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			statusf("Deleted journal entry %s\n", args[0])

			return nil
		},
	}
}

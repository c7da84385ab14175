package main

import (
	"github.com/spf13/cobra"

	"github.com/learnlog/learnlog/internal/model"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectEditCmd())
	cmd.AddCommand(newProjectRmCmd())

	return cmd
}

func newProjectAddCmd() *cobra.Command {
	var (
		name        string
		description string
		tech        []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			p, err := app.Projects.Create(cmd.Context(), model.ProjectInput{
				Name:        name,
				Description: description,
				TechStack:   tech,
			})
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}

			statusf("Created project %s\n", p.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "project name (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description (required)")
	cmd.Flags().StringSliceVar(&tech, "tech", nil, "comma-separated tech stack (at least one)")

	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), projects)
			}

			printProjectTable(cmd.OutOrStdout(), projects)

			return nil
		},
	}
}

func newProjectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}

			printProject(cmd.OutOrStdout(), p)

			return nil
		},
	}
}

func newProjectEditCmd() *cobra.Command {
	var (
		name        string
		description string
		tech        []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.ProjectPatch

			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}

			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}

			if cmd.Flags().Changed("tech") {
				patch.TechStack = &tech
			}

			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			p, err := app.Projects.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}

			statusf("Updated project %s\n", p.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringSliceVar(&tech, "tech", nil, "new comma-separated tech stack")

	return cmd
}

func newProjectRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			statusf("Deleted project %s\n", args[0])

			return nil
		},
	}
}

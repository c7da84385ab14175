package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusReport is the JSON shape of `learnlog status --json`.
type statusReport struct {
	Online       bool   `json:"online"`
	Syncing      bool   `json:"syncing"`
	PendingCount int    `json:"pendingCount"`
	DeviceID     string `json:"deviceId"`
	ServerURL    string `json:"serverUrl"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, sync state, and pending queue size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), resolvedCfg, buildLogger())
			if err != nil {
				return err
			}
			defer app.Close()

			pending, err := app.Store.CountPending(cmd.Context())
			if err != nil {
				return err
			}

			s := app.Monitor.Status()
			report := statusReport{
				Online:       s.Online,
				Syncing:      s.Syncing,
				PendingCount: pending,
				DeviceID:     app.DeviceID,
				ServerURL:    app.Cfg.ServerURL,
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:   %s (%s)\n", report.ServerURL, onlineBadge(report.Online, report.Syncing))
			fmt.Fprintf(out, "Device:   %s\n", report.DeviceID)
			fmt.Fprintf(out, "Pending:  %d operation(s)\n", report.PendingCount)

			return nil
		},
	}
}

package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/api"
)

// NewAuditLogsCmd creates the auditlogs command group
func NewAuditLogsCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auditlogs",
		Aliases: []string{"audit"},
		Short:   "Inspect the audit trail (admin)",
	}

	cmd.AddCommand(
		newAuditLogsListCmd(d),
		newAuditLogsShowCmd(d),
		newAuditLogsActionTypesCmd(d),
		newAuditLogsStatsCmd(d),
	)
	return onRoute(cmd, "/audit-logs")
}

// parseSince accepts a date, a local timestamp, or a duration back from now such as 24h
func parseSince(value string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range []string{time.DateOnly, time.DateTime, "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD, 'YYYY-MM-DD HH:MM' or a duration like 24h)", value)
}

func newAuditLogsListCmd(d *Deps) *cobra.Command {
	var params api.AuditLogListParams
	var since, until string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List audit log entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if since != "" {
				start, err := parseSince(since, now)
				if err != nil {
					return err
				}
				params.StartTime = &start
			}
			if until != "" {
				end, err := parseSince(until, now)
				if err != nil {
					return err
				}
				params.EndTime = &end
			}
			if params.ActionType != "" {
				params.ActionType = strings.ToUpper(params.ActionType)
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			page, err := apiClient.ListAuditLogs(cmd.Context(), params)
			if err != nil {
				return err
			}

			return d.render(page, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tTIME\tOPERATOR\tACTION\tIP\tDETAIL")
				fmt.Fprintln(w, "──\t────\t────────\t──────\t──\t──────")
				for _, entry := range page.Items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
						entry.ID, api.FormatTimestamp(entry.ActionTime), entry.OperatorID,
						api.ActionLabel(entry.ActionType), orDash(entry.IPAddress), truncate(entry.Detail, 60))
				}
				fmt.Fprintf(w, "\n%d of %d entries\n", len(page.Items), page.Total)
			})
		},
	}

	cmd.Flags().StringVar(&params.OperatorID, "operator", "", "Only entries by this user ID")
	cmd.Flags().StringVar(&params.ActionType, "action", "", "Only this action type, e.g. LOGIN")
	cmd.Flags().StringVar(&since, "since", "", "Start of the window")
	cmd.Flags().StringVar(&until, "until", "", "End of the window")
	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "Page size")
	return cmd
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return orDash(s)
	}
	return string(runes[:max-1]) + "…"
}

func newAuditLogsShowCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one audit log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("audit log", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			entry, err := apiClient.GetAuditLog(cmd.Context(), id)
			if err != nil {
				return err
			}

			return d.render(entry, func(w io.Writer) {
				fmt.Fprintf(w, "ID:\t%d\n", entry.ID)
				fmt.Fprintf(w, "Time:\t%s\n", api.FormatTimestamp(entry.ActionTime))
				fmt.Fprintf(w, "Operator:\t%s\n", entry.OperatorID)
				fmt.Fprintf(w, "Action:\t%s (%s)\n", api.ActionLabel(entry.ActionType), entry.ActionType)
				fmt.Fprintf(w, "IP:\t%s\n", orDash(entry.IPAddress))
				fmt.Fprintf(w, "Detail:\t%s\n", orDash(entry.Detail))
			})
		},
	}
}

func newAuditLogsActionTypesCmd(d *Deps) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "action-types",
		Short: "List the audit action types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			known := api.ActionTypes
			if !offline {
				apiClient, err := d.Client()
				if err != nil {
					return err
				}
				codes, err := apiClient.GetActionTypes(cmd.Context())
				if err != nil {
					return err
				}
				known = make([]api.ActionType, 0, len(codes))
				for _, code := range codes {
					at, ok := api.ActionTypeByConstant(code)
					if !ok {
						at = api.ActionType{Constant: code, Label: code, LabelEN: code}
					}
					known = append(known, at)
				}
			}

			return d.render(known, func(w io.Writer) {
				fmt.Fprintln(w, "CODE\tCONSTANT\tLABEL\tENGLISH")
				fmt.Fprintln(w, "────\t────────\t─────\t───────")
				for _, at := range known {
					code := "-"
					if at.Code != 0 {
						code = fmt.Sprintf("%d", at.Code)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", code, at.Constant, at.Label, at.LabelEN)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Print the built-in table without asking the server")
	return cmd
}

func newAuditLogsStatsCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Audit log totals by action and operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			stats, err := apiClient.GetAuditLogStatistics(cmd.Context())
			if err != nil {
				return err
			}

			return d.render(stats, func(w io.Writer) {
				fmt.Fprintf(w, "Total entries:\t%d\n", stats.TotalLogs)
				fmt.Fprintf(w, "Today:\t%d\n", stats.TodayLogs)
				printCounts(w, "By action", stats.ActionStats, api.ActionLabel)
				printCounts(w, "By operator", stats.OperatorStats, func(s string) string { return s })
			})
		},
	}
}

func printCounts(w io.Writer, heading string, rows []map[string]int, label func(string) string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", heading)
	for _, row := range rows {
		for key, count := range row {
			fmt.Fprintf(w, "  %s\t%d\n", label(key), count)
		}
	}
}

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/labshare-dev/labshare/internal/api"
)

type dashboard struct {
	Statistics *api.Statistics    `json:"statistics" yaml:"statistics"`
	Top        []api.TopEquipment `json:"top_equipment" yaml:"top_equipment"`
}

// NewStatsCmd creates the stats command
func NewStatsCmd(d *Deps) *cobra.Command {
	var timeRange string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Platform statistics and the equipment ranking (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := api.TimeRange(timeRange)
			if r != api.TimeRangeWeek && r != api.TimeRangeMonth {
				return fmt.Errorf("invalid --range %q (use week or month)", timeRange)
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			var out dashboard
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				stats, err := apiClient.GetStatistics(ctx)
				out.Statistics = stats
				return err
			})
			g.Go(func() error {
				top, err := apiClient.GetTopEquipments(ctx, r, api.DefaultTopLimit)
				out.Top = top
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return d.render(out, func(w io.Writer) {
				s := out.Statistics
				fmt.Fprintln(w, "EQUIPMENT")
				fmt.Fprintf(w, "  Total:\t%d\n", s.Equipment.Total)
				fmt.Fprintf(w, "  Available:\t%d\n", s.Equipment.Available)
				fmt.Fprintf(w, "  Unavailable:\t%d\n", s.Equipment.Unavailable)
				fmt.Fprintf(w, "  Usage rate:\t%.1f%%\n", s.Equipment.UsageRate)
				fmt.Fprintln(w, "RESERVATIONS")
				fmt.Fprintf(w, "  Total:\t%d\n", s.Reservation.Total)
				fmt.Fprintf(w, "  Pending:\t%d\n", s.Reservation.Pending)
				fmt.Fprintf(w, "  Approved:\t%d\n", s.Reservation.Approved)
				fmt.Fprintf(w, "  Rejected:\t%d\n", s.Reservation.Rejected)
				fmt.Fprintf(w, "  Cancelled:\t%d\n", s.Reservation.Cancelled)
				fmt.Fprintf(w, "  Approval rate:\t%.1f%%\n", s.Reservation.ApprovalRate)
				fmt.Fprintln(w, "USERS")
				fmt.Fprintf(w, "  Students:\t%d\n", s.User.Students)
				fmt.Fprintf(w, "  Teachers:\t%d\n", s.User.Teachers)
				fmt.Fprintf(w, "  Admins:\t%d\n", s.User.Admins)
				fmt.Fprintln(w)
				fmt.Fprintf(w, "TOP EQUIPMENT (%s)\n", r)
				printTop(w, out.Top)
			})
		},
	}

	cmd.Flags().StringVar(&timeRange, "range", string(api.TimeRangeWeek), "Ranking window: week or month")
	return onRoute(cmd, "/")
}

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/api"
)

// NewReservationsCmd creates the reservations command group
func NewReservationsCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"rsv"},
		Short:   "Create and manage reservations",
	}

	cmd.AddCommand(
		newReservationsListCmd(d),
		newReservationsShowCmd(d),
		newReservationsCreateCmd(d),
		newReservationsCancelCmd(d),
		newReservationDecisionCmd(d, "approve"),
		newReservationDecisionCmd(d, "reject"),
	)
	return onRoute(cmd, "/reservations")
}

func printReservations(w io.Writer, reservations []api.Reservation) {
	fmt.Fprintln(w, "ID\tEQUIPMENT\tUSER\tSTART\tEND\tSTATUS")
	fmt.Fprintln(w, "──\t─────────\t────\t─────\t───\t──────")
	for _, r := range reservations {
		equipment := r.EquipName
		if equipment == "" {
			equipment = fmt.Sprintf("#%d", r.EquipID)
		}
		user := r.UserName
		if user == "" {
			user = orDash(r.StudentID + r.TeacherID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, equipment, user, api.FormatTimestamp(r.StartTime), api.FormatTimestamp(r.EndTime), r.Status)
	}
}

func printReservation(w io.Writer, r *api.Reservation) {
	fmt.Fprintf(w, "ID:\t%d\n", r.ID)
	fmt.Fprintf(w, "Equipment:\t%s (#%d)\n", orDash(r.EquipName), r.EquipID)
	fmt.Fprintf(w, "User:\t%s\n", orDash(r.UserName))
	fmt.Fprintf(w, "Status:\t%s\n", r.Status)
	fmt.Fprintf(w, "Start:\t%s\n", api.FormatTimestamp(r.StartTime))
	fmt.Fprintf(w, "End:\t%s\n", api.FormatTimestamp(r.EndTime))
	fmt.Fprintf(w, "Applied:\t%s\n", api.FormatTimestamp(r.ApplyTime))
	if r.Price != "" {
		fmt.Fprintf(w, "Price:\t%s\n", r.Price)
	}
	if r.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", r.Description)
	}
	if r.ApproverID != "" {
		fmt.Fprintf(w, "Approver:\t%s at %s\n", r.ApproverID, api.FormatTimestamp(r.ApproveTime))
	}
	if r.RejectReason != "" {
		fmt.Fprintf(w, "Reject reason:\t%s\n", r.RejectReason)
	}
}

func newReservationsListCmd(d *Deps) *cobra.Command {
	var params api.ReservationListParams
	var status int

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List reservations (your own, or all for admins)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("status") {
				if status < int(api.ReservationPending) || status > int(api.ReservationCancelled) {
					return fmt.Errorf("invalid --status %d (0 pending, 1 approved, 2 rejected, 3 cancelled)", status)
				}
				params.Status = &status
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			reservations, err := apiClient.ListReservations(cmd.Context(), params)
			if err != nil {
				return err
			}

			if len(reservations) == 0 && d.human() {
				fmt.Fprintln(d.Out, "No reservations found.")
				fmt.Fprintln(d.Out, "\nCreate one with: labshare reservations create --equipment <id> --start ... --end ...")
				return nil
			}

			return d.render(reservations, func(w io.Writer) { printReservations(w, reservations) })
		},
	}

	cmd.Flags().IntVar(&status, "status", 0, "0 pending, 1 approved, 2 rejected, 3 cancelled")
	cmd.Flags().Int64Var(&params.EquipID, "equipment", 0, "Only reservations of this equipment")
	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "Page size")
	return cmd
}

func newReservationsShowCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("reservation", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			reservation, err := apiClient.GetReservation(cmd.Context(), id)
			if err != nil {
				return err
			}

			return d.render(reservation, func(w io.Writer) { printReservation(w, reservation) })
		},
	}
}

// parseLocal accepts "2006-01-02 15:04" style input in local time and renders the
// naive ISO form the backend stores
func parseLocal(value string) (string, error) {
	for _, layout := range []string{time.DateTime, "2006-01-02 15:04", "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.Format("2006-01-02T15:04:05"), nil
		}
	}
	return "", fmt.Errorf("invalid time %q (use 'YYYY-MM-DD HH:MM')", value)
}

func newReservationsCreateCmd(d *Deps) *cobra.Command {
	var equipID int64
	var start, end, price, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request a reservation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if equipID <= 0 {
				return fmt.Errorf("--equipment is required")
			}
			input := api.ReservationInput{EquipID: equipID, Description: description}

			var err error
			if start != "" {
				if input.StartTime, err = parseLocal(start); err != nil {
					return err
				}
			}
			if end != "" {
				if input.EndTime, err = parseLocal(end); err != nil {
					return err
				}
			}
			if input.StartTime != "" && input.EndTime != "" && input.EndTime <= input.StartTime {
				return fmt.Errorf("--end must be after --start")
			}
			if cmd.Flags().Changed("price") {
				input.Price = &price
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			reservation, err := apiClient.CreateReservation(cmd.Context(), input)
			if err != nil {
				return err
			}

			return d.render(reservation, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Reservation %d submitted (%s)\n", reservation.ID, reservation.Status)
			})
		},
	}

	cmd.Flags().Int64Var(&equipID, "equipment", 0, "Equipment ID")
	cmd.Flags().StringVar(&start, "start", "", "Start, e.g. '2024-03-01 09:00'")
	cmd.Flags().StringVar(&end, "end", "", "End, e.g. '2024-03-01 11:00'")
	cmd.Flags().StringVar(&price, "price", "", "Quoted price")
	cmd.Flags().StringVar(&description, "description", "", "Purpose of the reservation")
	return cmd
}

func newReservationsCancelCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("reservation", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			reservation, err := apiClient.CancelReservation(cmd.Context(), id)
			if err != nil {
				return err
			}

			return d.render(reservation, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Reservation %d cancelled\n", id)
			})
		},
	}
}

// newReservationDecisionCmd builds approve and reject, which differ only in endpoint and wording
func newReservationDecisionCmd(d *Deps, action string) *cobra.Command {
	var reason string

	short := "Approve a pending reservation (admin)"
	if action == "reject" {
		short = "Reject a pending reservation (admin)"
	}

	cmd := &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("reservation", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			input := api.ApprovalInput{Reason: reason}
			var reservation *api.Reservation
			if action == "approve" {
				reservation, err = apiClient.ApproveReservation(cmd.Context(), id, input)
			} else {
				reservation, err = apiClient.RejectReservation(cmd.Context(), id, input)
			}
			if err != nil {
				return err
			}

			return d.render(reservation, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Reservation %d is now %s\n", id, reservation.Status)
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the decision")
	return cmd
}

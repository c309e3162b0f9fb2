package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/api"
)

// NewTimeslotsCmd creates the timeslots command group
func NewTimeslotsCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timeslots",
		Aliases: []string{"slots"},
		Short:   "Bookable time slots of a piece of equipment",
	}

	cmd.AddCommand(
		newTimeslotsListCmd(d),
		newTimeslotsAvailableCmd(d),
		newTimeslotsDatesCmd(d),
		newTimeslotsCreateCmd(d),
		newTimeslotsUpdateCmd(d),
		newTimeslotsDeleteCmd(d),
	)
	return onRoute(cmd, "/equipment/:id")
}

func printSlots(w io.Writer, slots []api.TimeSlot) {
	fmt.Fprintln(w, "SLOT\tEQUIPMENT\tSTART\tEND\tACTIVE")
	fmt.Fprintln(w, "────\t─────────\t─────\t───\t──────")
	for _, s := range slots {
		active := "yes"
		if s.IsActive == 0 {
			active = "no"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", s.SlotID, s.EquipID, s.StartTime, s.EndTime, active)
	}
}

func newTimeslotsListCmd(d *Deps) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "ls <equipment-id>",
		Aliases: []string{"list"},
		Short:   "List the time slots of a piece of equipment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equipID, err := parseID("equipment", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			slots, err := apiClient.GetTimeslots(cmd.Context(), equipID, !all)
			if err != nil {
				return err
			}

			return d.render(slots, func(w io.Writer) { printSlots(w, slots) })
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive slots")
	return cmd
}

func newTimeslotsAvailableCmd(d *Deps) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "available <equipment-id>",
		Short: "List free slots, optionally on one date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equipID, err := parseID("equipment", args[0])
			if err != nil {
				return err
			}
			if err := checkDate(date); err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			slots, err := apiClient.GetAvailableTimeslots(cmd.Context(), equipID, date)
			if err != nil {
				return err
			}

			if len(slots) == 0 && d.human() {
				fmt.Fprintln(d.Out, "No free slots.")
				return nil
			}
			return d.render(slots, func(w io.Writer) { printSlots(w, slots) })
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only slots still free on this date")
	return cmd
}

func newTimeslotsDatesCmd(d *Deps) *cobra.Command {
	var start string
	var days int

	cmd := &cobra.Command{
		Use:   "dates <equipment-id>",
		Short: "Dates that still have free slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equipID, err := parseID("equipment", args[0])
			if err != nil {
				return err
			}
			if err := checkDate(start); err != nil {
				return err
			}
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			dates, err := apiClient.GetAvailableDates(cmd.Context(), equipID, start, days)
			if err != nil {
				return err
			}

			return d.render(dates, func(w io.Writer) {
				if len(dates) == 0 {
					fmt.Fprintln(w, "No available dates.")
					return
				}
				for _, date := range dates {
					fmt.Fprintln(w, date)
				}
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First date to consider (YYYY-MM-DD, server default is today)")
	cmd.Flags().IntVar(&days, "days", api.DefaultAvailableDays, "How many days to look ahead")
	return cmd
}

func checkDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", date)
	}
	return nil
}

func checkClock(value string) error {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return fmt.Errorf("invalid time %q (use HH:MM or HH:MM:SS)", value)
}

// slotFlags binds the admin create/update body
type slotFlags struct {
	equipID int64
	start   string
	end     string
	active  bool
}

func (f *slotFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.equipID, "equipment", 0, "Equipment ID")
	cmd.Flags().StringVar(&f.start, "start", "", "Daily start time (HH:MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "Daily end time (HH:MM)")
	cmd.Flags().BoolVar(&f.active, "active", true, "Whether the slot can be booked")
}

func (f *slotFlags) input(cmd *cobra.Command) (api.TimeSlotInput, error) {
	input := api.TimeSlotInput{EquipID: f.equipID, StartTime: f.start, EndTime: f.end}
	for _, value := range []string{f.start, f.end} {
		if value == "" {
			continue
		}
		if err := checkClock(value); err != nil {
			return input, err
		}
	}
	if cmd.Flags().Changed("active") {
		active := 0
		if f.active {
			active = 1
		}
		input.IsActive = &active
	}
	return input, nil
}

func newTimeslotsCreateCmd(d *Deps) *cobra.Command {
	var flags slotFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a time slot (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(cmd)
			if err != nil {
				return err
			}
			if input.EquipID == 0 || input.StartTime == "" || input.EndTime == "" {
				return fmt.Errorf("--equipment, --start and --end are required")
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			slot, err := apiClient.CreateTimeslot(cmd.Context(), input)
			if err != nil {
				return err
			}

			return d.render(slot, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Created slot %d (%s-%s)\n", slot.SlotID, slot.StartTime, slot.EndTime)
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newTimeslotsUpdateCmd(d *Deps) *cobra.Command {
	var flags slotFlags

	cmd := &cobra.Command{
		Use:   "update <slot-id>",
		Short: "Edit a time slot (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseID("slot", args[0])
			if err != nil {
				return err
			}

			input, err := flags.input(cmd)
			if err != nil {
				return err
			}
			if input == (api.TimeSlotInput{}) {
				return fmt.Errorf("nothing to update (use --equipment, --start, --end or --active)")
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			slot, err := apiClient.UpdateTimeslot(cmd.Context(), slotID, input)
			if err != nil {
				return err
			}

			return d.render(slot, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Updated slot %d (%s-%s)\n", slot.SlotID, slot.StartTime, slot.EndTime)
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newTimeslotsDeleteCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <slot-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a time slot (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseID("slot", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			if err := apiClient.DeleteTimeslot(cmd.Context(), slotID); err != nil {
				return err
			}

			d.printf("✓ Deleted slot %d\n", slotID)
			return nil
		},
	}
}

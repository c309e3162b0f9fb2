package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/api"
)

// NewEquipmentCmd creates the equipment command group
func NewEquipmentCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"equip"},
		Short:   "Browse and manage equipment",
	}

	cmd.AddCommand(
		newEquipmentListCmd(d),
		newEquipmentShowCmd(d),
		newEquipmentCreateCmd(d),
		newEquipmentUpdateCmd(d),
		newEquipmentDeleteCmd(d),
		newEquipmentTopCmd(d),
	)
	return onRoute(cmd, "/equipment")
}

func newEquipmentListCmd(d *Deps) *cobra.Command {
	var params api.EquipmentListParams
	var status int

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List equipment",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("status") {
				params.Status = &status
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			equipments, err := apiClient.ListEquipments(cmd.Context(), params)
			if err != nil {
				return err
			}

			if len(equipments) == 0 && d.human() {
				fmt.Fprintln(d.Out, "No equipment found.")
				return nil
			}

			return d.render(equipments, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tLAB\tCATEGORY\tSTATUS\tNEXT AVAILABLE")
				fmt.Fprintln(w, "──\t────\t───\t────────\t──────\t──────────────")
				for _, e := range equipments {
					lab := orDash(e.LabName)
					if lab == "-" {
						lab = formatLab(e.LabID)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
						e.ID, e.Name, lab, e.Category, e.Status, api.FormatTimestamp(e.NextAvailTime))
				}
			})
		},
	}

	cmd.Flags().Int64Var(&params.LabID, "lab", 0, "Only equipment of this laboratory")
	cmd.Flags().StringVar(&params.Keyword, "keyword", "", "Name contains")
	cmd.Flags().IntVar(&params.Category, "category", 0, "1 = college, 2 = laboratory")
	cmd.Flags().IntVar(&status, "status", 0, "1 = available, 0 = unavailable")
	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "Page size")
	return cmd
}

func newEquipmentShowCmd(d *Deps) *cobra.Command {
	return onRoute(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one piece of equipment with its time slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("equipment", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			equipment, err := apiClient.GetEquipment(cmd.Context(), id)
			if err != nil {
				return err
			}
			slots, err := apiClient.GetTimeslots(cmd.Context(), id, true)
			if err != nil {
				return err
			}

			detail := equipmentDetail{Equipment: *equipment, TimeSlots: slots}

			return d.render(detail, func(w io.Writer) {
				fmt.Fprintf(w, "ID:\t%d\n", equipment.ID)
				fmt.Fprintf(w, "Name:\t%s\n", equipment.Name)
				fmt.Fprintf(w, "Lab:\t%s\n", orDash(equipment.LabName))
				fmt.Fprintf(w, "Category:\t%s\n", equipment.Category)
				fmt.Fprintf(w, "Status:\t%s\n", equipment.Status)
				fmt.Fprintf(w, "Next available:\t%s\n", api.FormatTimestamp(equipment.NextAvailTime))
				fmt.Fprintln(w)
				if len(slots) == 0 {
					fmt.Fprintln(w, "No active time slots.")
					return
				}
				fmt.Fprintln(w, "SLOT\tSTART\tEND")
				fmt.Fprintln(w, "────\t─────\t───")
				for _, s := range slots {
					fmt.Fprintf(w, "%d\t%s\t%s\n", s.SlotID, s.StartTime, s.EndTime)
				}
			})
		},
	}, "/equipment/:id")
}

type equipmentDetail struct {
	api.Equipment `yaml:",inline"`
	TimeSlots     []api.TimeSlot `json:"time_slots" yaml:"time_slots"`
}

// equipmentFlags binds the create/update body
type equipmentFlags struct {
	name     string
	lab      int64
	category int
	status   int
}

func (f *equipmentFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Equipment name")
	cmd.Flags().Int64Var(&f.lab, "lab", 0, "Owning laboratory ID")
	cmd.Flags().IntVar(&f.category, "category", 0, "1 = college, 2 = laboratory")
	cmd.Flags().IntVar(&f.status, "status", 0, "1 = available, 0 = unavailable")
}

// input sends only the flags the user set
func (f *equipmentFlags) input(cmd *cobra.Command) api.EquipmentInput {
	input := api.EquipmentInput{Name: f.name}
	if cmd.Flags().Changed("lab") {
		input.LabID = &f.lab
	}
	if cmd.Flags().Changed("category") {
		category := api.EquipmentCategory(f.category)
		input.Category = &category
	}
	if cmd.Flags().Changed("status") {
		input.Status = &f.status
	}
	return input
}

func newEquipmentCreateCmd(d *Deps) *cobra.Command {
	var flags equipmentFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create equipment (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.name == "" {
				return fmt.Errorf("--name is required")
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			equipment, err := apiClient.CreateEquipment(cmd.Context(), flags.input(cmd))
			if err != nil {
				return err
			}

			return d.render(equipment, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Created equipment %d (%s)\n", equipment.ID, equipment.Name)
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newEquipmentUpdateCmd(d *Deps) *cobra.Command {
	var flags equipmentFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update equipment (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("equipment", args[0])
			if err != nil {
				return err
			}

			input := flags.input(cmd)
			if input == (api.EquipmentInput{}) {
				return fmt.Errorf("nothing to update (use --name, --lab, --category or --status)")
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			equipment, err := apiClient.UpdateEquipment(cmd.Context(), id, input)
			if err != nil {
				return err
			}

			return d.render(equipment, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Updated equipment %d (%s)\n", equipment.ID, equipment.Name)
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newEquipmentDeleteCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete equipment (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("equipment", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			if err := apiClient.DeleteEquipment(cmd.Context(), id); err != nil {
				return err
			}

			d.printf("✓ Deleted equipment %d\n", id)
			return nil
		},
	}
}

func newEquipmentTopCmd(d *Deps) *cobra.Command {
	var timeRange string
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Most reserved equipment",
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

			top, err := apiClient.GetTopEquipments(cmd.Context(), r, limit)
			if err != nil {
				return err
			}

			return d.render(top, func(w io.Writer) {
				printTop(w, top)
			})
		},
	}

	cmd.Flags().StringVar(&timeRange, "range", string(api.TimeRangeWeek), "week or month")
	cmd.Flags().IntVar(&limit, "limit", api.DefaultTopLimit, "How many to show")
	// the ranking is part of the public home view
	return onRoute(cmd, "/")
}

func printTop(w io.Writer, top []api.TopEquipment) {
	fmt.Fprintln(w, "RANK\tID\tNAME\tRESERVATIONS")
	fmt.Fprintln(w, "────\t──\t────\t────────────")
	for i, e := range top {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\n", i+1, e.ID, e.Name, e.Count)
	}
}

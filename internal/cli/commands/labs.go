package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/api"
)

// NewLabsCmd creates the labs command group
func NewLabsCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "labs",
		Aliases: []string{"laboratories"},
		Short:   "Manage laboratories",
	}

	cmd.AddCommand(newLabsListCmd(d), newLabsCreateCmd(d), newLabsUpdateCmd(d), newLabsDeleteCmd(d))
	return onRoute(cmd, "/laboratories")
}

func newLabsListCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List laboratories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			labs, err := apiClient.ListLaboratories(cmd.Context())
			if err != nil {
				return err
			}

			if len(labs) == 0 && d.human() {
				fmt.Fprintln(d.Out, "No laboratories found.")
				return nil
			}

			return d.render(labs, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tLOCATION")
				fmt.Fprintln(w, "──\t────\t────────")
				for _, lab := range labs {
					fmt.Fprintf(w, "%d\t%s\t%s\n", lab.ID, lab.Name, orDash(lab.Location))
				}
			})
		},
	}
}

func newLabsCreateCmd(d *Deps) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a laboratory (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			input := api.LaboratoryInput{Name: args[0]}
			if cmd.Flags().Changed("location") {
				input.Location = &location
			}

			lab, err := apiClient.CreateLaboratory(cmd.Context(), input)
			if err != nil {
				return err
			}

			return d.render(lab, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Created laboratory %d (%s)\n", lab.ID, lab.Name)
			})
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Where the laboratory is")
	return cmd
}

func newLabsUpdateCmd(d *Deps) *cobra.Command {
	var name, location string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a laboratory (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("laboratory", args[0])
			if err != nil {
				return err
			}

			input := api.LaboratoryInput{Name: name}
			if cmd.Flags().Changed("location") {
				input.Location = &location
			}
			if input.Name == "" && input.Location == nil {
				return fmt.Errorf("nothing to update (use --name or --location)")
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			lab, err := apiClient.UpdateLaboratory(cmd.Context(), id, input)
			if err != nil {
				return err
			}

			return d.render(lab, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Updated laboratory %d (%s)\n", lab.ID, lab.Name)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&location, "location", "", "New location")
	return cmd
}

func newLabsDeleteCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a laboratory (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("laboratory", args[0])
			if err != nil {
				return err
			}

			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			if err := apiClient.DeleteLaboratory(cmd.Context(), id); err != nil {
				return err
			}

			d.printf("✓ Deleted laboratory %d\n", id)
			return nil
		},
	}
}

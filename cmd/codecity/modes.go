package main

import (
	"fmt"
	"io"

	"codecity/internal/highlight"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newModesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modes [directory]",
		Short: "List colour modes and whether the repository has data for them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, "", true)
			if err != nil {
				return err
			}
			renderModes(cmd.OutOrStdout(), s.store)
			return nil
		},
	}
}

func renderModes(w io.Writer, store *highlight.Store) {
	available := make(map[highlight.ModeID]bool)
	for _, d := range store.AvailableModes() {
		available[d.ID] = true
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Mode", "Name", "Available", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	for i, d := range highlight.ListModes() {
		mark := "no"
		if available[d.ID] {
			mark = "yes"
		}
		table.Append([]string{fmt.Sprintf("%d", i+1), string(d.ID), d.Name, mark, d.Description})
	}
	table.Render()
}

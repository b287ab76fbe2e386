package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"codecity/internal/errors"
	"codecity/internal/highlight"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// layerDocument is the yaml/json form of a computed layer set.
type layerDocument struct {
	Scope     string            `json:"scope" yaml:"scope"`
	Mode      highlight.ModeID  `json:"mode" yaml:"mode"`
	Requested highlight.ModeID  `json:"requestedMode" yaml:"requestedMode"`
	Layers    []highlight.Layer `json:"layers" yaml:"layers"`
}

func newLayersCmd(opts *rootOptions) *cobra.Command {
	var (
		mode   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "layers [directory]",
		Short: "Compute and print the highlight layers of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, mode, true)
			if err != nil {
				return err
			}
			doc := layerDocument{
				Scope:     s.store.Scope(),
				Mode:      s.store.ActiveMode(),
				Requested: s.requested,
				Layers:    s.store.ActiveLayerSet(),
			}
			return renderLayers(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "colour mode (defaults to display.default_mode)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, yaml or json")

	return cmd
}

func renderLayers(w io.Writer, doc layerDocument, format string) error {
	switch format {
	case "table":
		if doc.Mode != doc.Requested {
			fmt.Fprintf(w, "Mode %s has no data, showing %s\n", doc.Requested, doc.Mode)
		} else {
			fmt.Fprintf(w, "Mode %s\n", doc.Mode)
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Name", "Category", "Priority", "Color", "Enabled", "Items"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)
		for _, l := range doc.Layers {
			table.Append([]string{
				l.ID,
				l.Name,
				string(l.Category),
				strconv.Itoa(l.Priority),
				l.Color,
				strconv.FormatBool(l.Enabled),
				strconv.Itoa(len(l.Items)),
			})
		}
		table.SetFooter([]string{"", "", "", "", "", "Total", strconv.Itoa(len(doc.Layers))})
		table.Render()
		return nil

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return errors.NewConfigError("unknown output format", "--format", errors.InvalidConfig, errors.Newf("%q", format))
}

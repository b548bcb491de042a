package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awmpietro/golang-algorithm-visualizer/cmd/dsaviz/ui"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func checkOutput(format string) error {
	if format != outputTable && format != outputJSON {
		return fmt.Errorf("unknown output %q (expected table or json)", format)
	}
	return nil
}

func (c *cli) listCmd() *cobra.Command {
	var (
		output   string
		category string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available algorithms",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			all := c.svc.List()
			if category != "" {
				all = slices.DeleteFunc(all, func(md registry.Metadata) bool {
					return string(md.Category) != category
				})
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), all)
			}

			rows := make([][]string, 0, len(all))
			for _, md := range all {
				rows = append(rows, []string{md.ID, md.Name, string(md.Category), string(md.VisualizerType)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Table([]string{"ID", "Name", "Category", "Visualizer"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table or json)")
	cmd.Flags().StringVar(&category, "category", "", "Only list one category")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an algorithm's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			md, err := c.svc.Get(args[0])
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), md)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.KeyValues("",
				ui.KV("id", ui.Accent(md.ID)),
				ui.KV("name", md.Name),
				ui.KV("category", string(md.Category)),
				ui.KV("visualizer", string(md.VisualizerType)),
			))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table or json)")
	return cmd
}

func (c *cli) sourceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "source <id>",
		Short: "Print the implementation an algorithm runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.svc.Source(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, src)
			if !strings.HasSuffix(src, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

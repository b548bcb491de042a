package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/awmpietro/golang-algorithm-visualizer/cmd/dsaviz/ui"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

func (c *cli) runCmd() *cobra.Command {
	var (
		in     inputFlags
		filter string
		output string
		stream bool
	)
	cmd := &cobra.Command{
		Use:   "run <id>",
		Short: "Run an algorithm and print its steps",
		Example: `  dsaviz run bubble_sort --input '[5,2,8,1,9]'
  dsaviz run bfs --input-file graph.yaml --filter 'operation == "visit"'
  dsaviz run binary_search --param 'array=[1,3,5,7],target=5' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			input, err := in.resolve()
			if err != nil {
				return err
			}
			opts := app.ExecuteOptions{Filter: filter}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if stream {
				return c.runStream(ctx, cmd, args[0], input, opts, output)
			}

			ex, err := c.svc.Execute(ctx, args[0], input, opts)
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), ex)
			}

			rows := make([][]string, 0, len(ex.Steps))
			for _, st := range ex.Steps {
				rows = append(rows, stepRow(st))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Table([]string{"#", "Operation", "Description", "State"}, rows))
			fmt.Fprintln(out, ui.Muted(fmt.Sprintf("%d of %d steps, execution %s", ex.Count, ex.Total, ex.ID)))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.inline, "input", "", "Input payload as JSON")
	cmd.Flags().StringVarP(&in.file, "input-file", "f", "", "Read the input payload from a .json or .yaml file")
	cmd.Flags().StringArrayVarP(&in.params, "param", "p", nil, "Input field as key=value (repeatable, comma separated)")
	cmd.Flags().StringVar(&filter, "filter", "", "Only keep steps matching this expression")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table or json)")
	cmd.Flags().BoolVar(&stream, "stream", false, "Print steps as they are produced")
	return cmd
}

func (c *cli) runStream(ctx context.Context, cmd *cobra.Command, id string, input json.RawMessage, opts app.ExecuteOptions, output string) error {
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)

	res, err := c.svc.Stream(ctx, id, input, opts, func(st step.Step) error {
		if output == outputJSON {
			return enc.Encode(st)
		}
		row := stepRow(st)
		_, err := fmt.Fprintf(out, "%4s  %-16s %s  %s\n", row[0], row[1], row[2], ui.Muted(row[3]))
		return err
	})
	if err != nil {
		return err
	}
	if output != outputJSON {
		fmt.Fprintln(out, ui.Muted(fmt.Sprintf("%d of %d steps, execution %s", res.Delivered, res.Total, res.ID)))
	}
	return nil
}

func stepRow(st step.Step) []string {
	return []string{
		strconv.Itoa(st.StepNumber),
		ui.Operation(st.Operation),
		st.Description,
		summarizeState(st.State),
	}
}

// summarizeState renders the part of a snapshot worth a table cell.
func summarizeState(s step.State) string {
	switch step.VisualizerType(s.Kind()) {
	case step.Array:
		return fmt.Sprint(s[step.KeyValues])
	case step.DPTable:
		return fmt.Sprintf("row %v: %v", s["row"], s[step.KeyValues])
	case step.Graph:
		if nodes, ok := s["nodes"].([]string); ok {
			return fmt.Sprintf("%d nodes", len(nodes))
		}
	}
	if v, ok := s[step.KeyValues]; ok {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(s.Kind())
}

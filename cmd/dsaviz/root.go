package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/catalog"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/logging"
)

type cli struct {
	logLevel string
	maxSteps int
	maxCells int
	svc      app.AlgorithmService
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "dsaviz",
		Short:         "Run algorithms step by step and inspect every snapshot",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "loadtest" {
				return nil
			}
			return c.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&c.maxSteps, "max-steps", app.DefaultMaxSteps, "Maximum steps one run may produce")
	root.PersistentFlags().IntVar(&c.maxCells, "max-cells", app.DefaultMaxSnapshotCells, "Maximum state cells a batch run may hold")

	root.AddCommand(c.listCmd())
	root.AddCommand(c.showCmd())
	root.AddCommand(c.runCmd())
	root.AddCommand(c.sourceCmd())
	root.AddCommand(loadtestCmd())
	return root
}

func (c *cli) init(logOut io.Writer) error {
	if c.svc != nil {
		return nil
	}
	logger, err := logging.ConfigureWriter(logOut, c.logLevel)
	if err != nil {
		return err
	}
	reg, err := catalog.Standard()
	if err != nil {
		return err
	}
	c.svc = app.NewService(reg, app.Options{
		MaxSteps:         c.maxSteps,
		MaxSnapshotCells: c.maxCells,
		Logger:           logger,
		Observer:         app.NewExecutionLogger(logger),
	})
	slog.SetDefault(logger)
	return nil
}

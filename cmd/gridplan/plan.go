package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/wastar"
	"github.com/pdrpinto/wastar/internal/grid"
	"github.com/pdrpinto/wastar/internal/scenario"
	"github.com/pdrpinto/wastar/observe"
)

func newPlanCmd() *cobra.Command {
	var (
		configPath string
		epsilon    float64
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run a scenario file and print every planned path",
		Long: `Loads a TOML or YAML scenario, plans from its sources to its goals and
then replays each episode: the environment is changed, the planner is reset
and the search runs again over the states already discovered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger("gridplan")
			if err != nil {
				return err
			}
			sc, err := scenario.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("epsilon") {
				sc.Epsilon = epsilon
				if err := sc.Validate(); err != nil {
					return err
				}
			}
			return runScenario(cmd.Context(), cmd.OutOrStdout(), sc, logger)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "scenario.toml", "Scenario file (.toml, .yaml)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", wastar.DefaultEpsilon, "Override the scenario suboptimality factor")
	return cmd
}

func runScenario(ctx context.Context, out io.Writer, sc scenario.Scenario, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	options := append(sc.Options(),
		wastar.WithLogger(logger),
		wastar.WithObserver(observe.NewLogObserver(logger)),
	)
	planner, err := wastar.New[grid.Point, int](options...)
	if err != nil {
		return err
	}

	problem := sc.Problem()
	if err := planner.Init(problem, true); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := planEpisode(ctx, out, planner, "initial"); err != nil {
		return err
	}

	for _, ep := range sc.Episodes {
		ep.Apply(problem)
		if err := planner.Reset(problem); err != nil {
			return fmt.Errorf("%s: reset: %w", ep.Name, err)
		}
		if err := planEpisode(ctx, out, planner, ep.Name); err != nil {
			return err
		}
	}
	return nil
}

func planEpisode(ctx context.Context, out io.Writer, planner *wastar.Planner[grid.Point, int], name string) error {
	stats, err := planner.Run(ctx)
	if err != nil {
		return fmt.Errorf("%s: run: %w", name, err)
	}
	fmt.Fprintf(out, "== %s: %s, %d expanded, %d states known\n",
		name, stats.Status, stats.Expansions, stats.Registered)

	paths, err := planner.PathsFromSource()
	if err != nil {
		return fmt.Errorf("%s: paths: %w", name, err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(out, "no goal reached")
		return nil
	}
	seeds := planner.Seeds()
	for i, bookmark := range planner.Bookmarks() {
		fmt.Fprintf(out, "goal %v cost %d from %v: %v\n",
			bookmark.State, bookmark.Cost, seeds[bookmark.Lineage], paths[i])
	}
	return nil
}

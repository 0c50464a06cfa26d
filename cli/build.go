package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-brackets/brackets"
)

func (c *CLI) buildCommand() *cobra.Command {
	var (
		competitors []string
		thirdPlace  bool
		standard    bool
		withLayout  bool
		layout      brackets.LayoutOptions
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a single elimination bracket",
		Long: `Build a single elimination bracket from competitors given in seed order.

Competitors are passed as --competitor id or --competitor id:name, one flag per
competitor. Byes go to the earliest competitors unless --standard-seeding is set.`,
		Example: `  bracketctl build -c navi:NAVI -c g2:G2 -c faze:FaZe -c vit:Vitality --third-place --layout`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseCompetitors(competitors)
			if err != nil {
				return err
			}
			policy := brackets.PolicyDeviationTable
			if standard {
				policy = brackets.PolicyStandard
			}
			return c.runBuild(cmd.Context(), brackets.FormatSingleElimination, brackets.GenerateBracketParams{
				Competitors:        list,
				HasThirdPlaceMatch: thirdPlace,
			}, withLayout, layout, brackets.WithSeedingPolicy(policy))
		},
	}

	cmd.Flags().StringArrayVarP(&competitors, "competitor", "c", nil, "competitor as id or id:name, in seed order (repeatable)")
	cmd.Flags().BoolVar(&thirdPlace, "third-place", false, "add a third place match")
	cmd.Flags().BoolVar(&standard, "standard-seeding", false, "pair top seeds against bottom seeds")
	addLayoutFlags(cmd, &withLayout, &layout)
	return cmd
}

func (c *CLI) ffaCommand() *cobra.Command {
	var (
		competitors []string
		rounds      int
		withLayout  bool
		layout      brackets.LayoutOptions
	)

	cmd := &cobra.Command{
		Use:     "ffa",
		Short:   "Build a free-for-all schedule",
		Long:    `Build a free-for-all schedule: one match per round, every competitor in every match.`,
		Example: `  bracketctl ffa -c alice -c bob -c carol --rounds 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseCompetitors(competitors)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), brackets.FormatFreeForAll, brackets.GenerateBracketParams{
				Competitors: list,
				TotalRounds: rounds,
			}, withLayout, layout)
		},
	}

	cmd.Flags().StringArrayVarP(&competitors, "competitor", "c", nil, "competitor as id or id:name (repeatable)")
	cmd.Flags().IntVarP(&rounds, "rounds", "r", 1, "number of rounds")
	addLayoutFlags(cmd, &withLayout, &layout)
	return cmd
}

func addLayoutFlags(cmd *cobra.Command, withLayout *bool, layout *brackets.LayoutOptions) {
	cmd.Flags().BoolVar(withLayout, "layout", false, "include node positions and edges")
	cmd.Flags().Float64Var(&layout.RoundHeight, "round-height", brackets.DefaultLayoutOptions.RoundHeight, "vertical extent of the first round")
	cmd.Flags().Float64Var(&layout.FirstColumnWidth, "first-column-width", brackets.DefaultLayoutOptions.FirstColumnWidth, "gap between round 1 and round 2")
	cmd.Flags().Float64Var(&layout.ColumnWidth, "column-width", brackets.DefaultLayoutOptions.ColumnWidth, "gap between later rounds")
}

func (c *CLI) runBuild(ctx context.Context, format brackets.Format, params brackets.GenerateBracketParams, withLayout bool, layout brackets.LayoutOptions, opts ...brackets.Option) error {
	gen, ok := brackets.GeneratorFor(format, opts...)
	if !ok {
		return fmt.Errorf("unsupported format %q", format)
	}

	tree, err := gen.GenerateBracket(ctx, params)
	if err != nil {
		return fmt.Errorf("%s: %w", gen.GetName(), err)
	}
	c.Logger.Debug("bracket built",
		"format", format,
		"competitors", len(params.Competitors),
		"matches", len(tree.Matches),
		"rounds", tree.MaxRound(),
	)
	return c.printTree(tree, withLayout, layout)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-brackets/brackets"
)

func (c *CLI) shuffleCommand() *cobra.Command {
	var (
		seed        uint64
		includeByes bool
		withLayout  bool
		layout      brackets.LayoutOptions
	)

	cmd := &cobra.Command{
		Use:   "shuffle [tree.json]",
		Short: "Shuffle round 1 of a built bracket",
		Long: `Shuffle the seeds of a bracket printed by build or ffa.

The bracket is read from the given file, or from stdin when no file or "-" is given.
Only round 1 participants move; pass --include-byes to also move competitors that
skip round 1. --seed makes the result reproducible.`,
		Example: `  bracketctl build -c a -c b -c c -c d | bracketctl shuffle --seed 42`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			tree, err := c.readTree(input)
			if err != nil {
				return err
			}

			var rng brackets.RandomSource
			if cmd.Flags().Changed("seed") {
				rng = brackets.NewSeededSource(seed)
			}

			shuffle := brackets.Shuffle
			if includeByes {
				shuffle = brackets.ShuffleSeeds
			}
			shuffled := shuffle(tree, rng)
			c.Logger.Debug("bracket shuffled", "matches", len(shuffled.Matches), "include_byes", includeByes)
			return c.printTree(shuffled, withLayout, layout)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible shuffle")
	cmd.Flags().BoolVar(&includeByes, "include-byes", false, "also shuffle competitors that received a bye")
	addLayoutFlags(cmd, &withLayout, &layout)
	return cmd
}

// readTree accepts either a bare MatchTree or the {"tree": ...} object build prints.
func (c *CLI) readTree(input string) (brackets.MatchTree, error) {
	var r io.Reader = c.In
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return brackets.MatchTree{}, fmt.Errorf("open %s: %w", input, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return brackets.MatchTree{}, fmt.Errorf("read bracket: %w", err)
	}

	var wrapped struct {
		Tree *brackets.MatchTree `json:"tree"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return brackets.MatchTree{}, fmt.Errorf("decode bracket: %w", err)
	}
	if wrapped.Tree != nil {
		return *wrapped.Tree, nil
	}

	var tree brackets.MatchTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return brackets.MatchTree{}, fmt.Errorf("decode bracket: %w", err)
	}
	return tree, nil
}

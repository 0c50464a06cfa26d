// Package cli implements the bracketctl command-line interface: offline bracket builds,
// reshuffles and API tokens, printed as JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-brackets/brackets"
)

const appName = "bracketctl"

// CLI holds the streams and logger shared by all commands.
type CLI struct {
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
	level  *slog.LevelVar
}

func New(in io.Reader, out, errOut io.Writer) *CLI {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	return &CLI{
		In:     in,
		Out:    out,
		Logger: slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})),
		level:  level,
	}
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Build and inspect tournament brackets",
		Long:         `bracketctl builds single elimination and free-for-all brackets without a server and prints them, with an optional drawing layout, as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.level.Set(slog.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.ffaCommand())
	root.AddCommand(c.shuffleCommand())
	root.AddCommand(c.tokenCommand())
	return root
}

// treeOutput is what build-like commands print.
type treeOutput struct {
	Tree   brackets.MatchTree `json:"tree"`
	Layout *brackets.Graph    `json:"layout,omitempty"`
}

func (c *CLI) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) printTree(tree brackets.MatchTree, withLayout bool, opts brackets.LayoutOptions) error {
	out := treeOutput{Tree: tree}
	if withLayout {
		graph := brackets.Layout(tree, opts)
		out.Layout = &graph
	}
	return c.printJSON(out)
}

// parseCompetitors reads "id" or "id:name" values. A bare id doubles as the name.
func parseCompetitors(values []string) ([]brackets.Competitor, error) {
	out := make([]brackets.Competitor, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		id, name, found := strings.Cut(v, ":")
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if id == "" {
			return nil, fmt.Errorf("competitor %q has an empty id", v)
		}
		if !found || name == "" {
			name = id
		}
		if seen[id] {
			return nil, fmt.Errorf("competitor %q listed twice", id)
		}
		seen[id] = true
		out = append(out, brackets.Competitor{ID: id, Name: name})
	}
	return out, nil
}

package brackets

import "fmt"

// Node is a match positioned for drawing.
type Node struct {
	ID         string  `json:"id"`
	MatchID    string  `json:"matchId"`
	Round      int     `json:"round"`
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ThirdPlace bool    `json:"thirdPlace,omitempty"`
}

// Edge points from a match to the match its winner feeds.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the drawable form of a MatchTree.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// LayoutOptions holds the geometry constants. Zero fields fall back to the defaults.
type LayoutOptions struct {
	// RoundHeight is the vertical extent the first round is spread over.
	RoundHeight float64
	// FirstColumnWidth is the gap between round 1 and round 2.
	FirstColumnWidth float64
	// ColumnWidth is the gap between any two later rounds.
	ColumnWidth float64
	// ThirdPlaceOffset is how far below the final the third-place match sits.
	ThirdPlaceOffset float64
}

var DefaultLayoutOptions = LayoutOptions{
	RoundHeight:      800,
	FirstColumnWidth: 300,
	ColumnWidth:      400,
	ThirdPlaceOffset: 150,
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.RoundHeight <= 0 {
		o.RoundHeight = DefaultLayoutOptions.RoundHeight
	}
	if o.FirstColumnWidth <= 0 {
		o.FirstColumnWidth = DefaultLayoutOptions.FirstColumnWidth
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = DefaultLayoutOptions.ColumnWidth
	}
	if o.ThirdPlaceOffset <= 0 {
		o.ThirdPlaceOffset = DefaultLayoutOptions.ThirdPlaceOffset
	}
	return o
}

// columnX maps a round to its horizontal position. Round 1 sits at 0; the step to round 2
// and every later step use their own widths.
func (o LayoutOptions) columnX(round int) float64 {
	if round <= 1 {
		return 0
	}
	return o.FirstColumnWidth + float64(round-2)*o.ColumnWidth
}

// Layout computes node positions and edges for tree. It reads the tree only and keeps no
// state between calls, so equal trees always give equal graphs.
func Layout(tree MatchTree, opts LayoutOptions) Graph {
	graph := Graph{Nodes: []Node{}, Edges: []Edge{}}
	if tree.IsEmpty() {
		return graph
	}
	opts = opts.withDefaults()

	ys := make(map[string]float64, len(tree.Matches))
	var deferred []Match

	for _, group := range GroupByRound(tree.Matches) {
		regular := make([]Match, 0, len(group.Matches))
		for _, m := range group.Matches {
			if m.ThirdPlace {
				deferred = append(deferred, m)
				continue
			}
			regular = append(regular, m)
		}

		for i, m := range regular {
			y := 0.0
			if group.Number == 1 {
				step := opts.RoundHeight / float64(len(regular))
				y = float64(i)*step + step/2
			} else {
				y = predecessorMean(m, ys)
			}
			ys[m.ID] = y
			graph.Nodes = append(graph.Nodes, nodeFor(m, opts.columnX(m.Round), y))

			for _, prev := range m.PrevMatchIDs {
				if prev == nil {
					continue
				}
				graph.Edges = append(graph.Edges, Edge{
					ID:     edgeID(*prev, m.ID),
					Source: *prev,
					Target: m.ID,
				})
			}
		}
	}

	for _, m := range deferred {
		y := opts.ThirdPlaceOffset
		round := m.Round
		if final, ok := tree.Final(); ok {
			y += ys[final.ID]
			round = final.Round
		}
		graph.Nodes = append(graph.Nodes, nodeFor(m, opts.columnX(round), y))
	}
	return graph
}

// predecessorMean averages the y of the matches feeding m, ignoring bye feeds and ids that
// are not in the tree. No resolvable predecessor gives 0.
func predecessorMean(m Match, ys map[string]float64) float64 {
	sum, n := 0.0, 0
	for _, prev := range m.PrevMatchIDs {
		if prev == nil {
			continue
		}
		if y, ok := ys[*prev]; ok {
			sum += y
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func nodeFor(m Match, x, y float64) Node {
	return Node{
		ID:         m.ID,
		MatchID:    m.ID,
		Round:      m.Round,
		Label:      m.Name,
		X:          x,
		Y:          y,
		ThirdPlace: m.ThirdPlace,
	}
}

func edgeID(source, target string) string {
	return fmt.Sprintf("%s->%s", source, target)
}

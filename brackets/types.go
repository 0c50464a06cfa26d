package brackets

// Format identifies which builder produced a MatchTree.
type Format string

const (
	FormatSingleElimination Format = "single_elimination"
	FormatFreeForAll        Format = "free_for_all"
)

// Competitor is an entrant slot. An empty Name means the slot is known but not yet assigned.
type Competitor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmptySlot is the sentinel used for a slot that has no competitor yet.
var EmptySlot = Competitor{}

// IsEmpty reports whether c is the empty slot sentinel.
func (c Competitor) IsEmpty() bool {
	return c.ID == "" && c.Name == ""
}

// Match is a single game in a tree.
//
// PrevMatchIDs, when present, holds one entry per participant slot naming the match whose
// winner feeds that slot. A nil entry is a bye feed: the slot was filled directly by the builder.
type Match struct {
	ID           string       `json:"id"`
	Round        int          `json:"round"`
	Number       int          `json:"number"`
	Name         string       `json:"name"`
	Participants []Competitor `json:"participants"`
	PrevMatchIDs []*string    `json:"prevMatchIds,omitempty"`
	ThirdPlace   bool         `json:"thirdPlace,omitempty"`
}

// Clone returns a deep copy of m.
func (m Match) Clone() Match {
	out := m
	if m.Participants != nil {
		out.Participants = make([]Competitor, len(m.Participants))
		copy(out.Participants, m.Participants)
	}
	if m.PrevMatchIDs != nil {
		out.PrevMatchIDs = make([]*string, len(m.PrevMatchIDs))
		for i, id := range m.PrevMatchIDs {
			if id != nil {
				v := *id
				out.PrevMatchIDs[i] = &v
			}
		}
	}
	return out
}

// MatchTree is the ordered output of one build call.
type MatchTree struct {
	Format  Format  `json:"format"`
	Matches []Match `json:"matches"`
}

// IsEmpty reports whether the tree holds no matches.
func (t MatchTree) IsEmpty() bool {
	return len(t.Matches) == 0
}

// Clone returns a deep copy of t.
func (t MatchTree) Clone() MatchTree {
	out := MatchTree{Format: t.Format}
	if t.Matches != nil {
		out.Matches = make([]Match, len(t.Matches))
		for i, m := range t.Matches {
			out.Matches[i] = m.Clone()
		}
	}
	return out
}

// MaxRound returns the highest round number in the tree, 0 for an empty tree.
func (t MatchTree) MaxRound() int {
	maxRound := 0
	for _, m := range t.Matches {
		if m.Round > maxRound {
			maxRound = m.Round
		}
	}
	return maxRound
}

// Final returns the deciding match: the non third-place match of the last round.
func (t MatchTree) Final() (Match, bool) {
	last := t.MaxRound()
	for _, m := range t.Matches {
		if m.Round == last && !m.ThirdPlace {
			return m, true
		}
	}
	return Match{}, false
}

// ThirdPlaceMatch returns the third-place match when the tree has one.
func (t MatchTree) ThirdPlaceMatch() (Match, bool) {
	for _, m := range t.Matches {
		if m.ThirdPlace {
			return m, true
		}
	}
	return Match{}, false
}

// Seeds returns the competitors in seed order as the builder placed them: round-1 slots in
// match order followed by competitors that entered later rounds through a bye.
func (t MatchTree) Seeds() []Competitor {
	seeds := make([]Competitor, 0)
	for _, m := range t.Matches {
		if m.Round == 1 && !m.ThirdPlace {
			seeds = append(seeds, m.Participants...)
		}
	}
	for _, m := range t.Matches {
		if m.Round == 1 || m.ThirdPlace {
			continue
		}
		for slot, id := range m.PrevMatchIDs {
			if id == nil && slot < len(m.Participants) && !m.Participants[slot].IsEmpty() {
				seeds = append(seeds, m.Participants[slot])
			}
		}
	}
	return seeds
}

func stringPtr(s string) *string {
	return &s
}

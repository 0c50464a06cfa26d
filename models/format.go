package models

// FormatParticipantType says whether a format is played by single players or by rosters.
type FormatParticipantType string

const (
	FormatParticipantSolo FormatParticipantType = "solo"
	FormatParticipantTeam FormatParticipantType = "team"
)

// Format describes one bracket format the builders support and which generation options
// apply to it.
type Format struct {
	BracketType      BracketFormat           `json:"bracket_type"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	ParticipantTypes []FormatParticipantType `json:"participant_types"`
	MinCompetitors   int                     `json:"min_competitors"`
	ThirdPlaceMatch  bool                    `json:"third_place_match"`
	UsesTotalRounds  bool                    `json:"uses_total_rounds"`
	SeedingPolicies  []string                `json:"seeding_policies,omitempty"`
}

var supportedFormats = []Format{
	{
		BracketType:      BracketFormatSingleElimination,
		Name:             "Single Elimination",
		Description:      "Knockout bracket. Losers are out; odd fields are balanced with byes and play-in matches.",
		ParticipantTypes: []FormatParticipantType{FormatParticipantSolo, FormatParticipantTeam},
		MinCompetitors:   2,
		ThirdPlaceMatch:  true,
		SeedingPolicies:  []string{"deviation_table", "standard"},
	},
	{
		BracketType:      BracketFormatFreeForAll,
		Name:             "Free For All",
		Description:      "Every competitor plays every round; ranking comes from accumulated results.",
		ParticipantTypes: []FormatParticipantType{FormatParticipantSolo, FormatParticipantTeam},
		MinCompetitors:   2,
		UsesTotalRounds:  true,
	},
}

// SupportedFormats returns a copy of the format catalogue.
func SupportedFormats() []Format {
	out := make([]Format, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

// LookupFormat finds a format by bracket type.
func LookupFormat(t BracketFormat) (Format, bool) {
	for _, f := range supportedFormats {
		if f.BracketType == t {
			return f, true
		}
	}
	return Format{}, false
}

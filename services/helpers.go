package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-brackets/brackets"
	"github.com/Dosada05/tournament-brackets/models"
	"github.com/Dosada05/tournament-brackets/repositories"
)

const (
	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "15:04"
)

func validateGenerateInput(input *GenerateBracketInput) error {
	switch input.Format {
	case "":
		input.Format = models.BracketFormatSingleElimination
	case models.BracketFormatSingleElimination, models.BracketFormatFreeForAll:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}

	switch input.SeedingPolicy {
	case "", string(brackets.PolicyDeviationTable), string(brackets.PolicyStandard):
	default:
		return fmt.Errorf("%w: unknown seeding policy %q", ErrValidationFailed, input.SeedingPolicy)
	}

	if len(input.Competitors) < 2 {
		return fmt.Errorf("%w: found %d, min 2 required", ErrNotEnoughCompetitors, len(input.Competitors))
	}
	seen := make(map[string]bool, len(input.Competitors))
	for i, c := range input.Competitors {
		if c.ID == "" {
			return fmt.Errorf("%w: competitor %d has no id", ErrValidationFailed, i+1)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateCompetitor, c.ID)
		}
		seen[c.ID] = true
	}

	if input.Format == models.BracketFormatFreeForAll {
		if input.TotalRounds < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidRoundCount, input.TotalRounds)
		}
		if input.HasThirdPlaceMatch {
			return fmt.Errorf("%w: free-for-all has no third place match", ErrThirdPlaceNotAllowed)
		}
	}

	return validateSchedule(input.Defaults)
}

func validateSchedule(s models.Schedule) error {
	if s.BestOf < 0 || (s.BestOf > 0 && s.BestOf%2 == 0) {
		return fmt.Errorf("%w: best of must be a positive odd number, got %d", ErrValidationFailed, s.BestOf)
	}
	if s.ScheduledDate != nil {
		if _, err := time.Parse(scheduleDateLayout, *s.ScheduledDate); err != nil {
			return fmt.Errorf("%w: scheduled date %q is not a valid %s date", ErrValidationFailed, *s.ScheduledDate, scheduleDateLayout)
		}
	}
	if s.ScheduledTime != nil {
		if _, err := time.Parse(scheduleTimeLayout, *s.ScheduledTime); err != nil {
			return fmt.Errorf("%w: scheduled time %q is not a valid %s time", ErrValidationFailed, *s.ScheduledTime, scheduleTimeLayout)
		}
	}
	return nil
}

func hasThirdPlace(tree brackets.MatchTree) bool {
	_, ok := tree.ThirdPlaceMatch()
	return ok
}

func totalRoundsFor(input GenerateBracketInput) int {
	if input.Format == models.BracketFormatFreeForAll {
		return input.TotalRounds
	}
	return 0
}

func rosterRefs(cs []brackets.Competitor) []models.RosterRef {
	out := make([]models.RosterRef, len(cs))
	for i, c := range cs {
		out[i] = models.RosterRef{RosterID: c.ID, Name: c.Name}
	}
	return out
}

// handleRepositoryError translates repository sentinels into service errors.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrBracketGroupNotFound),
		errors.Is(err, repositories.ErrBracketMatchNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repositories.ErrBracketGroupNameConflict):
		return ErrGroupNameConflict
	case errors.Is(err, repositories.ErrBracketRoundConflict):
		return fmt.Errorf("%w: %v", ErrBracketConflict, err)
	default:
		return err
	}
}

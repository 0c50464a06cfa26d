package services

import (
	"errors"

	"github.com/Dosada05/tournament-brackets/brackets"
)

var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed     = errors.New("validation failed")
	ErrNotEnoughCompetitors = brackets.ErrNotEnoughCompetitors
	ErrInvalidRoundCount    = brackets.ErrInvalidRoundCount
	ErrUnsupportedFormat    = errors.New("unsupported bracket format")
	ErrDuplicateCompetitor  = errors.New("competitor listed more than once")
	ErrThirdPlaceNotAllowed = errors.New("third place match is not available for this bracket")
	ErrBracketNotGenerated  = errors.New("bracket has not been generated yet")

	ErrGroupNameConflict = errors.New("bracket group name already exists in this tournament")
	ErrBracketConflict   = errors.New("bracket was changed concurrently")
	ErrSnapshotsDisabled = errors.New("layout snapshots are not configured")
)

package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-brackets/brackets"
	"github.com/Dosada05/tournament-brackets/models"
)

// FormatService exposes the catalogue of bracket formats clients can generate.
type FormatService interface {
	GetAllFormats(ctx context.Context) ([]models.Format, error)
	GetFormat(ctx context.Context, bracketType models.BracketFormat) (*models.Format, error)
}

type formatService struct{}

func NewFormatService() FormatService {
	return &formatService{}
}

// GetAllFormats lists the catalogued formats that have a generator.
func (s *formatService) GetAllFormats(ctx context.Context) ([]models.Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := models.SupportedFormats()
	out := make([]models.Format, 0, len(all))
	for _, f := range all {
		if _, ok := brackets.GeneratorFor(brackets.Format(f.BracketType)); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *formatService) GetFormat(ctx context.Context, bracketType models.BracketFormat) (*models.Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, ok := models.LookupFormat(bracketType)
	if !ok {
		return nil, fmt.Errorf("%w: format %q", ErrNotFound, bracketType)
	}
	if _, ok := brackets.GeneratorFor(brackets.Format(f.BracketType)); !ok {
		return nil, fmt.Errorf("%w: format %q", ErrNotFound, bracketType)
	}
	return &f, nil
}

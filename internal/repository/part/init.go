package repository

import (
	"context"

	"github.com/you-humble/part-monitoring/internal/model"
)

type Store interface {
	Load(ctx context.Context) ([]model.Part, error)
	Save(ctx context.Context, parts []model.Part) error
}

// PartsBootstrap fills an empty store with the template parts. A store that
// already holds records is left untouched.
func PartsBootstrap(ctx context.Context, s Store) (bool, error) {
	parts, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(parts) > 0 {
		return false, nil
	}

	if err := s.Save(ctx, model.TemplateParts()); err != nil {
		return false, err
	}

	return true, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type BatchCreator interface {
	CreateBatch(ctx context.Context, parts []*model.Part) error
	Count(ctx context.Context) (int64, error)
}

// PartsBootstrap seeds an empty catalog with parts. A catalog that already
// holds documents is left as is.
func PartsBootstrap(ctx context.Context, c BatchCreator, parts []*model.Part) error {
	const op = "repository.PartsBootstrap"

	n, err := c.Count(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		logger.Info(ctx, "catalog already seeded", logger.Int("parts", int(n)))
		return nil
	}

	if err := c.CreateBatch(ctx, parts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info(ctx, "catalog seeded", logger.Int("parts", len(parts)))
	return nil
}

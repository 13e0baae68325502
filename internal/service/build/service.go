package build

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type PartLookup interface {
	PartByID(ctx context.Context, id string) (*model.Part, error)
}

type service struct {
	parts         PartLookup
	readDBTimeout time.Duration
}

func NewBuildService(parts PartLookup, readDBTimeout time.Duration) *service {
	return &service{parts: parts, readDBTimeout: readDBTimeout}
}

// Resolve loads the part behind every slot and assembles a configuration.
// Blank ids leave the slot empty. A part that sits in the wrong slot fails
// with ErrCategoryMismatch.
func (s *service) Resolve(ctx context.Context, slots map[model.Category]string) (model.Configuration, error) {
	const op = "build.service.Resolve"
	log := logger.With(logger.Int("slots", len(slots)))

	for cat := range slots {
		if !cat.Valid() {
			log.Warn(ctx, "validation: unknown slot", logger.String("slot", string(cat)))
			return model.Configuration{}, errors.Join(
				model.ErrInvalidArgument,
				fmt.Errorf("%w: %q", model.ErrUnknownCategory, cat),
			)
		}
	}

	if s.readDBTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readDBTimeout)
		defer cancel()
	}

	resolved := make(map[model.Category]*model.Part, len(slots))
	for _, cat := range model.Categories() {
		id, ok := slots[cat]
		if !ok {
			continue
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		p, err := s.parts.PartByID(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrPartNotFound) {
				log.Warn(ctx, "part by id: not found", logger.String("part_id", id))
			} else {
				log.Error(ctx, "part by id", logger.String("part_id", id), logger.ErrorF(err))
			}
			return model.Configuration{}, fmt.Errorf("%s: %w", op, err)
		}
		resolved[cat] = p
	}

	cfg, err := model.ConfigurationFromSlots(resolved)
	if err != nil {
		log.Warn(ctx, "assemble configuration", logger.ErrorF(err))
		return model.Configuration{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

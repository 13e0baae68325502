package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/platform/kafka"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type KafkaConverter interface {
	BuildSubmittedToModel([]byte) (model.BuildSubmitted, error)
	BuildVerifiedToPayload(model.BuildVerified) ([]byte, error)
}

type BuildResolver interface {
	Resolve(ctx context.Context, slots map[model.Category]string) (model.Configuration, error)
}

type Validator interface {
	Validate(cfg model.Configuration) model.ValidationReport
}

type service struct {
	consumer  kafka.Consumer
	producer  kafka.Producer
	conv      KafkaConverter
	resolver  BuildResolver
	validator Validator
	now       func() time.Time
}

func NewVerificationService(
	consumer kafka.Consumer,
	producer kafka.Producer,
	conv KafkaConverter,
	resolver BuildResolver,
	validator Validator,
) *service {
	return &service{
		consumer:  consumer,
		producer:  producer,
		conv:      conv,
		resolver:  resolver,
		validator: validator,
		now:       time.Now,
	}
}

func (s *service) RunConsumer(ctx context.Context) error {
	logger.Info(ctx, "Starting build submitted consumer")

	if err := s.consumer.Consume(ctx, s.buildSubmittedHandler); err != nil {
		logger.Error(ctx, "Consume from build.submitted topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *service) buildSubmittedHandler(ctx context.Context, msg kafka.Message) error {
	event, err := s.conv.BuildSubmittedToModel(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode BuildSubmitted", logger.ErrorF(err))
		return fmt.Errorf("converter build_submitted_to_model error: %w", err)
	}

	log := logger.With(
		logger.String("event_id", event.EventID),
		logger.String("post_id", event.PostID),
		logger.String("user_id", event.UserID),
		logger.Int("slots", len(event.Slots)),
		logger.Strings("unknown_slots", event.UnknownSlots),
	)

	verified, err := s.verify(ctx, event)
	if err != nil {
		log.Error(ctx, "Failed to verify build", logger.ErrorF(err))
		return err
	}

	log.Info(ctx, "Build verified",
		logger.Bool("verified", verified.Verified),
		logger.Int("warnings", len(verified.Warnings)),
		logger.Float64("total_wattage", verified.TotalWattage),
	)

	payload, err := s.conv.BuildVerifiedToPayload(verified)
	if err != nil {
		return fmt.Errorf("converter build_verified_to_payload error: %w", err)
	}

	if err := s.producer.Send(ctx, []byte(event.PostID), payload); err != nil {
		log.Error(ctx, "Failed to send BuildVerified", logger.ErrorF(err))
		return fmt.Errorf("produce to build.verified topic error: %w", err)
	}
	return nil
}

// verify resolves and validates a submitted build. A build that uses unknown
// slots, references parts missing from the catalog or places them in the
// wrong slot is reported as unverified. Other resolver errors are returned.
func (s *service) verify(ctx context.Context, event model.BuildSubmitted) (model.BuildVerified, error) {
	out := model.BuildVerified{
		EventID:   event.EventID,
		PostID:    event.PostID,
		CheckedAt: s.now(),
	}

	if len(event.UnknownSlots) > 0 {
		out.Warnings = []string{fmt.Sprintf("Build cannot be verified: %v: %s",
			model.ErrUnknownCategory, strings.Join(event.UnknownSlots, ", "))}
		return out, nil
	}

	cfg, err := s.resolver.Resolve(ctx, event.Slots)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrPartNotFound),
		errors.Is(err, model.ErrCategoryMismatch),
		errors.Is(err, model.ErrInvalidArgument):
		out.Warnings = []string{fmt.Sprintf("Build cannot be verified: %v", err)}
		return out, nil
	default:
		return model.BuildVerified{}, err
	}

	report := s.validator.Validate(cfg)
	out.Verified = report.Compatible
	out.TotalPrice = report.TotalPrice
	out.TotalWattage = report.TotalWattage
	out.Warnings = report.Warnings
	return out, nil
}

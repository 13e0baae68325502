package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you-humble/pcbuilder/internal/model"
)

type buildSubmittedRecord struct {
	EventID string            `json:"event_id"`
	PostID  string            `json:"post_id"`
	UserID  string            `json:"user_id"`
	Parts   map[string]string `json:"parts"`
}

type buildVerifiedRecord struct {
	EventID      string    `json:"event_id"`
	PostID       string    `json:"post_id"`
	Verified     bool      `json:"verified"`
	TotalPrice   float64   `json:"total_price"`
	TotalWattage float64   `json:"total_wattage"`
	Warnings     []string  `json:"warnings"`
	CheckedAt    time.Time `json:"checked_at"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

// BuildSubmittedToModel decodes a build.submitted record. Slot keys may be a
// category name or its slug; keys naming no category are kept in
// UnknownSlots. A missing event id is generated.
func (c *kafkaConverter) BuildSubmittedToModel(data []byte) (model.BuildSubmitted, error) {
	var rec buildSubmittedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.BuildSubmitted{}, fmt.Errorf("failed to unmarshal build submitted: %w", err)
	}

	if strings.TrimSpace(rec.PostID) == "" {
		return model.BuildSubmitted{}, errors.Join(model.ErrInvalidArgument, errors.New("post_id is required"))
	}
	if rec.EventID == "" {
		rec.EventID = uuid.NewString()
	}

	slots := make(map[model.Category]string, len(rec.Parts))
	var unknown []string
	for key, id := range rec.Parts {
		cat, err := model.ParseCategory(key)
		if err != nil {
			unknown = append(unknown, key)
			continue
		}
		slots[cat] = id
	}
	slices.Sort(unknown)

	return model.BuildSubmitted{
		EventID:      rec.EventID,
		PostID:       rec.PostID,
		UserID:       rec.UserID,
		Slots:        slots,
		UnknownSlots: unknown,
	}, nil
}

func (c *kafkaConverter) BuildVerifiedToPayload(m model.BuildVerified) ([]byte, error) {
	warnings := m.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	payload, err := json.Marshal(buildVerifiedRecord{
		EventID:      m.EventID,
		PostID:       m.PostID,
		Verified:     m.Verified,
		TotalPrice:   m.TotalPrice,
		TotalWattage: m.TotalWattage,
		Warnings:     warnings,
		CheckedAt:    m.CheckedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal build verified: %w", err)
	}
	return payload, nil
}

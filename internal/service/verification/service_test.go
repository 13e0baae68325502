package verification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/pcbuilder/internal/converter"
	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/internal/repository/memory"
	"github.com/you-humble/pcbuilder/internal/repository/seed"
	"github.com/you-humble/pcbuilder/internal/service/build"
	"github.com/you-humble/pcbuilder/internal/service/validation"
	"github.com/you-humble/pcbuilder/platform/kafka"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type fakeConsumer struct {
	consumeFn func(ctx context.Context, handler kafka.MessageHandler) error
}

func (c fakeConsumer) Consume(ctx context.Context, handler kafka.MessageHandler) error {
	return c.consumeFn(ctx, handler)
}

type fakeProducer struct {
	sendFn func(ctx context.Context, key, value []byte) error

	calls int
	lastK []byte
	lastV []byte
}

func (p *fakeProducer) Send(ctx context.Context, key, value []byte) error {
	p.calls++
	p.lastK = append([]byte(nil), key...)
	p.lastV = append([]byte(nil), value...)
	if p.sendFn == nil {
		return nil
	}
	return p.sendFn(ctx, key, value)
}

type fakeResolver struct {
	err error
}

func (r fakeResolver) Resolve(context.Context, map[model.Category]string) (model.Configuration, error) {
	return model.Configuration{}, r.err
}

type verifiedRecord struct {
	PostID       string   `json:"post_id"`
	Verified     bool     `json:"verified"`
	TotalWattage float64  `json:"total_wattage"`
	Warnings     []string `json:"warnings"`
	CheckedAt    string   `json:"checked_at"`
}

func newCatalogResolver(t *testing.T) BuildResolver {
	t.Helper()

	parts, err := seed.Parts()
	require.NoError(t, err)
	repo, err := memory.NewPartRepository(parts)
	require.NoError(t, err)
	return build.NewBuildService(repo, time.Second)
}

func deliver(payload string) func(ctx context.Context, handler kafka.MessageHandler) error {
	return func(ctx context.Context, handler kafka.MessageHandler) error {
		return handler(ctx, kafka.Message{Topic: "build.submitted", Value: []byte(payload)})
	}
}

func TestServiceRunConsumer(t *testing.T) {
	t.Parallel()

	logger.SetNopLogger()
	checked := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		payload   string
		resolver  func(t *testing.T) BuildResolver
		sendErr   error
		wantErr   bool
		wantSends int
		assert    func(t *testing.T, rec verifiedRecord, p *fakeProducer)
	}{
		{
			name:      "compatible build is verified",
			payload:   `{"post_id": "post-1", "parts": {"CPU": "cpu2", "Motherboard": "mb2", "RAM": "ram1", "psu": "psu1"}}`,
			resolver:  newCatalogResolver,
			wantSends: 1,
			assert: func(t *testing.T, rec verifiedRecord, p *fakeProducer) {
				assert.Equal(t, "post-1", string(p.lastK))
				assert.True(t, rec.Verified)
				assert.Equal(t, 180.0, rec.TotalWattage)
				assert.Empty(t, rec.Warnings)
				assert.Equal(t, "2025-01-02T03:04:05Z", rec.CheckedAt)
			},
		},
		{
			name:      "socket mismatch is not verified",
			payload:   `{"post_id": "post-2", "parts": {"cpu": "cpu1", "motherboard": "mb2"}}`,
			resolver:  newCatalogResolver,
			wantSends: 1,
			assert: func(t *testing.T, rec verifiedRecord, p *fakeProducer) {
				assert.False(t, rec.Verified)
				require.Len(t, rec.Warnings, 2)
				assert.Contains(t, rec.Warnings[0], "Socket")
				assert.Contains(t, rec.Warnings[1], "PSU")
			},
		},
		{
			name:      "unknown part is reported unverified",
			payload:   `{"post_id": "post-3", "parts": {"GPU": "gpu-404"}}`,
			resolver:  newCatalogResolver,
			wantSends: 1,
			assert: func(t *testing.T, rec verifiedRecord, p *fakeProducer) {
				assert.False(t, rec.Verified)
				require.Len(t, rec.Warnings, 1)
				assert.Contains(t, rec.Warnings[0], "part not found")
			},
		},
		{
			name:      "part in the wrong slot is reported unverified",
			payload:   `{"post_id": "post-4", "parts": {"GPU": "cpu1"}}`,
			resolver:  newCatalogResolver,
			wantSends: 1,
			assert: func(t *testing.T, rec verifiedRecord, p *fakeProducer) {
				assert.False(t, rec.Verified)
				assert.NotEmpty(t, rec.Warnings)
			},
		},
		{
			name:      "unknown slot is reported unverified",
			payload:   `{"post_id": "p1", "parts": {"Monitor": "m1"}}`,
			resolver:  newCatalogResolver,
			wantSends: 1,
			assert: func(t *testing.T, rec verifiedRecord, p *fakeProducer) {
				assert.Equal(t, "p1", string(p.lastK))
				assert.Equal(t, "p1", rec.PostID)
				assert.False(t, rec.Verified)
				assert.Equal(t, []string{"Build cannot be verified: unknown category: Monitor"}, rec.Warnings)
			},
		},
		{
			name:      "unknown slot next to known parts is reported unverified",
			payload:   `{"post_id": "p2", "parts": {"CPU": "cpu2", "Monitor": "m1"}}`,
			resolver:  newCatalogResolver,
			wantSends: 1,
			assert: func(t *testing.T, rec verifiedRecord, p *fakeProducer) {
				assert.False(t, rec.Verified)
				require.Len(t, rec.Warnings, 1)
				assert.Contains(t, rec.Warnings[0], "Monitor")
				assert.Zero(t, rec.TotalWattage)
			},
		},
		{
			name:     "malformed payload is an error, nothing sent",
			payload:  `not json`,
			resolver: newCatalogResolver,
			wantErr:  true,
		},
		{
			name:    "resolver infrastructure error is returned",
			payload: `{"post_id": "post-5", "parts": {"GPU": "gpu1"}}`,
			resolver: func(*testing.T) BuildResolver {
				return fakeResolver{err: errors.New("db down")}
			},
			wantErr: true,
		},
		{
			name:      "producer error is returned",
			payload:   `{"post_id": "post-6"}`,
			resolver:  newCatalogResolver,
			sendErr:   errors.New("broker gone"),
			wantErr:   true,
			wantSends: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prod := &fakeProducer{}
			if tt.sendErr != nil {
				prod.sendFn = func(context.Context, []byte, []byte) error { return tt.sendErr }
			}

			s := NewVerificationService(
				fakeConsumer{consumeFn: deliver(tt.payload)},
				prod,
				converter.NewKafkaConverter(),
				tt.resolver(t),
				validation.NewValidationService(nil),
			)
			s.now = func() time.Time { return checked }

			err := s.RunConsumer(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSends, prod.calls)

			if tt.assert != nil {
				var rec verifiedRecord
				require.NoError(t, json.Unmarshal(prod.lastV, &rec))
				tt.assert(t, rec, prod)
			}
		})
	}
}

func TestServiceRunConsumerError(t *testing.T) {
	t.Parallel()

	logger.SetNopLogger()
	wantErr := errors.New("consume error")

	s := NewVerificationService(
		fakeConsumer{consumeFn: func(context.Context, kafka.MessageHandler) error { return wantErr }},
		&fakeProducer{},
		converter.NewKafkaConverter(),
		fakeResolver{},
		validation.NewValidationService(nil),
	)

	assert.ErrorIs(t, s.RunConsumer(context.Background()), wantErr)
}

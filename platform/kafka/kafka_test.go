package kafka_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you-humble/pcbuilder/platform/kafka"
	"github.com/you-humble/pcbuilder/platform/kafka/middleware"
)

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(_ context.Context, msg string, _ ...zap.Field) {
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Error(_ context.Context, msg string, _ ...zap.Field) {
	l.errors = append(l.errors, msg)
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	tag := func(name string) kafka.Middleware {
		return func(next kafka.MessageHandler) kafka.MessageHandler {
			return func(ctx context.Context, msg kafka.Message) error {
				calls = append(calls, name)
				return next(ctx, msg)
			}
		}
	}

	h := kafka.Chain(func(context.Context, kafka.Message) error {
		calls = append(calls, "handler")
		return nil
	}, tag("first"), tag("second"))

	require.NoError(t, h(context.Background(), kafka.Message{}))
	assert.Equal(t, []string{"first", "second", "handler"}, calls)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	h := kafka.Chain(func(context.Context, kafka.Message) error {
		panic("boom")
	}, middleware.Recovery(log))

	err := h(context.Background(), kafka.Message{Topic: "build.submitted", Offset: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Len(t, log.errors, 1)
}

func TestRecoveryPassesErrors(t *testing.T) {
	t.Parallel()

	log := &recordingLogger{}
	wantErr := errors.New("handler failed")
	h := kafka.Chain(func(context.Context, kafka.Message) error {
		return wantErr
	}, middleware.Recovery(log), middleware.Logging(log))

	assert.ErrorIs(t, h(context.Background(), kafka.Message{Key: []byte("post-1")}), wantErr)
	assert.Empty(t, log.errors)
	assert.Equal(t, []string{"Kafka msg received"}, log.infos)
}

func TestMessageHeader(t *testing.T) {
	t.Parallel()

	msg := kafka.Message{Headers: map[string][]byte{kafka.HeaderContentType: []byte("application/json")}}
	assert.Equal(t, "application/json", msg.Header(kafka.HeaderContentType))
	assert.Empty(t, kafka.Message{}.Header(kafka.HeaderContentType))
}

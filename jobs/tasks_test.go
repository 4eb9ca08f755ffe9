package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/gharinto/platform/internal/jobs"
)

type stubSessionStore struct {
	removed int64
	err     error
	calls   int
}

func (s *stubSessionStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.calls++
	return s.removed, s.err
}

func TestSessionsPurgeHandler(t *testing.T) {
	store := &stubSessionStore{removed: 3}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := jobmetrics.NewMetrics(prometheus.NewRegistry())

	handler := NewSessionsPurgeHandler(store, logger, metrics)

	require.NoError(t, handler(context.Background(), NewSessionsPurgeTask()))
	assert.Equal(t, 1, store.calls)
}

func TestSessionsPurgeHandlerPropagatesError(t *testing.T) {
	store := &stubSessionStore{err: errors.New("storage offline")}
	metrics := jobmetrics.NewMetrics(prometheus.NewRegistry())

	handler := NewSessionsPurgeHandler(store, nil, metrics)

	err := handler(context.Background(), NewSessionsPurgeTask())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage offline")
}

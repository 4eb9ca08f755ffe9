package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/gharinto/platform/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsPurge removes expired session audit rows.
	TaskSessionsPurge = "sessions:purge"
)

// SessionStore is the slice of the auth repository the purge task needs.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// NewSessionsPurgeTask constructs an Asynq task. The task carries no payload;
// expiry lives in the rows themselves.
func NewSessionsPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskSessionsPurge, nil)
}

// NewSessionsPurgeHandler returns the handler for TaskSessionsPurge tasks.
func NewSessionsPurgeHandler(store SessionStore, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskSessionsPurge)
		removed, err := store.DeleteExpiredSessions(ctx)
		if err != nil {
			return tracker.End(err)
		}
		if logger != nil {
			logger.Info("expired sessions purged",
				slog.String("job", TaskSessionsPurge),
				slog.Int64("removed", removed))
		}
		return tracker.End(nil)
	}
}

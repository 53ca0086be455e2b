package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// RoleChangeWorker processes role-change jobs from the River queue.
// For now it logs the change; future versions will dispatch to
// analytics, personalization, or notification systems.
type RoleChangeWorker struct {
	river.WorkerDefaults[RoleChangeArgs]
}

// Work processes a single role-change job.
func (w *RoleChangeWorker) Work(ctx context.Context, job *river.Job[RoleChangeArgs]) error {
	slog.InfoContext(ctx, "processing role change",
		"role", job.Args.Role,
		"previous", job.Args.Previous,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}

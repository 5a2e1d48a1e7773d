package syncing

import (
	"context"
	"fmt"

	"github.com/contre95/soulsync/src/features/jobs"
)

// SyncTask implements jobs.Task for volume syncs.
type SyncTask struct {
	service *Service
}

// NewSyncTask creates a new SyncTask.
func NewSyncTask(service *Service) *SyncTask {
	return &SyncTask{service: service}
}

// MetadataKeys returns the required metadata keys for a sync job.
func (t *SyncTask) MetadataKeys() []string {
	return []string{"uuid", "mountPath"}
}

// Execute plans and applies one reconciliation pass against the volume.
func (t *SyncTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	uuid := job.Metadata["uuid"].(string)
	mountPath := job.Metadata["mountPath"].(string)

	_, managedRoot, _, err := t.service.mountedDevice(uuid)
	if err != nil {
		return nil, err
	}

	if job.Logger != nil {
		job.Logger.Info("Planning sync", "uuid", uuid, "mountPath", mountPath)
	}
	progressUpdater(0, "Planning")

	plan, report, err := t.service.PlanDevice(uuid)
	if err != nil {
		if t.service.recorder != nil {
			t.service.recorder.RecordSyncFailure()
		}
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	if job.Logger != nil {
		job.Logger.Info("Plan built",
			"copies", report.Copies, "deletes", report.Deletes, "keeps", report.Keeps,
			"plannedBytes", report.PlannedBytes, "truncated", report.CapacityExceeded)
	}

	stats, err := t.service.executor.Apply(ctx, mountPath, managedRoot, plan, func(done, total int, msg string) {
		if total == 0 {
			progressUpdater(100, msg)
			return
		}
		progressUpdater(done*100/total, msg)
	})
	if err != nil {
		if ctx.Err() == context.Canceled {
			return nil, ctx.Err()
		}
		if t.service.recorder != nil {
			t.service.recorder.RecordSyncFailure()
		}
		return nil, fmt.Errorf("sync failed: %w", err)
	}

	if t.service.recorder != nil {
		t.service.recorder.RecordExecution(stats)
	}

	return map[string]any{
		"copied":      stats.Copied,
		"deleted":     stats.Deleted,
		"kept":        stats.Kept,
		"bytesCopied": stats.BytesCopied,
	}, nil
}

// Cleanup does nothing for volume syncs.
func (t *SyncTask) Cleanup(job *jobs.Job) error {
	return nil
}

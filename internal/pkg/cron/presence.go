package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
)

// PresenceRetentionJob purges raw face-detection samples once they age past
// the retention window. Samples only matter while a check-in decision is
// being made, so the table is kept short.
type PresenceRetentionJob struct {
	detectionRepo presence.DetectionRepository
	retentionDays int
}

func NewPresenceRetentionJob(detectionRepo presence.DetectionRepository, retentionDays int) *PresenceRetentionJob {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &PresenceRetentionJob{
		detectionRepo: detectionRepo,
		retentionDays: retentionDays,
	}
}

func (j *PresenceRetentionJob) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_presence_detections", 24*time.Hour, j.PurgeExpiredDetections)
}

func (j *PresenceRetentionJob) PurgeExpiredDetections(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.detectionRepo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge presence detections: %w", err)
	}

	if deleted > 0 {
		slog.Info("Cron: Purged expired presence detections",
			"count", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}

package presence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
)

type ServiceImpl struct {
	presence.DetectionRepository
}

func NewPresenceService(repo presence.DetectionRepository) presence.Service {
	return &ServiceImpl{DetectionRepository: repo}
}

// RecordDetection appends a detection sample. No validation: the samples are
// raw liveness evidence streamed by the recognition capability.
func (s *ServiceImpl) RecordDetection(ctx context.Context, employeeID string, at time.Time) error {
	detection := presence.Detection{
		EmployeeID:    employeeID,
		DetectionTime: at,
		Date:          at.UTC().Truncate(24 * time.Hour),
	}
	if err := s.DetectionRepository.Record(ctx, detection); err != nil {
		return fmt.Errorf("failed to record detection: %w", err)
	}
	return nil
}

// IsSatisfied validates that a punch is backed by enough recent detections.
// True when the in-window count reaches the count threshold, or when at
// least two samples span the required duration; a single static frame can
// satisfy neither. Zero samples, a zero window, and store failures all
// reject: the check fails closed.
func (s *ServiceImpl) IsSatisfied(ctx context.Context, employeeID string, date time.Time, thresholds presence.Thresholds) bool {
	now := time.Now().UTC()
	since := now.Add(-time.Duration(thresholds.PresenceWindowSeconds) * time.Second)

	detections, err := s.DetectionRepository.ListSince(ctx, employeeID, date, since)
	if err != nil {
		slog.Error("Presence check failed, rejecting punch",
			"employee_id", employeeID, "error", err)
		return false
	}

	if len(detections) == 0 {
		return false
	}

	if thresholds.PresenceCount > 0 && len(detections) >= thresholds.PresenceCount {
		return true
	}

	if thresholds.PresenceTimeSeconds > 0 && len(detections) >= 2 {
		// ListSince orders newest-first.
		newest := detections[0].DetectionTime
		oldest := detections[len(detections)-1].DetectionTime
		span := newest.Sub(oldest)
		if span >= time.Duration(thresholds.PresenceTimeSeconds)*time.Second {
			return true
		}
	}

	return false
}

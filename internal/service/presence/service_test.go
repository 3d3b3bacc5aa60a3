package presence

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
)

type fakeDetectionRepo struct {
	detections []presence.Detection
	failList   bool
}

func (f *fakeDetectionRepo) Record(_ context.Context, d presence.Detection) error {
	f.detections = append(f.detections, d)
	return nil
}

func (f *fakeDetectionRepo) ListSince(_ context.Context, employeeID string, date time.Time, since time.Time) ([]presence.Detection, error) {
	if f.failList {
		return nil, errors.New("connection reset")
	}
	var out []presence.Detection
	for _, d := range f.detections {
		if d.EmployeeID == employeeID && d.Date.Equal(date) && !d.DetectionTime.Before(since) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DetectionTime.After(out[j].DetectionTime)
	})
	return out, nil
}

func (f *fakeDetectionRepo) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []presence.Detection
	var deleted int64
	for _, d := range f.detections {
		if d.DetectionTime.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	f.detections = kept
	return deleted, nil
}

func seedDetections(repo *fakeDetectionRepo, employeeID string, times ...time.Time) {
	for _, t := range times {
		repo.detections = append(repo.detections, presence.Detection{
			EmployeeID:    employeeID,
			DetectionTime: t,
			Date:          t.UTC().Truncate(24 * time.Hour),
		})
	}
}

func TestIsSatisfiedByCount(t *testing.T) {
	repo := &fakeDetectionRepo{}
	now := time.Now().UTC()
	seedDetections(repo, "emp-1", now.Add(-3*time.Second), now.Add(-2*time.Second), now.Add(-1*time.Second))

	svc := NewPresenceService(repo)
	date := now.Truncate(24 * time.Hour)

	ok := svc.IsSatisfied(context.Background(), "emp-1", date, presence.Thresholds{
		PresenceCount:         3,
		PresenceWindowSeconds: 10,
	})
	assert.True(t, ok)
}

func TestIsSatisfiedBelowCount(t *testing.T) {
	repo := &fakeDetectionRepo{}
	now := time.Now().UTC()
	// Two samples inside the window, threshold asks for three.
	seedDetections(repo, "emp-1", now.Add(-4*time.Second), now.Add(-1*time.Second))

	svc := NewPresenceService(repo)
	date := now.Truncate(24 * time.Hour)

	ok := svc.IsSatisfied(context.Background(), "emp-1", date, presence.Thresholds{
		PresenceCount:         3,
		PresenceWindowSeconds: 5,
	})
	assert.False(t, ok)
}

func TestIsSatisfiedByDuration(t *testing.T) {
	repo := &fakeDetectionRepo{}
	now := time.Now().UTC()
	seedDetections(repo, "emp-1", now.Add(-8*time.Second), now.Add(-1*time.Second))

	svc := NewPresenceService(repo)
	date := now.Truncate(24 * time.Hour)

	ok := svc.IsSatisfied(context.Background(), "emp-1", date, presence.Thresholds{
		PresenceTimeSeconds:   5,
		PresenceWindowSeconds: 30,
	})
	assert.True(t, ok)
}

func TestIsSatisfiedRejectsSingleFrame(t *testing.T) {
	repo := &fakeDetectionRepo{}
	now := time.Now().UTC()
	seedDetections(repo, "emp-1", now.Add(-1*time.Second))

	svc := NewPresenceService(repo)
	date := now.Truncate(24 * time.Hour)

	// One frame can never prove a span, whatever its timestamp.
	ok := svc.IsSatisfied(context.Background(), "emp-1", date, presence.Thresholds{
		PresenceTimeSeconds:   5,
		PresenceWindowSeconds: 30,
	})
	assert.False(t, ok)
}

func TestIsSatisfiedRejectsNoDetections(t *testing.T) {
	svc := NewPresenceService(&fakeDetectionRepo{})
	now := time.Now().UTC()

	ok := svc.IsSatisfied(context.Background(), "emp-1", now.Truncate(24*time.Hour), presence.Thresholds{
		PresenceCount:         1,
		PresenceWindowSeconds: 30,
	})
	assert.False(t, ok)
}

func TestIsSatisfiedFailsClosedOnStoreError(t *testing.T) {
	repo := &fakeDetectionRepo{failList: true}
	now := time.Now().UTC()
	seedDetections(repo, "emp-1", now.Add(-1*time.Second), now.Add(-2*time.Second), now.Add(-3*time.Second))

	svc := NewPresenceService(repo)

	ok := svc.IsSatisfied(context.Background(), "emp-1", now.Truncate(24*time.Hour), presence.Thresholds{
		PresenceCount:         1,
		PresenceWindowSeconds: 30,
	})
	assert.False(t, ok)
}

func TestRecordDetection(t *testing.T) {
	repo := &fakeDetectionRepo{}
	svc := NewPresenceService(repo)

	at := time.Date(2026, 8, 28, 9, 0, 3, 0, time.UTC)
	require.NoError(t, svc.RecordDetection(context.Background(), "emp-1", at))

	require.Len(t, repo.detections, 1)
	assert.Equal(t, "emp-1", repo.detections[0].EmployeeID)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), repo.detections[0].Date)
}

func TestPurgeOlderThan(t *testing.T) {
	repo := &fakeDetectionRepo{}
	now := time.Now().UTC()
	seedDetections(repo, "emp-1",
		now.AddDate(0, 0, -10),
		now.AddDate(0, 0, -8),
		now.Add(-time.Hour),
	)

	deleted, err := repo.PurgeOlderThan(context.Background(), now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Len(t, repo.detections, 1)
}

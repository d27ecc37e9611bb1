package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
	"github.com/hihsk/hihsk/internal/repository"
)

// Scheduler runs the nightly per-user stats snapshot.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	progressRepo repository.ProgressRepository
	resultRepo   repository.ResultRepository
	snapshotHour int
	log          *logger.Logger
}

// New creates a Scheduler that snapshots daily stats at snapshotHour
// (UTC, 0-23).
func New(progressRepo repository.ProgressRepository, resultRepo repository.ResultRepository, snapshotHour int) *Scheduler {
	if snapshotHour < 0 || snapshotHour > 23 {
		snapshotHour = 3
	}
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		progressRepo: progressRepo,
		resultRepo:   resultRepo,
		snapshotHour: snapshotHour,
		log:          logger.Default().WithPrefix("scheduler"),
	}
}

// Start schedules the snapshot job and runs the scheduler in the
// background.
func (s *Scheduler) Start() error {
	at := fmt.Sprintf("%02d:00", s.snapshotHour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.snapshotAll); err != nil {
		return fmt.Errorf("schedule daily stats snapshot: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("daily stats snapshot scheduled at %s UTC", at)
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// snapshotAll records yesterday's review activity and the current
// mastered-word count for every known user.
func (s *Scheduler) snapshotAll() {
	ctx := logger.NewContext(context.Background(), s.log)
	now := time.Now().UTC()
	day := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
	since := day

	users, err := s.progressRepo.UserIDs(ctx)
	if err != nil {
		s.log.Error("failed to list users for snapshot: %v", err)
		return
	}
	s.log.Info("snapshotting daily stats for %d users", len(users))

	for _, userID := range users {
		if err := s.SnapshotUser(ctx, userID, day, since); err != nil {
			s.log.Error("failed to snapshot user %s: %v", userID, err)
		}
	}
}

// SnapshotUser records one user's stats for the given day, counting
// reviews made since the start of that day.
func (s *Scheduler) SnapshotUser(ctx context.Context, userID string, day, since time.Time) error {
	total, correct, err := s.progressRepo.CountReviewsSince(ctx, userID, since)
	if err != nil {
		return fmt.Errorf("count reviews: %w", err)
	}
	mastered, err := s.progressRepo.CountByStatus(ctx, userID, models.StatusMastered)
	if err != nil {
		return fmt.Errorf("count mastered words: %w", err)
	}

	return s.resultRepo.SnapshotDailyStats(ctx, models.DailyStats{
		UserID:         userID,
		Day:            day,
		Reviews:        total,
		CorrectReviews: correct,
		MasteredWords:  mastered,
	})
}

package srs

import (
	"time"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/models"
)

// Policy holds the interval curve and status thresholds. Callers that
// want a different curve swap the policy, not the scheduler.
type Policy struct {
	// FirstInterval is applied after the first review, SecondInterval
	// after the second. Later reviews scale the time elapsed since the
	// previous review by the rating multiplier.
	FirstInterval  time.Duration
	SecondInterval time.Duration
	EasyMultiplier float64
	HardMultiplier float64
	// ForgotDelay schedules a forgotten word for a near-term retry.
	ForgotDelay time.Duration
	MaxInterval time.Duration
	// MasteryThreshold is the correct-answer count that moves a word
	// from Learning to Reviewing; twice that reaches Mastered.
	MasteryThreshold int
}

// DefaultPolicy returns the stock interval curve: 1 day, 3 days, then
// elapsed-time scaling with +30% for easy and -20% for hard, capped at
// a year. Forgotten words come back after 10 minutes.
func DefaultPolicy() Policy {
	return Policy{
		FirstInterval:    24 * time.Hour,
		SecondInterval:   72 * time.Hour,
		EasyMultiplier:   1.3,
		HardMultiplier:   0.8,
		ForgotDelay:      10 * time.Minute,
		MaxInterval:      365 * 24 * time.Hour,
		MasteryThreshold: 3,
	}
}

// Scheduler is the pure state-transition half of the review engine: it
// never touches storage, it only maps progress + rating to new progress.
type Scheduler struct {
	policy Policy
}

func New(policy Policy) *Scheduler {
	return &Scheduler{policy: policy}
}

// IsDue reports whether a word should be reviewed now. A missing
// progress record means the word has never been seen and is always due.
func IsDue(progress *models.WordProgress, now time.Time) bool {
	if progress == nil {
		return true
	}
	return !now.Before(progress.NextReviewDate)
}

// NewProgress initializes the progress record for a word the user has
// no history with.
func NewProgress(userID string, wordID int64, now time.Time) models.WordProgress {
	return models.WordProgress{
		UserID:         userID,
		WordID:         wordID,
		Status:         models.StatusNew,
		NextReviewDate: now,
	}
}

// ApplyRating maps the current progress and the user's rating to the
// next progress. Counters only ever grow: review_count always equals
// correct_count + wrong_count afterwards.
func (s *Scheduler) ApplyRating(progress *models.WordProgress, rating models.Rating, now time.Time) (models.WordProgress, error) {
	if !rating.Valid() {
		return models.WordProgress{}, errors.NewInvalidRatingError(string(rating))
	}

	var p models.WordProgress
	if progress == nil {
		p = NewProgress("", 0, now)
	} else {
		p = *progress
	}
	if !p.Consistent() {
		return models.WordProgress{}, errors.NewInvalidProgressError(p.WordID, "counters inconsistent before update")
	}

	prevReviewedAt := p.LastReviewedAt
	p.ReviewCount++
	reviewedAt := now
	p.LastReviewedAt = &reviewedAt

	switch rating {
	case models.RatingEasy:
		p.CorrectCount++
		p.Status = s.promote(p)
		p.NextReviewDate = s.nextReview(p, prevReviewedAt, now, s.policy.EasyMultiplier)
	case models.RatingHard:
		p.CorrectCount++
		if p.Status == models.StatusMastered {
			p.Status = models.StatusReviewing
		}
		if p.Status == models.StatusNew {
			p.Status = models.StatusLearning
		}
		p.NextReviewDate = s.nextReview(p, prevReviewedAt, now, s.policy.HardMultiplier)
	case models.RatingForgot:
		p.WrongCount++
		p.Status = models.StatusLearning
		p.NextReviewDate = now.Add(s.policy.ForgotDelay)
	}

	if !p.Consistent() {
		return models.WordProgress{}, errors.NewInvalidProgressError(p.WordID, "counters inconsistent after update")
	}
	return p, nil
}

func (s *Scheduler) promote(p models.WordProgress) models.Status {
	switch p.Status {
	case models.StatusNew:
		return models.StatusLearning
	case models.StatusLearning:
		if p.CorrectCount >= s.policy.MasteryThreshold {
			return models.StatusReviewing
		}
	case models.StatusReviewing:
		if p.CorrectCount >= 2*s.policy.MasteryThreshold {
			return models.StatusMastered
		}
	}
	return p.Status
}

func (s *Scheduler) nextReview(p models.WordProgress, prevReviewedAt *time.Time, now time.Time, multiplier float64) time.Time {
	switch p.ReviewCount {
	case 1:
		return now.Add(s.policy.FirstInterval)
	case 2:
		return now.Add(s.policy.SecondInterval)
	}

	base := s.policy.FirstInterval
	if prevReviewedAt != nil {
		if elapsed := now.Sub(*prevReviewedAt); elapsed > base {
			base = elapsed
		}
	}
	interval := time.Duration(float64(base) * multiplier)
	if interval > s.policy.MaxInterval {
		interval = s.policy.MaxInterval
	}
	if interval < s.policy.ForgotDelay {
		interval = s.policy.ForgotDelay
	}
	return now.Add(interval)
}

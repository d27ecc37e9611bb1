package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hihsk/hihsk/internal/errors"
	"github.com/hihsk/hihsk/internal/logger"
	"github.com/hihsk/hihsk/internal/models"
)

// SessionService runs bounded review sessions over the words due at
// session start. Sessions live in memory only; an abandoned session
// loses nothing because the words stay due in the store.
type SessionService interface {
	Start(ctx context.Context, userID string) (*models.ReviewSession, error)
	Get(ctx context.Context, userID string, sessionID string) (*models.ReviewSession, error)
	Rate(ctx context.Context, userID string, sessionID string, wordID int64, rating models.Rating) (*models.ReviewSession, error)
	Advance(ctx context.Context, userID string, sessionID string) (*models.ReviewSession, error)
}

type sessionService struct {
	reviewSvc ReviewService
	wordLimit int

	mu       sync.Mutex
	sessions map[string]*models.ReviewSession
	byUser   map[string]string
}

// NewSessionService creates a new SessionService. wordLimit caps the
// number of words a single session serves.
func NewSessionService(reviewSvc ReviewService, wordLimit int) SessionService {
	return &sessionService{
		reviewSvc: reviewSvc,
		wordLimit: wordLimit,
		sessions:  make(map[string]*models.ReviewSession),
		byUser:    make(map[string]string),
	}
}

// Start snapshots the user's due words into a fresh session. Starting
// again replaces any earlier session for the same user.
func (s *sessionService) Start(ctx context.Context, userID string) (*models.ReviewSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting review session: user_id=%s", userID)

	due, err := s.reviewSvc.DueWords(ctx, userID, s.wordLimit)
	if err != nil {
		return nil, err
	}

	// Words are served ascending by (next_review_date, word_id).
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.Progress != nil && b.Progress != nil && !a.Progress.NextReviewDate.Equal(b.Progress.NextReviewDate) {
			return a.Progress.NextReviewDate.Before(b.Progress.NextReviewDate)
		}
		return a.ID < b.ID
	})

	session := &models.ReviewSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Words:     due,
		Cursor:    0,
		State:     models.SessionInProgress,
		StartedAt: time.Now(),
	}
	if len(due) == 0 {
		session.State = models.SessionCompleted
	}

	s.mu.Lock()
	if oldID, ok := s.byUser[userID]; ok {
		delete(s.sessions, oldID)
	}
	s.sessions[session.ID] = session
	s.byUser[userID] = session.ID
	snap := snapshot(session)
	s.mu.Unlock()

	log.Info("review session started: id=%s, user_id=%s, words=%d", session.ID, userID, len(due))
	return snap, nil
}

func (s *sessionService) Get(ctx context.Context, userID string, sessionID string) (*models.ReviewSession, error) {
	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(session), nil
}

// Rate applies a rating to the word at the cursor. The cursor never
// moves here: a store failure leaves the session exactly as it was, so
// the client can retry the same word.
func (s *sessionService) Rate(ctx context.Context, userID string, sessionID string, wordID int64, rating models.Rating) (*models.ReviewSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("rating in session: session_id=%s, word_id=%d, rating=%s", sessionID, wordID, rating)

	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if session.Completed() {
		s.mu.Unlock()
		return nil, errors.NewSessionClosedError(sessionID)
	}
	current := session.CurrentWord()
	if current == nil || current.ID != wordID {
		s.mu.Unlock()
		return nil, errors.NewOutOfOrderRatingError(wordID)
	}
	s.mu.Unlock()

	progress, err := s.reviewSvc.RateWord(ctx, userID, wordID, rating)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w := session.CurrentWord(); w != nil && w.ID == wordID {
		w.Progress = progress
	}
	return snapshot(session), nil
}

// Advance moves the cursor to the next word. Moving past the last word
// completes the session; a completed session stays completed.
func (s *sessionService) Advance(ctx context.Context, userID string, sessionID string) (*models.ReviewSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("advancing session: session_id=%s", sessionID)

	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session.Completed() {
		return nil, errors.NewSessionClosedError(sessionID)
	}
	session.Cursor++
	if session.Cursor >= len(session.Words) {
		session.State = models.SessionCompleted
		log.Info("review session completed: id=%s, user_id=%s, words=%d", session.ID, userID, len(session.Words))
	}
	return snapshot(session), nil
}

func (s *sessionService) lookup(userID, sessionID string) (*models.ReviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, errors.NewNotFoundError("review session", sessionID)
	}
	return session, nil
}

// snapshot copies the session so callers never share the mutable
// internal state. Caller holds the lock, or owns the session alone.
func snapshot(s *models.ReviewSession) *models.ReviewSession {
	cp := *s
	cp.Words = make([]models.DueWord, len(s.Words))
	copy(cp.Words, s.Words)
	return &cp
}

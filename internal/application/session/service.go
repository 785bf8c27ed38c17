package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrekvist/burgersim/internal/domain/game"
	"github.com/andrekvist/burgersim/internal/domain/level"
)

var (
	// ErrSessionNotFound is returned when no session exists for an id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownLevel is returned when a session names a level the catalog
	// does not carry.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrGameOver is returned when a tick is requested against a finished
	// game.
	ErrGameOver = errors.New("game is over")
	// ErrActionRejected is returned when the pre-flight affordability check
	// fails.
	ErrActionRejected = errors.New("action rejected")
)

// Session binds one player's engine state to a level and an owner.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	LevelID   string      `json:"levelId"`
	State     *game.State `json:"state"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Service drives game sessions forward, one day per call. The engine itself
// is a pure function; this layer adds identity, persistence and the
// single-writer discipline the engine requires.
type Service struct {
	repo    Repository
	catalog *level.Catalog
	metrics Metrics
}

// NewService creates a session service. metrics may be nil.
func NewService(repo Repository, catalog *level.Catalog, metrics Metrics) *Service {
	return &Service{repo: repo, catalog: catalog, metrics: metrics}
}

// Create starts a new game for a user on a level.
func (s *Service) Create(ctx context.Context, userID, levelID string) (*Session, error) {
	cfg, ok := s.catalog.Get(levelID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, levelID)
	}
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		LevelID:   levelID,
		State:     game.InitializeState(cfg),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordSessionCreated(levelID)
	}
	return sess, nil
}

// Get returns a session by id.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByUser returns every session owned by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Advance runs one simulated day. The action is pre-flight checked first; an
// unaffordable action is rejected before the engine sees it.
func (s *Service) Advance(ctx context.Context, id string, action game.Action) (*Session, error) {
	sess, cfg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.IsGameOver(sess.State, cfg) {
		return nil, ErrGameOver
	}
	if v := game.ValidateAffordability(sess.State, action, cfg); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrActionRejected, v.Message)
	}

	started := time.Now()
	next := game.NewProcessor(cfg).ProcessDay(sess.State, action)
	if s.metrics != nil {
		profit := 0.0
		if n := len(next.History); n > 0 {
			profit = next.History[n-1].Profit
		}
		s.metrics.RecordDayProcessed(sess.LevelID, time.Since(started).Seconds(), profit)
		if next.GameOver {
			s.metrics.RecordBankruptcy(sess.LevelID)
		}
	}

	sess.State = next
	sess.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

// Validate runs the non-mutating affordability check for a session.
func (s *Service) Validate(ctx context.Context, id string, action game.Action) (game.ValidationResult, error) {
	sess, cfg, err := s.load(ctx, id)
	if err != nil {
		return game.ValidationResult{}, err
	}
	return game.ValidateAffordability(sess.State, action, cfg), nil
}

// Result projects the final game summary for a session.
func (s *Service) Result(ctx context.Context, id string) (game.Result, error) {
	sess, cfg, err := s.load(ctx, id)
	if err != nil {
		return game.Result{}, err
	}
	return game.CalculateResult(sess.State, cfg, sess.UserID), nil
}

// Levels exposes the level catalog to boundary layers.
func (s *Service) Levels() *level.Catalog {
	return s.catalog
}

func (s *Service) load(ctx context.Context, id string) (*Session, *level.Config, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	cfg, ok := s.catalog.Get(sess.LevelID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownLevel, sess.LevelID)
	}
	return sess, cfg, nil
}

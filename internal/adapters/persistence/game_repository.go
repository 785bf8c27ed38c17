package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrekvist/burgersim/internal/application/session"
	"github.com/andrekvist/burgersim/internal/domain/game"
)

// GormGameRepository implements session.Repository using GORM. The full
// engine state round-trips through state_json so that FIFO lot granularity
// survives save/reload.
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM game-session repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// Save upserts a session.
func (r *GormGameRepository) Save(ctx context.Context, sess *session.Session) error {
	model, err := r.toModel(sess)
	if err != nil {
		return fmt.Errorf("failed to convert session to model: %w", err)
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save session: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a session by id.
func (r *GormGameRepository) FindByID(ctx context.Context, id string) (*session.Session, error) {
	var model GameSessionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to find session: %w", result.Error)
	}
	return r.toSession(&model)
}

// ListByUser retrieves every session owned by a user, newest first.
func (r *GormGameRepository) ListByUser(ctx context.Context, userID string) ([]*session.Session, error) {
	var models []GameSessionModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at desc").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", result.Error)
	}
	sessions := make([]*session.Session, 0, len(models))
	for i := range models {
		sess, err := r.toSession(&models[i])
		if err != nil {
			continue // Skip rows with unreadable state
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// Delete removes a session by id.
func (r *GormGameRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&GameSessionModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	return nil
}

func (r *GormGameRepository) toModel(sess *session.Session) (*GameSessionModel, error) {
	stateJSON, err := json.Marshal(sess.State)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return &GameSessionModel{
		ID:        sess.ID,
		UserID:    sess.UserID,
		LevelID:   sess.LevelID,
		Day:       sess.State.Day,
		GameOver:  sess.State.GameOver,
		StateJSON: string(stateJSON),
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}, nil
}

func (r *GormGameRepository) toSession(model *GameSessionModel) (*session.Session, error) {
	var state game.State
	if err := json.Unmarshal([]byte(model.StateJSON), &state); err != nil {
		return nil, fmt.Errorf("corrupt state for session %s: %w", model.ID, err)
	}
	return &session.Session{
		ID:        model.ID,
		UserID:    model.UserID,
		LevelID:   model.LevelID,
		State:     &state,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

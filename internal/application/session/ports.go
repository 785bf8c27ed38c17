package session

import "context"

// Repository persists game sessions. Implementations must round-trip the
// engine state losslessly, FIFO lot lists included; dropping lot granularity
// on save/reload would corrupt every later valuation.
type Repository interface {
	Save(ctx context.Context, sess *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	ListByUser(ctx context.Context, userID string) ([]*Session, error)
	Delete(ctx context.Context, id string) error
}

// Metrics receives engine events for observability. A nil recorder is valid
// and disables instrumentation.
type Metrics interface {
	RecordSessionCreated(levelID string)
	RecordDayProcessed(levelID string, seconds float64, profit float64)
	RecordBankruptcy(levelID string)
}

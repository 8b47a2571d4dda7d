package ports

import (
	"context"
	"time"

	"onchain-discgolf/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TokenRepository persists the wallet's unspent bearer-token set. It is the
// single durable source of truth for the wallet balance. Methods accepting
// pgx.Tx run inside transaction blocks so a swap's delete-and-insert commits
// all-or-nothing.
type TokenRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, token domain.Token) error
	Delete(ctx context.Context, tx pgx.Tx, secret string) error
	ListUnspent(ctx context.Context) ([]domain.Token, error)
	SumUnspent(ctx context.Context) (int64, error)
}

// RoundRepository persists round state keyed by round id, for both hosted
// rounds and locally cached replicas.
type RoundRepository interface {
	Save(ctx context.Context, round *domain.Round) error
	GetByID(ctx context.Context, id string) (*domain.Round, error)
	ListByStatus(ctx context.Context, status domain.RoundStatus) ([]*domain.Round, error)
}

// PayoutRepository persists disbursement records. The Settled flag is what
// makes finalization resumable without double-paying.
type PayoutRepository interface {
	CreateBatch(ctx context.Context, tx pgx.Tx, records []domain.PayoutRecord) error
	ListByRound(ctx context.Context, roundID string) ([]domain.PayoutRecord, error)
	ListUnsettled(ctx context.Context) ([]domain.PayoutRecord, error)
	MarkSettled(ctx context.Context, id uuid.UUID, settledAt time.Time) error
	RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// EventDedupStore remembers relay event ids already applied, so duplicated or
// re-delivered events cannot double-apply a payment.
type EventDedupStore interface {
	// CheckAndSet atomically checks if the event id was seen, marking it if
	// not. Returns true if the event is new.
	CheckAndSet(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

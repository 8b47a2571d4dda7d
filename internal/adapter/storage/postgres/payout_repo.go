package postgres

import (
	"context"
	"fmt"
	"time"

	"onchain-discgolf/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PayoutRepo implements ports.PayoutRepository.
type PayoutRepo struct {
	pool Pool
}

// NewPayoutRepo creates a new PayoutRepo.
func NewPayoutRepo(pool Pool) *PayoutRepo {
	return &PayoutRepo{pool: pool}
}

// CreateBatch inserts a round's payout records within a database transaction.
func (r *PayoutRepo) CreateBatch(ctx context.Context, tx pgx.Tx, records []domain.PayoutRecord) error {
	query := `INSERT INTO payouts (id, round_id, recipient_identity, amount_sats, reason, settled, attempts, last_error, created_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, rec := range records {
		_, err := tx.Exec(ctx, query,
			rec.ID, rec.RoundID, rec.RecipientIdentity, rec.AmountSats,
			rec.Reason, rec.Settled, rec.Attempts, rec.LastError,
			rec.CreatedAt, rec.SettledAt,
		)
		if err != nil {
			return fmt.Errorf("insert payout %s: %w", rec.ID, err)
		}
	}
	return nil
}

// ListByRound returns a round's payout records in creation order.
func (r *PayoutRepo) ListByRound(ctx context.Context, roundID string) ([]domain.PayoutRecord, error) {
	query := payoutSelect + ` WHERE round_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("list payouts by round: %w", err)
	}
	defer rows.Close()
	return scanPayouts(rows)
}

// ListUnsettled returns every unsettled record across all rounds.
func (r *PayoutRepo) ListUnsettled(ctx context.Context) ([]domain.PayoutRecord, error) {
	query := payoutSelect + ` WHERE NOT settled ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unsettled payouts: %w", err)
	}
	defer rows.Close()
	return scanPayouts(rows)
}

// MarkSettled flips a record's settled latch. Already-settled records are
// left untouched so the latch never moves backwards.
func (r *PayoutRepo) MarkSettled(ctx context.Context, id uuid.UUID, settledAt time.Time) error {
	query := `UPDATE payouts SET settled = TRUE, settled_at = $2 WHERE id = $1 AND NOT settled`

	if _, err := r.pool.Exec(ctx, query, id, settledAt); err != nil {
		return fmt.Errorf("mark payout settled: %w", err)
	}
	return nil
}

// RecordAttempt stores the attempt count and last failure for a record.
func (r *PayoutRepo) RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	query := `UPDATE payouts SET attempts = $2, last_error = $3 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, attempts, lastError); err != nil {
		return fmt.Errorf("record payout attempt: %w", err)
	}
	return nil
}

const payoutSelect = `SELECT id, round_id, recipient_identity, amount_sats, reason, settled, attempts, last_error, created_at, settled_at FROM payouts`

func scanPayouts(rows pgx.Rows) ([]domain.PayoutRecord, error) {
	var records []domain.PayoutRecord
	for rows.Next() {
		var rec domain.PayoutRecord
		err := rows.Scan(
			&rec.ID, &rec.RoundID, &rec.RecipientIdentity, &rec.AmountSats,
			&rec.Reason, &rec.Settled, &rec.Attempts, &rec.LastError,
			&rec.CreatedAt, &rec.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payouts: %w", err)
	}
	return records, nil
}

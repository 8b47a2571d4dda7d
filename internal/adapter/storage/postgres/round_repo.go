package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"onchain-discgolf/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// RoundRepo implements ports.RoundRepository. Round scalar state maps to
// columns; players and pars travel as JSONB since they are only ever read and
// written whole, with the round itself.
type RoundRepo struct {
	pool Pool
}

// NewRoundRepo creates a new RoundRepo.
func NewRoundRepo(pool Pool) *RoundRepo {
	return &RoundRepo{pool: pool}
}

// Save upserts a round. The round service serializes writers, so last write
// wins is the intended semantics here.
func (r *RoundRepo) Save(ctx context.Context, round *domain.Round) error {
	players, err := json.Marshal(round.Players)
	if err != nil {
		return fmt.Errorf("marshal players: %w", err)
	}
	pars, err := json.Marshal(round.Pars)
	if err != nil {
		return fmt.Errorf("marshal pars: %w", err)
	}

	query := `INSERT INTO rounds (id, name, course_name, hole_count, entry_fee_sats, ace_pot_fee_sats,
			host_identity, players, pars, status, donation_sats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			course_name = EXCLUDED.course_name,
			hole_count = EXCLUDED.hole_count,
			entry_fee_sats = EXCLUDED.entry_fee_sats,
			ace_pot_fee_sats = EXCLUDED.ace_pot_fee_sats,
			host_identity = EXCLUDED.host_identity,
			players = EXCLUDED.players,
			pars = EXCLUDED.pars,
			status = EXCLUDED.status,
			donation_sats = EXCLUDED.donation_sats,
			updated_at = EXCLUDED.updated_at`

	_, err = r.pool.Exec(ctx, query,
		round.ID, round.Name, round.CourseName, round.HoleCount,
		round.EntryFeeSats, round.AcePotFeeSats, round.HostIdentity,
		players, pars, round.Status, round.DonationSats,
		round.CreatedAt, round.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	return nil
}

// GetByID fetches a round by id, or nil when unknown.
func (r *RoundRepo) GetByID(ctx context.Context, id string) (*domain.Round, error) {
	query := roundSelect + ` WHERE id = $1`

	round, err := scanRound(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get round by id: %w", err)
	}
	return round, nil
}

// ListByStatus fetches rounds in a lifecycle state, oldest first.
func (r *RoundRepo) ListByStatus(ctx context.Context, status domain.RoundStatus) ([]*domain.Round, error) {
	query := roundSelect + ` WHERE status = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*domain.Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}
	return rounds, nil
}

const roundSelect = `SELECT id, name, course_name, hole_count, entry_fee_sats, ace_pot_fee_sats,
	host_identity, players, pars, status, donation_sats, created_at, updated_at FROM rounds`

func scanRound(row pgx.Row) (*domain.Round, error) {
	round := &domain.Round{}
	var players, pars []byte
	err := row.Scan(
		&round.ID, &round.Name, &round.CourseName, &round.HoleCount,
		&round.EntryFeeSats, &round.AcePotFeeSats, &round.HostIdentity,
		&players, &pars, &round.Status, &round.DonationSats,
		&round.CreatedAt, &round.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(players, &round.Players); err != nil {
		return nil, fmt.Errorf("unmarshal players: %w", err)
	}
	if err := json.Unmarshal(pars, &round.Pars); err != nil {
		return nil, fmt.Errorf("unmarshal pars: %w", err)
	}
	return round, nil
}

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"onchain-discgolf/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeTx satisfies the pgx.Tx surface the services touch. The in-memory repos
// apply writes immediately, so commit and rollback are no-ops.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeTransactor struct{}

func (fakeTransactor) Begin(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

// --- In-Memory Token Repo ---

type inMemoryTokenRepo struct {
	mu     sync.RWMutex
	tokens map[string]domain.Token // keyed by secret
}

func newInMemoryTokenRepo() *inMemoryTokenRepo {
	return &inMemoryTokenRepo{tokens: make(map[string]domain.Token)}
}

func (r *inMemoryTokenRepo) Insert(ctx context.Context, tx pgx.Tx, token domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[token.Secret]; exists {
		return fmt.Errorf("token already held")
	}
	r.tokens[token.Secret] = token
	return nil
}

func (r *inMemoryTokenRepo) Delete(ctx context.Context, tx pgx.Tx, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[secret]; !exists {
		return fmt.Errorf("token not held")
	}
	delete(r.tokens, secret)
	return nil
}

func (r *inMemoryTokenRepo) ListUnspent(ctx context.Context) ([]domain.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Secret < out[j].Secret })
	return out, nil
}

func (r *inMemoryTokenRepo) SumUnspent(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, t := range r.tokens {
		sum += t.AmountSats
	}
	return sum, nil
}

// --- In-Memory Round Repo ---

type inMemoryRoundRepo struct {
	mu     sync.RWMutex
	rounds map[string][]byte // JSON clones so callers never share state
}

func newInMemoryRoundRepo() *inMemoryRoundRepo {
	return &inMemoryRoundRepo{rounds: make(map[string][]byte)}
}

func (r *inMemoryRoundRepo) Save(ctx context.Context, round *domain.Round) error {
	raw, err := json.Marshal(round)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds[round.ID] = raw
	return nil
}

func (r *inMemoryRoundRepo) GetByID(ctx context.Context, id string) (*domain.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.rounds[id]
	if !ok {
		return nil, nil
	}
	var round domain.Round
	if err := json.Unmarshal(raw, &round); err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *inMemoryRoundRepo) ListByStatus(ctx context.Context, status domain.RoundStatus) ([]*domain.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Round
	for _, raw := range r.rounds {
		var round domain.Round
		if err := json.Unmarshal(raw, &round); err != nil {
			return nil, err
		}
		if round.Status == status {
			out = append(out, &round)
		}
	}
	return out, nil
}

// --- In-Memory Payout Repo ---

type inMemoryPayoutRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.PayoutRecord
	order   []uuid.UUID
}

func newInMemoryPayoutRepo() *inMemoryPayoutRepo {
	return &inMemoryPayoutRepo{records: make(map[uuid.UUID]domain.PayoutRecord)}
}

func (r *inMemoryPayoutRepo) CreateBatch(ctx context.Context, tx pgx.Tx, records []domain.PayoutRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		if _, exists := r.records[rec.ID]; exists {
			return fmt.Errorf("payout record already exists")
		}
		r.records[rec.ID] = rec
		r.order = append(r.order, rec.ID)
	}
	return nil
}

func (r *inMemoryPayoutRepo) ListByRound(ctx context.Context, roundID string) ([]domain.PayoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PayoutRecord
	for _, id := range r.order {
		if rec := r.records[id]; rec.RoundID == roundID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *inMemoryPayoutRepo) ListUnsettled(ctx context.Context) ([]domain.PayoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PayoutRecord
	for _, id := range r.order {
		if rec := r.records[id]; !rec.Settled {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *inMemoryPayoutRepo) MarkSettled(ctx context.Context, id uuid.UUID, settledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("payout record not found")
	}
	if rec.Settled {
		return nil
	}
	rec.Settled = true
	rec.SettledAt = &settledAt
	r.records[id] = rec
	return nil
}

func (r *inMemoryPayoutRepo) RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("payout record not found")
	}
	rec.Attempts = attempts
	rec.LastError = &lastError
	r.records[id] = rec
	return nil
}

// --- In-Memory Dedup Store ---

type inMemoryDedupStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newInMemoryDedupStore() *inMemoryDedupStore {
	return &inMemoryDedupStore{seen: make(map[string]bool)}
}

func (s *inMemoryDedupStore) CheckAndSet(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[eventID] {
		return false, nil
	}
	s.seen[eventID] = true
	return true, nil
}

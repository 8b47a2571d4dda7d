package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"

	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. A single mutex serializes
// every mutation so two concurrent spends can never allocate the same token,
// and the delete-and-insert of a swap commits all-or-nothing in one database
// transaction.
type WalletServiceImpl struct {
	tokenRepo  ports.TokenRepository
	mint       ports.MintClient
	transactor ports.DBTransactor
	log        zerolog.Logger

	mu sync.Mutex
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	tokenRepo ports.TokenRepository,
	mint ports.MintClient,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		tokenRepo:  tokenRepo,
		mint:       mint,
		transactor: transactor,
		log:        log,
	}
}

// Balance returns the sum of held token amounts. No side effects.
func (s *WalletServiceImpl) Balance(ctx context.Context) (int64, error) {
	sum, err := s.tokenRepo.SumUnspent(ctx)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("sum unspent: %w", err))
	}
	return sum, nil
}

// Mint records a freshly issued token after a Lightning settlement.
func (s *WalletServiceImpl) Mint(ctx context.Context, amountSats int64) (domain.Token, error) {
	if amountSats <= 0 {
		return domain.Token{}, apperror.ErrInvalidAmount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.mint.Issue(ctx, amountSats)
	if err != nil {
		return domain.Token{}, apperror.ErrMintUnreachable(fmt.Errorf("issue token: %w", err))
	}
	if err := token.Validate(); err != nil {
		return domain.Token{}, apperror.Wrap("WAL_002", "Mint issued a malformed token", http.StatusUnprocessableEntity, err)
	}

	ok, err := s.mint.Verify(ctx, token)
	if err != nil {
		return domain.Token{}, apperror.ErrMintUnreachable(fmt.Errorf("verify issued token: %w", err))
	}
	if !ok {
		return domain.Token{}, apperror.ErrInvalidToken()
	}

	if err := s.storeTokens(ctx, nil, []domain.Token{token}); err != nil {
		return domain.Token{}, err
	}

	s.log.Info().
		Int64("amount_sats", amountSats).
		Str("mint_id", token.MintID).
		Msg("token minted into wallet")

	return token, nil
}

// Spend removes tokens summing exactly to amountSats from the unspent set,
// largest denomination first. If no exact subset exists it swaps at the mint
// for a token of the needed amount plus change. On any mint failure the
// wallet is left unchanged.
func (s *WalletServiceImpl) Spend(ctx context.Context, amountSats int64) ([]domain.Token, error) {
	if amountSats <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	held, err := s.tokenRepo.ListUnspent(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list unspent: %w", err))
	}
	if domain.SumTokens(held) < amountSats {
		return nil, apperror.ErrInsufficientBalance()
	}

	selected := selectGreedy(held, amountSats)
	selectedSum := domain.SumTokens(selected)

	if selectedSum == amountSats {
		if err := s.storeTokens(ctx, selected, nil); err != nil {
			return nil, err
		}
		return selected, nil
	}

	// Exact change unavailable: swap the selection for a token of the needed
	// amount plus a change token before committing anything locally.
	change := selectedSum - amountSats
	swapped, err := s.mint.Swap(ctx, selected, []int64{amountSats, change})
	if err != nil {
		return nil, err
	}

	payment, remainder := partitionByTargets(swapped, []int64{amountSats})
	if domain.SumTokens(payment) != amountSats {
		// The mint already consumed the originals. Keep whatever it returned
		// so the sats stay in the wallet, then fail the spend.
		if storeErr := s.storeTokens(ctx, selected, swapped); storeErr != nil {
			s.log.Error().Err(storeErr).Msg("failed to store swap outputs after denomination mismatch")
		}
		return nil, apperror.InternalError(
			fmt.Errorf("mint swap returned %d sats in denominations not covering a %d sat payment",
				domain.SumTokens(swapped), amountSats))
	}

	if err := s.storeTokens(ctx, selected, remainder); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int64("amount_sats", amountSats).
		Int64("change_sats", change).
		Int("inputs", len(selected)).
		Msg("tokens spent")

	return payment, nil
}

// RedeemIncoming claims a token received from a peer: the mint swaps it for a
// fresh token of the same amount, which is merged into the wallet. A token
// the mint rejects (already spent, foreign, malformed) yields InvalidToken.
func (s *WalletServiceImpl) RedeemIncoming(ctx context.Context, token domain.Token) (int64, error) {
	if err := token.Validate(); err != nil {
		return 0, apperror.Wrap("WAL_002", "Malformed incoming token", http.StatusUnprocessableEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.mint.Swap(ctx, []domain.Token{token}, []int64{token.AmountSats})
	if err != nil {
		return 0, err
	}

	if err := s.storeTokens(ctx, nil, fresh); err != nil {
		return 0, err
	}

	s.log.Info().
		Int64("amount_sats", token.AmountSats).
		Str("mint_id", token.MintID).
		Msg("incoming token redeemed")

	return token.AmountSats, nil
}

// storeTokens deletes spent tokens and inserts new ones in one transaction.
func (s *WalletServiceImpl) storeTokens(ctx context.Context, remove, insert []domain.Token) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for _, t := range remove {
		if err := s.tokenRepo.Delete(ctx, dbTx, t.Secret); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("delete token: %w", err))
		}
	}
	for _, t := range insert {
		if err := s.tokenRepo.Insert(ctx, dbTx, t); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("insert token: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// selectGreedy picks tokens largest-first until the target is covered,
// minimizing fragment count. Ties break by secret so selection is
// deterministic for identical input.
func selectGreedy(held []domain.Token, target int64) []domain.Token {
	sorted := make([]domain.Token, len(held))
	copy(sorted, held)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AmountSats != sorted[j].AmountSats {
			return sorted[i].AmountSats > sorted[j].AmountSats
		}
		return sorted[i].Secret < sorted[j].Secret
	})

	var selected []domain.Token
	var sum int64
	for _, t := range sorted {
		if sum >= target {
			break
		}
		selected = append(selected, t)
		sum += t.AmountSats
	}
	return selected
}

// partitionByTargets splits swap outputs into tokens matching the requested
// target amounts and the rest. The mint may return outputs in any order, so
// matching goes by denomination, not position.
func partitionByTargets(tokens []domain.Token, targets []int64) (payment, rest []domain.Token) {
	wanted := make(map[int64]int, len(targets))
	for _, amt := range targets {
		wanted[amt]++
	}
	for _, t := range tokens {
		if wanted[t.AmountSats] > 0 {
			wanted[t.AmountSats]--
			payment = append(payment, t)
		} else {
			rest = append(rest, t)
		}
	}
	return payment, rest
}

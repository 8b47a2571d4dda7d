package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// TokenRepo implements ports.TokenRepository. Secrets and signatures are
// bearer material: anyone holding them holds the sats, so they are encrypted
// before touching disk. Rows are addressed by a fingerprint of the secret,
// which keeps lookups possible without a deterministic ciphertext.
type TokenRepo struct {
	pool Pool
	enc  ports.EncryptionService
}

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(pool Pool, enc ports.EncryptionService) *TokenRepo {
	return &TokenRepo{pool: pool, enc: enc}
}

func fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Insert stores a token within a database transaction.
func (r *TokenRepo) Insert(ctx context.Context, tx pgx.Tx, token domain.Token) error {
	secretEnc, err := r.enc.Encrypt(token.Secret)
	if err != nil {
		return fmt.Errorf("encrypt token secret: %w", err)
	}
	sigEnc, err := r.enc.Encrypt(token.Signature)
	if err != nil {
		return fmt.Errorf("encrypt token signature: %w", err)
	}

	query := `INSERT INTO wallet_tokens (secret_fp, amount_sats, mint_id, secret_enc, signature_enc)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = tx.Exec(ctx, query, fingerprint(token.Secret), token.AmountSats, token.MintID, secretEnc, sigEnc)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// Delete removes a token by secret within a database transaction.
func (r *TokenRepo) Delete(ctx context.Context, tx pgx.Tx, secret string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM wallet_tokens WHERE secret_fp = $1`, fingerprint(secret))
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("token not held: %s", fingerprint(secret)[:8])
	}
	return nil
}

// ListUnspent returns every held token, decrypted.
func (r *TokenRepo) ListUnspent(ctx context.Context) ([]domain.Token, error) {
	query := `SELECT amount_sats, mint_id, secret_enc, signature_enc FROM wallet_tokens ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.Token
	for rows.Next() {
		var t domain.Token
		var secretEnc, sigEnc string
		if err := rows.Scan(&t.AmountSats, &t.MintID, &secretEnc, &sigEnc); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		if t.Secret, err = r.enc.Decrypt(secretEnc); err != nil {
			return nil, fmt.Errorf("decrypt token secret: %w", err)
		}
		if t.Signature, err = r.enc.Decrypt(sigEnc); err != nil {
			return nil, fmt.Errorf("decrypt token signature: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tokens: %w", err)
	}
	return tokens, nil
}

// SumUnspent returns the wallet balance without decrypting anything.
func (r *TokenRepo) SumUnspent(ctx context.Context) (int64, error) {
	var sum int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount_sats), 0) FROM wallet_tokens`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum tokens: %w", err)
	}
	return sum, nil
}

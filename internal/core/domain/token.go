package domain

import "fmt"

// Token is a bearer e-cash note. Possession of a valid, unredeemed Secret is
// ownership: no account or identity is checked by the mint.
type Token struct {
	AmountSats int64  `json:"amount_sats"`
	MintID     string `json:"mint_id"`
	Secret     string `json:"secret"`
	Signature  string `json:"signature"`
}

// Key returns the identifier used to track a token in the unspent set.
// The secret is unique per token by construction at the mint.
func (t Token) Key() string {
	return t.Secret
}

// Validate performs structural checks. Cryptographic validity is the mint's
// call, done separately via the mint client.
func (t Token) Validate() error {
	if t.AmountSats <= 0 {
		return fmt.Errorf("token amount must be positive, got %d", t.AmountSats)
	}
	if t.MintID == "" {
		return fmt.Errorf("token missing mint id")
	}
	if t.Secret == "" {
		return fmt.Errorf("token missing secret")
	}
	if t.Signature == "" {
		return fmt.Errorf("token missing mint signature")
	}
	return nil
}

// SumTokens returns the total amount across tokens.
func SumTokens(tokens []Token) int64 {
	var sum int64
	for _, t := range tokens {
		sum += t.AmountSats
	}
	return sum
}

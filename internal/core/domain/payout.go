package domain

import (
	"time"

	"github.com/google/uuid"
)

// PayoutReason says which pot a payout is drawn from.
type PayoutReason string

const (
	PayoutReasonEntryPot PayoutReason = "ENTRY_POT"
	PayoutReasonAcePot   PayoutReason = "ACE_POT"
)

// PayoutRecord is the durable record of one disbursement owed to one player.
// Settled flips true exactly once, after the transfer is confirmed sent;
// re-running settlement never re-pays a settled record.
type PayoutRecord struct {
	ID                uuid.UUID    `json:"id"`
	RoundID           string       `json:"round_id"`
	RecipientIdentity string       `json:"recipient_identity"`
	AmountSats        int64        `json:"amount_sats"`
	Reason            PayoutReason `json:"reason"`
	Settled           bool         `json:"settled"`
	Attempts          int          `json:"attempts"`
	LastError         *string      `json:"last_error,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	SettledAt         *time.Time   `json:"settled_at,omitempty"`
}

// Share is one slice of a pot computed by a payout policy.
type Share struct {
	Identity   string `json:"identity"`
	AmountSats int64  `json:"amount_sats"`
}

// PayoutPolicy computes who gets what from a pot. Implementations must be
// deterministic for identical input and must never return shares summing to
// more than potSats.
type PayoutPolicy func(standings []Standing, potSats int64) []Share

// WinnerTakeAll pays the full pot to the top-ranked player.
func WinnerTakeAll(standings []Standing, potSats int64) []Share {
	if len(standings) == 0 || potSats <= 0 {
		return nil
	}
	return []Share{{Identity: standings[0].Identity, AmountSats: potSats}}
}

// TopNSplit divides the pot evenly among the top n finishers. Remainder sats
// from integer division go to the higher-ranked players, one each, so the
// split is exact and deterministic.
func TopNSplit(n int) PayoutPolicy {
	return func(standings []Standing, potSats int64) []Share {
		if n <= 0 || len(standings) == 0 || potSats <= 0 {
			return nil
		}
		if n > len(standings) {
			n = len(standings)
		}
		base := potSats / int64(n)
		remainder := potSats % int64(n)
		shares := make([]Share, 0, n)
		for i := 0; i < n; i++ {
			amount := base
			if int64(i) < remainder {
				amount++
			}
			shares = append(shares, Share{Identity: standings[i].Identity, AmountSats: amount})
		}
		return shares
	}
}

// EvenSplit divides a pot evenly among the given identities, remainder to the
// earliest listed. Used for the ace pot.
func EvenSplit(identities []string, potSats int64) []Share {
	if len(identities) == 0 || potSats <= 0 {
		return nil
	}
	n := int64(len(identities))
	base := potSats / n
	remainder := potSats % n
	shares := make([]Share, 0, len(identities))
	for i, id := range identities {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares = append(shares, Share{Identity: id, AmountSats: amount})
	}
	return shares
}

// RoundSummary is what the round summary screen renders after finalization.
type RoundSummary struct {
	Round                *Round         `json:"round"`
	PotTotals            PotTotals      `json:"pot_totals"`
	Standings            []Standing     `json:"standings"`
	Payouts              []PayoutRecord `json:"payouts"`
	AcePotRolledOver     bool           `json:"ace_pot_rolled_over"`
	IsProcessingPayments bool           `json:"is_processing_payments"`
}

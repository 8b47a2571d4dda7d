package domain

import (
	"sort"
	"time"
)

// RoundStatus is the lifecycle state of a round.
type RoundStatus string

const (
	RoundStatusOpen       RoundStatus = "OPEN"
	RoundStatusFinalizing RoundStatus = "FINALIZING"
	RoundStatusSettled    RoundStatus = "SETTLED"
)

// Player is one participant in a round. Identity is the participant's public
// key string and is immutable once assigned.
type Player struct {
	Identity  string      `json:"identity"`
	Name      string      `json:"name"`
	PaysEntry bool        `json:"pays_entry"`
	PaysAce   bool        `json:"pays_ace"`
	Paid      bool        `json:"paid"`
	PaidSats  int64       `json:"paid_sats"` // credit received so far toward the obligation
	JoinOrder int         `json:"join_order"`
	Scores    map[int]int `json:"scores"` // hole number -> strokes
}

// TotalStrokes sums the per-hole scores.
func (p *Player) TotalStrokes() int {
	total := 0
	for _, strokes := range p.Scores {
		total += strokes
	}
	return total
}

// Aces returns the holes where the player recorded a hole-in-one on a hole
// whose par is greater than 1.
func (p *Player) Aces(pars map[int]int) []int {
	var holes []int
	for hole, strokes := range p.Scores {
		if strokes == 1 && pars[hole] > 1 {
			holes = append(holes, hole)
		}
	}
	sort.Ints(holes)
	return holes
}

// PotTotals are derived from player state, never stored.
type PotTotals struct {
	EntryPotSats int64 `json:"entry_pot_sats"`
	AcePotSats   int64 `json:"ace_pot_sats"`
}

// Round is the per-round settlement state. For rounds the local user did not
// host it is a replica of facts asserted by the host and by each player's
// payment proofs.
type Round struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	CourseName    string      `json:"course_name"`
	HoleCount     int         `json:"hole_count"`
	EntryFeeSats  int64       `json:"entry_fee_sats"`
	AcePotFeeSats int64       `json:"ace_pot_fee_sats"`
	HostIdentity  string      `json:"host_identity"`
	Players       []*Player   `json:"players"` // join order
	Pars          map[int]int `json:"pars"`    // hole number -> par
	Status        RoundStatus `json:"status"`
	DonationSats  int64       `json:"donation_sats"` // overpayment surplus, counted into the entry pot
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Player looks up a participant by identity.
func (r *Round) Player(identity string) *Player {
	for _, p := range r.Players {
		if p.Identity == identity {
			return p
		}
	}
	return nil
}

// Obligation computes what a player owes into the round. Derived on demand,
// never cached.
func (r *Round) Obligation(identity string) int64 {
	p := r.Player(identity)
	if p == nil {
		return 0
	}
	var owed int64
	if p.PaysEntry {
		owed += r.EntryFeeSats
	}
	if p.PaysAce {
		owed += r.AcePotFeeSats
	}
	return owed
}

// ApplyPayment credits amount toward a player's obligation and latches Paid
// once the obligation is covered. Paid is monotonic: a paid player stays paid
// and further credit is ignored. Surplus above the obligation is counted as a
// donation to the entry pot. Returns true if this call flipped Paid.
func (r *Round) ApplyPayment(identity string, amountSats int64) bool {
	p := r.Player(identity)
	if p == nil || amountSats <= 0 {
		return false
	}
	if p.Paid {
		return false
	}
	p.PaidSats += amountSats
	owed := r.Obligation(identity)
	if p.PaidSats < owed {
		return false
	}
	p.Paid = true
	if surplus := p.PaidSats - owed; surplus > 0 {
		r.DonationSats += surplus
	}
	return true
}

// MarkPaid latches a player's Paid flag unconditionally (used when an invoice
// for the exact obligation settles). Idempotent.
func (r *Round) MarkPaid(identity string) bool {
	p := r.Player(identity)
	if p == nil || p.Paid {
		return false
	}
	p.Paid = true
	p.PaidSats = r.Obligation(identity)
	return true
}

// PotTotals derives the current pots from player payment state.
func (r *Round) PotTotals() PotTotals {
	var totals PotTotals
	for _, p := range r.Players {
		if !p.Paid {
			continue
		}
		if p.PaysEntry {
			totals.EntryPotSats += r.EntryFeeSats
		}
		if p.PaysAce {
			totals.AcePotSats += r.AcePotFeeSats
		}
	}
	totals.EntryPotSats += r.DonationSats
	return totals
}

// Standing is one row of the final ranking.
type Standing struct {
	Identity  string `json:"identity"`
	Name      string `json:"name"`
	Strokes   int    `json:"strokes"`
	JoinOrder int    `json:"join_order"`
}

// Standings ranks players by total strokes ascending. Ties break by join
// order, first joiner first. The sort is stable and deterministic so every
// participant computes the identical ranking with no arbiter.
func (r *Round) Standings() []Standing {
	standings := make([]Standing, 0, len(r.Players))
	for _, p := range r.Players {
		standings = append(standings, Standing{
			Identity:  p.Identity,
			Name:      p.Name,
			Strokes:   p.TotalStrokes(),
			JoinOrder: p.JoinOrder,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Strokes != standings[j].Strokes {
			return standings[i].Strokes < standings[j].Strokes
		}
		return standings[i].JoinOrder < standings[j].JoinOrder
	})
	return standings
}

// AceMakers returns identities of players who recorded a hole-in-one, in join
// order.
func (r *Round) AceMakers() []string {
	var makers []string
	for _, p := range r.Players {
		if len(p.Aces(r.Pars)) > 0 {
			makers = append(makers, p.Identity)
		}
	}
	return makers
}

// AllPaid reports whether every player with a nonzero obligation has paid.
func (r *Round) AllPaid() bool {
	for _, p := range r.Players {
		if r.Obligation(p.Identity) > 0 && !p.Paid {
			return false
		}
	}
	return true
}

package integration

import (
	"context"
	"fmt"
	"sync"

	"onchain-discgolf/internal/core/domain"

	"github.com/nbd-wtf/go-nostr"
)

// --- Shared Fake Mint ---

// fakeMint is one mint shared by every engine in a test, mirroring how a real
// e-cash mint serves all wallets. Swapping a token invalidates it, so a bearer
// token can only ever be claimed once.
type fakeMint struct {
	mu     sync.Mutex
	seq    int
	issued map[string]int64 // secret -> amount
	spent  map[string]bool
}

func newFakeMint() *fakeMint {
	return &fakeMint{issued: make(map[string]int64), spent: make(map[string]bool)}
}

func (m *fakeMint) ID() string { return "mint.test" }

func (m *fakeMint) Issue(ctx context.Context, amountSats int64) (domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issueLocked(amountSats), nil
}

func (m *fakeMint) issueLocked(amountSats int64) domain.Token {
	m.seq++
	secret := fmt.Sprintf("sec-%d", m.seq)
	m.issued[secret] = amountSats
	return domain.Token{
		AmountSats: amountSats,
		MintID:     m.ID(),
		Secret:     secret,
		Signature:  "sig-" + secret,
	}
}

func (m *fakeMint) Verify(ctx context.Context, token domain.Token) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	amount, ok := m.issued[token.Secret]
	return ok && !m.spent[token.Secret] && amount == token.AmountSats, nil
}

func (m *fakeMint) Swap(ctx context.Context, tokens []domain.Token, targetAmounts []int64) ([]domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var inputSum int64
	for _, t := range tokens {
		amount, ok := m.issued[t.Secret]
		if !ok || m.spent[t.Secret] || amount != t.AmountSats {
			return nil, fmt.Errorf("token %s rejected", t.Secret)
		}
		inputSum += amount
	}
	var targetSum int64
	for _, a := range targetAmounts {
		targetSum += a
	}
	if inputSum != targetSum {
		return nil, fmt.Errorf("swap amounts do not balance: in %d, out %d", inputSum, targetSum)
	}

	for _, t := range tokens {
		m.spent[t.Secret] = true
	}
	out := make([]domain.Token, 0, len(targetAmounts))
	for _, a := range targetAmounts {
		out = append(out, m.issueLocked(a))
	}
	return out, nil
}

// --- Fake Lightning Gateway ---

type fakeGateway struct {
	url  string
	down bool

	mu       sync.Mutex
	seq      int
	invoices map[string]*fakeInvoice
}

type fakeInvoice struct {
	amountSats int64
	paid       bool
}

func newFakeGateway(url string) *fakeGateway {
	return &fakeGateway{url: url, invoices: make(map[string]*fakeInvoice)}
}

func (g *fakeGateway) URL() string { return g.url }

func (g *fakeGateway) CreateInvoice(ctx context.Context, amountSats int64) (string, string, error) {
	if g.down {
		return "", "", fmt.Errorf("gateway %s: connection refused", g.url)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	handle := fmt.Sprintf("inv-%d", g.seq)
	g.invoices[handle] = &fakeInvoice{amountSats: amountSats}
	return "lnbc-" + handle, handle, nil
}

func (g *fakeGateway) CheckPaid(ctx context.Context, handle string) (bool, error) {
	if g.down {
		return false, fmt.Errorf("gateway %s: connection refused", g.url)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	inv, ok := g.invoices[handle]
	if !ok {
		return false, fmt.Errorf("unknown invoice %s", handle)
	}
	return inv.paid, nil
}

// settle marks an invoice paid, as if the payer's Lightning wallet settled it.
func (g *fakeGateway) settle(handle string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if inv, ok := g.invoices[handle]; ok {
		inv.paid = true
	}
}

// --- In-Process Relay Hub ---

// relayHub is an in-process relay shared by every engine in a test. Published
// events are routed to each subscription whose filter matches, so two engines
// wired to the same hub exchange envelopes exactly as they would over a relay.
type relayHub struct {
	mu   sync.Mutex
	subs map[int]*hubSub
	next int
}

type hubSub struct {
	filter nostr.Filter
	ch     chan nostr.Event
}

func newRelayHub() *relayHub {
	return &relayHub{subs: make(map[int]*hubSub)}
}

func (h *relayHub) Publish(ctx context.Context, event nostr.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.filter.Matches(&event) {
			select {
			case sub.ch <- event:
			default: // subscriber too slow, drop like a lossy relay would
			}
		}
	}
	return nil
}

func (h *relayHub) subCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// hasSubFor reports whether a live subscription filters on the given identity,
// letting fixtures wait for a specific engine's subscription without racing
// the asynchronous removal of canceled ones.
func (h *relayHub) hasSubFor(identity string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		for _, v := range sub.filter.Tags["p"] {
			if v == identity {
				return true
			}
		}
	}
	return false
}

func (h *relayHub) Subscribe(ctx context.Context, filter nostr.Filter) (<-chan nostr.Event, error) {
	h.mu.Lock()
	id := h.next
	h.next++
	sub := &hubSub{filter: filter, ch: make(chan nostr.Event, 64)}
	h.subs[id] = sub
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

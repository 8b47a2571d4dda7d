package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/nbd-wtf/go-nostr"
	"github.com/rs/zerolog"
)

// MultiRelay implements ports.RelayTransport across a set of relay URLs.
// Relays are interchangeable dumb pipes: publishing succeeds if any one
// relay accepts the event, and subscriptions merge every relay's stream.
// The dedup store downstream absorbs the resulting duplicates.
type MultiRelay struct {
	urls []string
	log  zerolog.Logger

	mu    sync.Mutex
	conns map[string]*nostr.Relay
}

// NewMultiRelay creates a transport over the given relay URLs. Connections
// are dialed lazily, so unreachable relays cost nothing until used.
func NewMultiRelay(urls []string, log zerolog.Logger) *MultiRelay {
	return &MultiRelay{
		urls:  urls,
		log:   log,
		conns: make(map[string]*nostr.Relay),
	}
}

func (m *MultiRelay) connect(ctx context.Context, url string) (*nostr.Relay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, ok := m.conns[url]; ok && conn.IsConnected() {
		return conn, nil
	}

	conn, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		delete(m.conns, url)
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	m.conns[url] = conn
	return conn, nil
}

// Publish sends the event to every configured relay. One acceptance is
// success; the error reports the last failure only when every relay refused.
func (m *MultiRelay) Publish(ctx context.Context, event nostr.Event) error {
	var lastErr error
	accepted := 0

	for _, url := range m.urls {
		conn, err := m.connect(ctx, url)
		if err != nil {
			m.log.Warn().Err(err).Str("relay", url).Msg("relay unreachable")
			lastErr = err
			continue
		}
		if err := conn.Publish(ctx, event); err != nil {
			m.log.Warn().Err(err).Str("relay", url).Msg("relay refused event")
			lastErr = err
			continue
		}
		accepted++
	}

	if accepted == 0 {
		return fmt.Errorf("no relay accepted event: %w", lastErr)
	}

	m.log.Debug().
		Str("event_id", event.ID).
		Int("accepted", accepted).
		Int("relays", len(m.urls)).
		Msg("event published")
	return nil
}

// Subscribe opens the filter on every reachable relay and merges the streams
// into one channel. The channel closes when ctx is canceled.
func (m *MultiRelay) Subscribe(ctx context.Context, filter nostr.Filter) (<-chan nostr.Event, error) {
	merged := make(chan nostr.Event)
	var wg sync.WaitGroup
	subscribed := 0
	var lastErr error

	for _, url := range m.urls {
		conn, err := m.connect(ctx, url)
		if err != nil {
			m.log.Warn().Err(err).Str("relay", url).Msg("relay unreachable, skipping subscription")
			lastErr = err
			continue
		}
		sub, err := conn.Subscribe(ctx, nostr.Filters{filter})
		if err != nil {
			m.log.Warn().Err(err).Str("relay", url).Msg("subscribe failed")
			lastErr = err
			continue
		}
		subscribed++

		wg.Add(1)
		go func(url string, sub *nostr.Subscription) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-sub.Events:
					if !ok {
						m.log.Debug().Str("relay", url).Msg("relay subscription closed")
						return
					}
					if ev == nil {
						continue
					}
					select {
					case merged <- *ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}(url, sub)
	}

	if subscribed == 0 {
		close(merged)
		return nil, fmt.Errorf("no relay accepted subscription: %w", lastErr)
	}

	go func() {
		wg.Wait()
		close(merged)
	}()

	m.log.Info().
		Int("relays", subscribed).
		Msg("subscribed to relays")
	return merged, nil
}

// Close disconnects every open relay connection.
func (m *MultiRelay) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for url, conn := range m.conns {
		if err := conn.Close(); err != nil {
			m.log.Debug().Err(err).Str("relay", url).Msg("relay close failed")
		}
		delete(m.conns, url)
	}
}

package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip44"
)

const (
	// KindGiftWrap is the outer envelope kind relays carry for us.
	KindGiftWrap = 1059
	// kindSeal is the inner envelope signed by the real sender.
	kindSeal = 13
	// kindRumor is the unsigned innermost event carrying the payload.
	kindRumor = 14
)

// NostrGiftWrapService implements ports.GiftWrapService. Payloads are sealed
// twice: an inner seal signed by the local key proves who sent it, and an
// outer wrap signed by a throwaway key hides that identity from the relays.
// Only the recipient can peel either layer.
type NostrGiftWrapService struct {
	privateKey string
	publicKey  string
}

// NewNostrGiftWrapService creates a gift wrap service from a hex-encoded
// secp256k1 private key.
func NewNostrGiftWrapService(hexPrivateKey string) (*NostrGiftWrapService, error) {
	pub, err := nostr.GetPublicKey(hexPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("deriving public key: %w", err)
	}
	return &NostrGiftWrapService{privateKey: hexPrivateKey, publicKey: pub}, nil
}

// LocalIdentity returns the hex public key of the local signing key.
func (s *NostrGiftWrapService) LocalIdentity() string {
	return s.publicKey
}

// Wrap seals plaintext for recipientPubkey and returns the publishable outer
// event. The outer timestamp is smeared into the past so relays cannot
// correlate wraps by creation time.
func (s *NostrGiftWrapService) Wrap(recipientPubkey string, plaintext []byte) (nostr.Event, error) {
	rumor := nostr.Event{
		PubKey:    s.publicKey,
		CreatedAt: nostr.Now(),
		Kind:      kindRumor,
		Tags:      nostr.Tags{},
		Content:   string(plaintext),
	}
	rumorJSON, err := json.Marshal(rumor)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("marshaling rumor: %w", err)
	}

	sealKey, err := nip44.GenerateConversationKey(recipientPubkey, s.privateKey)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("deriving seal key: %w", err)
	}
	sealContent, err := nip44.Encrypt(string(rumorJSON), sealKey)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("encrypting seal: %w", err)
	}
	seal := nostr.Event{
		CreatedAt: smearTimestamp(),
		Kind:      kindSeal,
		Tags:      nostr.Tags{},
		Content:   sealContent,
	}
	if err := seal.Sign(s.privateKey); err != nil {
		return nostr.Event{}, fmt.Errorf("signing seal: %w", err)
	}
	sealJSON, err := json.Marshal(seal)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("marshaling seal: %w", err)
	}

	ephemeralKey := nostr.GeneratePrivateKey()
	wrapKey, err := nip44.GenerateConversationKey(recipientPubkey, ephemeralKey)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("deriving wrap key: %w", err)
	}
	wrapContent, err := nip44.Encrypt(string(sealJSON), wrapKey)
	if err != nil {
		return nostr.Event{}, fmt.Errorf("encrypting wrap: %w", err)
	}
	wrap := nostr.Event{
		CreatedAt: smearTimestamp(),
		Kind:      KindGiftWrap,
		Tags:      nostr.Tags{{"p", recipientPubkey}},
		Content:   wrapContent,
	}
	if err := wrap.Sign(ephemeralKey); err != nil {
		return nostr.Event{}, fmt.Errorf("signing wrap: %w", err)
	}
	return wrap, nil
}

// Unwrap opens a wrap addressed to the local identity and returns the sender
// and plaintext. Events addressed to someone else, or whose seal signature
// does not check out, yield an error.
func (s *NostrGiftWrapService) Unwrap(event nostr.Event) (string, []byte, error) {
	if event.Kind != KindGiftWrap {
		return "", nil, fmt.Errorf("unexpected event kind %d", event.Kind)
	}

	wrapKey, err := nip44.GenerateConversationKey(event.PubKey, s.privateKey)
	if err != nil {
		return "", nil, fmt.Errorf("deriving wrap key: %w", err)
	}
	sealJSON, err := nip44.Decrypt(event.Content, wrapKey)
	if err != nil {
		return "", nil, fmt.Errorf("decrypting wrap: %w", err)
	}

	var seal nostr.Event
	if err := json.Unmarshal([]byte(sealJSON), &seal); err != nil {
		return "", nil, fmt.Errorf("unmarshaling seal: %w", err)
	}
	if seal.Kind != kindSeal {
		return "", nil, fmt.Errorf("unexpected seal kind %d", seal.Kind)
	}
	if ok, err := seal.CheckSignature(); err != nil || !ok {
		return "", nil, fmt.Errorf("seal signature invalid")
	}

	sealKey, err := nip44.GenerateConversationKey(seal.PubKey, s.privateKey)
	if err != nil {
		return "", nil, fmt.Errorf("deriving seal key: %w", err)
	}
	rumorJSON, err := nip44.Decrypt(seal.Content, sealKey)
	if err != nil {
		return "", nil, fmt.Errorf("decrypting seal: %w", err)
	}

	var rumor nostr.Event
	if err := json.Unmarshal([]byte(rumorJSON), &rumor); err != nil {
		return "", nil, fmt.Errorf("unmarshaling rumor: %w", err)
	}
	// The rumor is unsigned; a sender claiming someone else's identity inside
	// the seal they signed would be caught here.
	if rumor.PubKey != seal.PubKey {
		return "", nil, fmt.Errorf("rumor author does not match seal author")
	}

	return seal.PubKey, []byte(rumor.Content), nil
}

// smearTimestamp returns a timestamp up to two days in the past.
func smearTimestamp() nostr.Timestamp {
	offset := time.Duration(rand.Int63n(int64(48 * time.Hour)))
	return nostr.Timestamp(time.Now().Add(-offset).Unix())
}

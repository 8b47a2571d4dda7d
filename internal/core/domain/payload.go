package domain

import (
	"encoding/json"
	"fmt"
)

// PayloadType tags the JSON payloads carried inside encrypted peer messages.
type PayloadType string

const (
	PayloadTypeTokenTransfer PayloadType = "token_transfer"
	PayloadTypeWalletBackup  PayloadType = "wallet_backup"
	PayloadTypeFeedback      PayloadType = "feedback"
)

// TokenTransferPayload moves bearer tokens to a peer, optionally referencing
// the round the payment is for.
type TokenTransferPayload struct {
	Type    PayloadType `json:"type"`
	RoundID string      `json:"round_id,omitempty"`
	Memo    string      `json:"memo,omitempty"`
	Tokens  []Token     `json:"tokens"`
}

// Amount returns the total sats carried by the transfer.
func (p TokenTransferPayload) Amount() int64 {
	return SumTokens(p.Tokens)
}

func (p TokenTransferPayload) validate() error {
	if len(p.Tokens) == 0 {
		return fmt.Errorf("token transfer carries no tokens")
	}
	for i, t := range p.Tokens {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("token %d: %w", i, err)
		}
	}
	return nil
}

// WalletBackupPayload is a token dump a wallet sends to itself for recovery.
type WalletBackupPayload struct {
	Type   PayloadType `json:"type"`
	Tokens []Token     `json:"tokens"`
}

// FeedbackPayload is user feedback addressed to the support identity.
type FeedbackPayload struct {
	Type       PayloadType `json:"type"`
	Category   string      `json:"category"` // bug, feature, general
	Message    string      `json:"message"`
	AppVersion string      `json:"app_version,omitempty"`
}

// DecodePayload parses a plaintext peer message into its tagged variant.
// Anything that does not parse into a known variant is an error; callers drop
// and log rather than treat it as fatal, since foreign and malformed messages
// are routine on shared relays.
func DecodePayload(raw []byte) (interface{}, error) {
	var envelope struct {
		Type PayloadType `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding payload envelope: %w", err)
	}

	switch envelope.Type {
	case PayloadTypeTokenTransfer:
		var p TokenTransferPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding token transfer: %w", err)
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("invalid token transfer: %w", err)
		}
		return p, nil
	case PayloadTypeWalletBackup:
		var p WalletBackupPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding wallet backup: %w", err)
		}
		return p, nil
	case PayloadTypeFeedback:
		var p FeedbackPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding feedback: %w", err)
		}
		if p.Message == "" {
			return nil, fmt.Errorf("feedback payload missing message")
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown payload type %q", envelope.Type)
	}
}

// Package event defines the append-only structured event log emitted by
// the token ledger. Entries follow the NEP-171 convention: a standard
// name, a standard version, an event name and a data payload, rendered
// on the wire as "EVENT_JSON:" followed by the JSON encoding.
package event

import (
	"encoding/json"
	"fmt"
)

const (
	// Standard is the event standard name carried by every entry.
	Standard = "nep171"

	// Version is the event standard version carried by every entry.
	Version = "nft-1.0.0"

	// Prefix marks a serialized event entry on the wire.
	Prefix = "EVENT_JSON:"
)

// Event names.
const (
	NameMint     = "nft_mint"
	NameTransfer = "nft_transfer"
)

// Log is a single entry in the event log.
type Log struct {
	Standard string `json:"standard"`
	Version  string `json:"version"`
	Event    string `json:"event"`
	Data     any    `json:"data"`
}

// MintData records one minting in an nft_mint entry.
type MintData struct {
	OwnerID  string   `json:"owner_id"`
	TokenIDs []string `json:"token_ids"`
	Memo     string   `json:"memo,omitempty"`
}

// TransferData records one ownership change in an nft_transfer entry.
// AuthorizedID is set only when an approved operator, rather than the
// owner, initiated the transfer.
type TransferData struct {
	AuthorizedID string   `json:"authorized_id,omitempty"`
	OldOwnerID   string   `json:"old_owner_id"`
	NewOwnerID   string   `json:"new_owner_id"`
	TokenIDs     []string `json:"token_ids"`
	Memo         string   `json:"memo,omitempty"`
}

// NewMint builds an nft_mint log entry.
func NewMint(data ...MintData) *Log {
	return &Log{
		Standard: Standard,
		Version:  Version,
		Event:    NameMint,
		Data:     data,
	}
}

// NewTransfer builds an nft_transfer log entry.
func NewTransfer(data ...TransferData) *Log {
	return &Log{
		Standard: Standard,
		Version:  Version,
		Event:    NameTransfer,
		Data:     data,
	}
}

// String renders the entry in its wire form.
func (l *Log) String() string {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Sprintf("%s{\"standard\":%q}", Prefix, l.Standard)
	}
	return Prefix + string(b)
}

// Sink receives log entries as they are emitted. Append is called
// synchronously inside the mutating operation that produced the entry.
type Sink interface {
	Append(l *Log) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(l *Log) error

// Append calls f(l).
func (f SinkFunc) Append(l *Log) error { return f(l) }

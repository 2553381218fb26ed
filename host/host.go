// Package host supplies an in-process execution environment for the
// marketplace: a single-threaded turn loop delivering asynchronous
// remote calls and their callbacks between the market and the token
// ledgers it settles against, and a bank holding account balances.
// Each queued turn runs to completion before the next starts; the gap
// between a remote request and its callback is the protocol's only
// suspension point. Timing out an unanswered call would be implemented
// here, never inside the settlement protocol itself.
package host

import (
	"context"
	"math/big"
	"sync"

	"github.com/tokenmart/libtokenmart-go/market"
	"github.com/tokenmart/libtokenmart-go/token"
)

// Host routes remote transfer-and-payout calls from a market to
// registered token ledgers and delivers their outcomes as callback
// turns.
type Host struct {
	mu       sync.Mutex
	queue    []func()
	ledgers  map[string]*token.Ledger
	marketID string
	notify   chan struct{}
}

// Compile-time interface check.
var _ market.Authority = (*Host)(nil)

// New creates a host. marketID is the account the market acts as when
// calling a ledger; it must be the account listings were approved for.
func New(marketID string) *Host {
	return &Host{
		ledgers:  make(map[string]*token.Ledger),
		marketID: marketID,
		notify:   make(chan struct{}, 1),
	}
}

// Register binds a ledger to a contract id. Calls for unregistered
// contract ids fail and resolve to the refund path.
func (h *Host) Register(contractID string, l *token.Ledger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ledgers[contractID] = l
}

// TransferPayout implements market.Authority. The ledger call runs in
// its own turn and the callback in a later one, so the caller observes
// the same request/callback suspension point a remote authority would
// impose.
func (h *Host) TransferPayout(contractID string, req *market.TransferRequest, cb market.Callback) {
	h.enqueue(func() {
		out := h.executeTransfer(contractID, req)
		h.enqueue(func() { cb(out) })
	})
}

// executeTransfer runs the ledger-side half of a purchase. Any failure
// collapses into a valueless outcome: the market cannot distinguish why
// the remote call failed, only that it did.
func (h *Host) executeTransfer(contractID string, req *market.TransferRequest) market.Outcome {
	h.mu.Lock()
	ledger := h.ledgers[contractID]
	h.mu.Unlock()
	if ledger == nil {
		return market.Outcome{Failed: true}
	}

	approvalID := req.ApprovalID
	payout, err := ledger.TransferPayout(
		token.AccountID(h.marketID),
		req.Deposit,
		token.AccountID(req.ReceiverID),
		token.TokenID(req.TokenID),
		&approvalID,
		req.Memo,
		req.Balance,
		req.MaxLenPayout,
	)
	if err != nil {
		return market.Outcome{Failed: true}
	}

	value, err := market.EncodePayout(payoutToWire(payout))
	if err != nil {
		return market.Outcome{Failed: true}
	}
	return market.Outcome{Value: value}
}

// payoutToWire converts a ledger payout to the market's wire map.
func payoutToWire(p token.Payout) map[string]*big.Int {
	wire := make(map[string]*big.Int, len(p))
	for account, amount := range p {
		wire[string(account)] = amount
	}
	return wire
}

// enqueue appends a turn and wakes a waiting Run loop.
func (h *Host) enqueue(turn func()) {
	h.mu.Lock()
	h.queue = append(h.queue, turn)
	h.mu.Unlock()
	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Drain runs queued turns until none remain. Turns enqueued while
// draining run after those already queued.
func (h *Host) Drain() {
	for {
		h.mu.Lock()
		if len(h.queue) == 0 {
			h.mu.Unlock()
			return
		}
		turn := h.queue[0]
		h.queue = h.queue[1:]
		h.mu.Unlock()
		turn()
	}
}

// Run drains turns as they arrive until ctx is done.
func (h *Host) Run(ctx context.Context) {
	for {
		h.Drain()
		select {
		case <-ctx.Done():
			return
		case <-h.notify:
		}
	}
}

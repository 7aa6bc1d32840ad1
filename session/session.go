// Package session tracks the wallet connection lifecycle. Connection
// state and registration state are collapsed into a single machine so
// that no caller can observe "connected but status unknown": a session
// is either disconnected or connected with a definite profile.
package session

import (
	"context"
	"sync"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/errors"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/history"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/profile"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
)

type State int32

const (
	Disconnected State = iota
	ConnectedUnregistered
	ConnectedActive
	ConnectedSuspended
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case ConnectedUnregistered:
		return "ConnectedUnregistered"
	case ConnectedActive:
		return "ConnectedActive"
	case ConnectedSuspended:
		return "ConnectedSuspended"
	default:
		return "Unknown"
	}
}

// StateForStatus maps a ledger registration status onto the connected
// session state it implies.
func StateForStatus(status types.AccountStatus) State {
	switch status {
	case types.StatusActive:
		return ConnectedActive
	case types.StatusSuspended:
		return ConnectedSuspended
	default:
		return ConnectedUnregistered
	}
}

// Session owns the connected identity, its caches, and the epoch
// counter that fences out results from superseded connections.
type Session struct {
	gw  gateway.Gateway
	bus *types.EventBus

	mu      sync.Mutex
	state   State
	account string
	isOwner bool
	epoch   uint64
	profile *profile.Cache
	history *history.Reconstructor
}

// Snapshot is a consistent view of the session taken at one instant.
// The cache references stay valid after a disconnect, but writes into
// them then land on orphaned objects no reader sees.
type Snapshot struct {
	Epoch     uint64
	State     State
	Account   string
	IsOwner   bool
	Connected bool
	Profile   *profile.Cache
	History   *history.Reconstructor
}

func New(gw gateway.Gateway, bus *types.EventBus) *Session {
	return &Session{gw: gw, bus: bus}
}

// Connect establishes a session for the gateway's wallet identity:
// resolves whether it is the ledger owner, loads the profile, and for
// an active account reconstructs the transaction history. Any fetch
// failure leaves the session disconnected.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Disconnected {
		s.mu.Unlock()
		return errors.LocalValidation("a wallet is already connected")
	}
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	addr, err := s.gw.Connect(ctx)
	if err != nil {
		return err
	}
	owner, err := s.gw.Owner(ctx)
	if err != nil {
		return err
	}

	prof := profile.NewCache(addr)
	if err := prof.Refresh(ctx, s.gw); err != nil {
		return err
	}
	hist := history.New(addr)
	if prof.Status() == types.StatusActive {
		if err := hist.Refresh(ctx, s.gw); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.state != Disconnected {
		logx.Debug("SESSION", "Dropping superseded connection for ", addr)
		return nil
	}
	s.account = addr
	s.isOwner = types.SameAddress(addr, owner)
	s.profile = prof
	s.history = hist
	s.state = StateForStatus(prof.Status())

	logx.Info("SESSION", "Connected ", addr, " state=", s.state.String(), " owner=", s.isOwner)
	s.bus.Publish(types.NewWalletConnected(addr, s.isOwner))
	return nil
}

// Disconnect drops the session. All cached views vanish with it, and
// the epoch bump silently discards any results still in flight for the
// old connection.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return
	}
	addr := s.account
	s.epoch++
	s.state = Disconnected
	s.account = ""
	s.isOwner = false
	s.profile = nil
	s.history = nil

	logx.Info("SESSION", "Disconnected ", addr)
	s.bus.Publish(types.NewWalletDisconnected(addr))
}

// Snapshot captures the current session under one lock acquisition.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Epoch:     s.epoch,
		State:     s.state,
		Account:   s.account,
		IsOwner:   s.isOwner,
		Connected: s.state != Disconnected,
		Profile:   s.profile,
		History:   s.history,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Account() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

func (s *Session) IsOwner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOwner
}

func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Profile returns the gated profile view, or the zero value when
// disconnected.
func (s *Session) Profile() types.Account {
	s.mu.Lock()
	prof := s.profile
	s.mu.Unlock()

	if prof == nil {
		return types.Account{}
	}
	return prof.Profile()
}

// History returns the last reconstructed history view, empty when
// disconnected.
func (s *Session) History() []types.HistoryEntry {
	s.mu.Lock()
	hist := s.history
	s.mu.Unlock()

	if hist == nil {
		return nil
	}
	return hist.View()
}

// SyncStateFromProfile realigns the connected state with the freshly
// cached registration status. A mismatched epoch means the refresh
// belongs to a session that no longer exists; it is dropped without a
// trace in the current one.
func (s *Session) SyncStateFromProfile(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || s.state == Disconnected || s.profile == nil {
		logx.Debug("SESSION", "Dropping stale profile sync for epoch ", epoch)
		return
	}
	next := StateForStatus(s.profile.Status())
	if next != s.state {
		logx.Info("SESSION", "State ", s.state.String(), " -> ", next.String())
		s.state = next
	}
}

// PublishIfCurrent delivers an event only when the originating epoch is
// still the live one.
func (s *Session) PublishIfCurrent(epoch uint64, event types.SessionEvent) {
	s.mu.Lock()
	current := s.epoch == epoch && s.state != Disconnected
	s.mu.Unlock()

	if !current {
		logx.Debug("SESSION", "Dropping stale event ", event.Type())
		return
	}
	s.bus.Publish(event)
}

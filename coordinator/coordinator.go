// Package coordinator drives the mutating action cycle against the
// ledger. At most one action runs at a time; every attempt that
// reaches the ledger is followed by a resynchronization, because only
// a fresh read reveals what the ledger actually recorded.
package coordinator

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/holiman/uint256"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/errors"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/notify"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/session"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
)

// Phase is the observable position in the action cycle.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseAwaitingConfirmation
	PhaseReconciling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseValidating:
		return "Validating"
	case PhaseSubmitting:
		return "Submitting"
	case PhaseAwaitingConfirmation:
		return "AwaitingConfirmation"
	case PhaseReconciling:
		return "Reconciling"
	default:
		return "Unknown"
	}
}

type Coordinator struct {
	sess *session.Session
	gw   gateway.Gateway
	sink notify.Sink

	busy  sync.Mutex
	phase atomic.Int32
}

func New(sess *session.Session, gw gateway.Gateway, sink notify.Sink) *Coordinator {
	return &Coordinator{sess: sess, gw: gw, sink: sink}
}

// Phase reports where the current action cycle stands.
func (c *Coordinator) Phase() Phase {
	return Phase(c.phase.Load())
}

// Register submits a registration for the connected identity. The
// profile and history are re-read only after the ledger confirms: a
// rejected registration changed nothing worth re-reading.
func (c *Coordinator) Register(ctx context.Context, name string) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	snap := c.sess.Snapshot()
	name = strings.TrimSpace(name)
	if err := c.validateRegister(snap, name); err != nil {
		c.notifyIfCurrent(snap.Epoch, errors.Reason(err), notify.SeverityError, notify.DefaultDuration)
		return err
	}

	if err := c.submit(ctx, snap, "register", func(ctx context.Context) error {
		return c.gw.Register(ctx, name)
	}); err != nil {
		c.notifyIfCurrent(snap.Epoch, "Registration failed: "+errors.Reason(err), notify.SeverityError, notify.DefaultDuration)
		c.finish(snap, "register", err)
		return err
	}

	c.notifyIfCurrent(snap.Epoch, "Registration successful!", notify.SeveritySuccess, notify.ShortDuration)
	c.setPhase(PhaseReconciling)
	if err := c.reconcile(ctx, snap, true); err != nil {
		c.notifyIfCurrent(snap.Epoch, "Refresh failed; showing last known state.", notify.SeverityInfo, notify.DefaultDuration)
	}
	c.finish(snap, "register", nil)
	return nil
}

// Pay submits a payment. Both outcomes reconcile: a confirmed payment
// moved funds, and a rejected one may still have left a flagged entry
// in the ledger's log. Skipping the refresh on failure would hide that
// entry until the next unrelated refresh.
func (c *Coordinator) Pay(ctx context.Context, to, amountStr string) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	snap := c.sess.Snapshot()
	amount, err := c.validatePay(snap, to, amountStr)
	if err != nil {
		c.notifyIfCurrent(snap.Epoch, errors.Reason(err), notify.SeverityError, notify.DefaultDuration)
		return err
	}

	submitErr := c.submit(ctx, snap, "pay", func(ctx context.Context) error {
		return c.gw.Pay(ctx, to, amount)
	})
	if submitErr != nil {
		c.notifyIfCurrent(snap.Epoch, "Payment failed: "+errors.Reason(submitErr), notify.SeverityError, notify.DefaultDuration)
	} else {
		c.notifyIfCurrent(snap.Epoch, "Payment successful!", notify.SeveritySuccess, notify.ShortDuration)
	}

	c.setPhase(PhaseReconciling)
	if err := c.reconcile(ctx, snap, true); err != nil && submitErr == nil {
		c.notifyIfCurrent(snap.Epoch, "Refresh failed; showing last known state.", notify.SeverityInfo, notify.DefaultDuration)
	}
	c.finish(snap, "pay", submitErr)
	return submitErr
}

// SetStatus submits an owner-only status change for another account.
// Only the caller's own profile is re-read afterward; the target's
// state is the ledger's concern until someone views it.
func (c *Coordinator) SetStatus(ctx context.Context, account string, status types.AccountStatus) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	snap := c.sess.Snapshot()
	if err := c.validateSetStatus(snap, account, status); err != nil {
		c.notifyIfCurrent(snap.Epoch, errors.Reason(err), notify.SeverityError, notify.DefaultDuration)
		return err
	}

	if err := c.submit(ctx, snap, "setstatus", func(ctx context.Context) error {
		return c.gw.SetStatus(ctx, account, status)
	}); err != nil {
		c.notifyIfCurrent(snap.Epoch, "Status update failed: "+errors.Reason(err), notify.SeverityError, notify.DefaultDuration)
		c.finish(snap, "setstatus", err)
		return err
	}

	c.notifyIfCurrent(snap.Epoch, "User status updated for "+utils.ShortenAddress(account), notify.SeveritySuccess, notify.ShortDuration)
	c.setPhase(PhaseReconciling)
	if err := c.reconcile(ctx, snap, false); err != nil {
		c.notifyIfCurrent(snap.Epoch, "Refresh failed; showing last known state.", notify.SeverityInfo, notify.DefaultDuration)
	}
	c.finish(snap, "setstatus", nil)
	return nil
}

// RefreshAll re-reads the profile and history on demand. It takes the
// same exclusive slot as the mutating actions so a manual refresh can
// never interleave with a pending reconciliation.
func (c *Coordinator) RefreshAll(ctx context.Context) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	snap := c.sess.Snapshot()
	if !snap.Connected {
		return errors.LocalValidation("no wallet connected")
	}

	c.setPhase(PhaseReconciling)
	if err := c.reconcile(ctx, snap, true); err != nil {
		c.notifyIfCurrent(snap.Epoch, "Refresh failed: "+errors.Reason(err), notify.SeverityError, notify.DefaultDuration)
		return err
	}
	c.notifyIfCurrent(snap.Epoch, "Refreshed", notify.SeverityInfo, notify.ShortDuration)
	return nil
}

func (c *Coordinator) validateRegister(snap session.Snapshot, name string) error {
	if !snap.Connected {
		return errors.LocalValidation("no wallet connected")
	}
	if name == "" {
		return errors.LocalValidation("name must not be empty")
	}
	if snap.State != session.ConnectedUnregistered {
		return errors.LocalValidation("account is already registered")
	}
	return nil
}

// validatePay re-reads the cached status at submission time rather
// than trusting any value the caller saw earlier. A suspension that
// arrived through a refresh since then blocks the payment here.
func (c *Coordinator) validatePay(snap session.Snapshot, to, amountStr string) (*uint256.Int, error) {
	if !snap.Connected {
		return nil, errors.LocalValidation("no wallet connected")
	}
	if !types.IsAddress(to) {
		return nil, errors.LocalValidation("invalid recipient address")
	}
	amount, err := utils.ParsePositiveAmount(amountStr)
	if err != nil {
		return nil, errors.LocalValidation("invalid amount: " + err.Error())
	}
	switch snap.Profile.Status() {
	case types.StatusActive:
	case types.StatusSuspended:
		return nil, errors.LocalValidation("account is suspended and cannot send payments")
	default:
		return nil, errors.LocalValidation("account is not registered")
	}
	return amount, nil
}

func (c *Coordinator) validateSetStatus(snap session.Snapshot, account string, status types.AccountStatus) error {
	if !snap.Connected {
		return errors.LocalValidation("no wallet connected")
	}
	if !snap.IsOwner {
		return errors.LocalValidation("only the ledger owner can update account status")
	}
	if !types.IsAddress(account) {
		return errors.LocalValidation("invalid account address")
	}
	if status != types.StatusActive && status != types.StatusSuspended {
		return errors.LocalValidation("invalid status")
	}
	return nil
}

// submit hands the action to the ledger and blocks until it confirms
// or rejects.
func (c *Coordinator) submit(ctx context.Context, snap session.Snapshot, action string, call func(context.Context) error) error {
	c.setPhase(PhaseSubmitting)
	c.sess.PublishIfCurrent(snap.Epoch, types.NewActionSubmitted(snap.Account, action))
	c.setPhase(PhaseAwaitingConfirmation)
	return call(ctx)
}

// reconcile re-reads the profile, and optionally the history, into the
// caches captured at action start. A disconnect in the meantime leaves
// those caches orphaned, so a late reconciliation cannot leak into a
// newer session; the epoch fence keeps its events and state changes
// out as well.
func (c *Coordinator) reconcile(ctx context.Context, snap session.Snapshot, withHistory bool) error {
	var firstErr error
	if snap.Profile != nil {
		if err := refreshWithRetry(ctx, c.gw, snap.Profile.Refresh); err != nil {
			logx.Warn("COORD", "Profile refresh failed: ", err.Error())
			firstErr = err
		}
	}
	if withHistory && snap.History != nil {
		if err := refreshWithRetry(ctx, c.gw, snap.History.Refresh); err != nil {
			logx.Warn("COORD", "History refresh failed: ", err.Error())
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.sess.SyncStateFromProfile(snap.Epoch)

	if firstErr != nil {
		return errors.StaleView("view refresh incomplete: " + errors.Reason(firstErr))
	}
	if snap.History != nil {
		c.sess.PublishIfCurrent(snap.Epoch, types.NewViewRefreshed(snap.Account, len(snap.History.View())))
	}
	return nil
}

// refreshWithRetry retries exactly once, and only for transport
// errors. A rejection would just repeat.
func refreshWithRetry(ctx context.Context, gw gateway.Gateway, refresh func(context.Context, gateway.Gateway) error) error {
	err := refresh(ctx, gw)
	if err == nil || !errors.IsCode(err, errors.ErrCodeTransport) {
		return err
	}
	logx.Warn("COORD", "Transport error during refresh, retrying once: ", err.Error())
	return refresh(ctx, gw)
}

func (c *Coordinator) begin() (func(), error) {
	if !c.busy.TryLock() {
		return nil, errors.LocalValidation("another action is already in progress")
	}
	c.setPhase(PhaseValidating)
	return func() {
		c.setPhase(PhaseIdle)
		c.busy.Unlock()
	}, nil
}

func (c *Coordinator) finish(snap session.Snapshot, action string, err error) {
	c.sess.PublishIfCurrent(snap.Epoch, types.NewActionFinished(snap.Account, action, err))
}

func (c *Coordinator) notifyIfCurrent(epoch uint64, message string, severity notify.Severity, duration time.Duration) {
	if c.sess.Epoch() != epoch {
		logx.Debug("COORD", "Dropping stale notice: ", message)
		return
	}
	c.sink.Notify(message, severity, duration)
}

func (c *Coordinator) setPhase(p Phase) {
	c.phase.Store(int32(p))
}

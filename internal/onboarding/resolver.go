package onboarding

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kestrelgames/onboarding-core-go/internal/credential"
	"github.com/kestrelgames/onboarding-core-go/internal/identity"
)

// AdminChecker reports whether an account id is on the administrative
// allow-list. Satisfied by *account.Service.
type AdminChecker interface {
	IsAdmin(identifier string) bool
}

// Resolution is the resolver's verdict: the initial onboarding state and, for
// authenticated resumptions, the account it belongs to.
type Resolution struct {
	State     State
	AccountID string
}

// Resolver reconstructs the correct initial onboarding state from persisted
// data alone. It runs once at process start.
type Resolver struct {
	creds  *credential.Service
	store  *identity.Store
	admins AdminChecker
	logger *zap.SugaredLogger
}

// NewResolver constructs a Resolver.
func NewResolver(creds *credential.Service, store *identity.Store, admins AdminChecker, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{creds: creds, store: store, admins: admins, logger: logger}
}

// Resolve inspects the persisted credential marker and the identity store and
// returns exactly one of PORTAL, SHOWCASE, or COMPLETE:
//
//   - no marker, or a stale one: PORTAL
//   - marker for an account with no record: marker discarded, PORTAL
//   - admin account: COMPLETE
//   - profile with a calibrated archetype: COMPLETE
//   - otherwise: SHOWCASE
//
// Store or slot I/O failures are the only errors; every verdict path is total.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	accountID, err := r.creds.Resolve(ctx)
	if err != nil {
		if errors.Is(err, credential.ErrNoMarker) || errors.Is(err, credential.ErrStaleCredential) {
			return Resolution{State: StatePortal}, nil
		}
		return Resolution{}, err
	}

	rec, err := r.store.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, identity.ErrRecordNotFound) {
			r.logger.Warnw("marker references unknown account, discarding", "account", accountID)
			if clearErr := r.creds.Clear(ctx); clearErr != nil {
				r.logger.Warnw("failed to discard marker", "error", clearErr)
			}
			return Resolution{State: StatePortal}, nil
		}
		return Resolution{}, err
	}

	if r.admins.IsAdmin(accountID) {
		return Resolution{State: StateComplete, AccountID: accountID}, nil
	}
	if rec.Profile.HasIdentity() {
		return Resolution{State: StateComplete, AccountID: accountID}, nil
	}
	return Resolution{State: StateShowcase, AccountID: accountID}, nil
}

package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kestrelgames/onboarding-core-go/internal/account"
	"github.com/kestrelgames/onboarding-core-go/internal/credential"
	"github.com/kestrelgames/onboarding-core-go/internal/identity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/entity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/repo"
)

type fixture struct {
	slot     *repo.MemorySlot
	store    *identity.Store
	creds    *credential.Service
	accounts *account.Service
}

func newFixture(admins ...string) fixture {
	nop := zap.NewNop().Sugar()
	slot := repo.NewMemorySlot()
	store := identity.NewStore(slot, nop)
	creds := credential.NewService(slot, credential.Config{
		Secret: []byte("test-secret"),
		Issuer: "onboarding-core",
		TTL:    time.Hour,
	}, nop)
	accounts := account.NewService(store, account.BcryptHasher{Cost: 4}, admins, nop)
	return fixture{slot: slot, store: store, creds: creds, accounts: accounts}
}

func (f fixture) resolver() *Resolver {
	return NewResolver(f.creds, f.store, f.accounts, zap.NewNop().Sugar())
}

// TestResolveTotality walks every combination of marker presence, record
// presence, admin match, and calibrated archetype, and verifies each lands
// in exactly one of PORTAL, SHOWCASE, COMPLETE.
func TestResolveTotality(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		prepare func(t *testing.T, f fixture)
		want    State
		account string
	}{
		{
			name:    "no marker",
			prepare: func(t *testing.T, f fixture) {},
			want:    StatePortal,
		},
		{
			name: "stale marker",
			prepare: func(t *testing.T, f fixture) {
				require.NoError(t, f.slot.Save(ctx, credential.DefaultSlotKey, []byte("garbage")))
			},
			want: StatePortal,
		},
		{
			name: "marker without record",
			prepare: func(t *testing.T, f fixture) {
				_, err := f.creds.Issue(ctx, "ghost")
				require.NoError(t, err)
			},
			want: StatePortal,
		},
		{
			name: "record without identity",
			prepare: func(t *testing.T, f fixture) {
				_, _, err := f.store.Ensure(ctx, "neon-7", "Neon")
				require.NoError(t, err)
				_, err = f.creds.Issue(ctx, "neon-7")
				require.NoError(t, err)
			},
			want:    StateShowcase,
			account: "neon-7",
		},
		{
			name: "record with calibrated identity",
			prepare: func(t *testing.T, f fixture) {
				_, _, err := f.store.Ensure(ctx, "neon-7", "Neon")
				require.NoError(t, err)
				_, err = f.store.UpdateProfile(ctx, "neon-7", func(p *entity.Profile) {
					p.Archetype = "courier"
				})
				require.NoError(t, err)
				_, err = f.creds.Issue(ctx, "neon-7")
				require.NoError(t, err)
			},
			want:    StateComplete,
			account: "neon-7",
		},
		{
			name: "admin account",
			prepare: func(t *testing.T, f fixture) {
				_, _, err := f.store.Ensure(ctx, "warden-zero", "Warden")
				require.NoError(t, err)
				_, err = f.creds.Issue(ctx, "warden-zero")
				require.NoError(t, err)
			},
			want:    StateComplete,
			account: "warden-zero",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture("warden-zero")
			tc.prepare(t, f)

			res, err := f.resolver().Resolve(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.State)
			assert.Equal(t, tc.account, res.AccountID)
			assert.Contains(t, []State{StatePortal, StateShowcase, StateComplete}, res.State)
		})
	}
}

// TestResolveDiscardsOrphanMarker verifies a marker for an unknown account is
// treated as stale and removed.
func TestResolveDiscardsOrphanMarker(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.creds.Issue(ctx, "ghost")
	require.NoError(t, err)

	res, err := f.resolver().Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, StatePortal, res.State)

	_, err = f.creds.Resolve(ctx)
	require.ErrorIs(t, err, credential.ErrNoMarker)
}

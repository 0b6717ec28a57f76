// Package account handles login: free-form identifiers, the fixed
// administrative allow-list, and optional passphrase verification.
package account

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kestrelgames/onboarding-core-go/internal/identity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/entity"
)

// PassphraseHasher defines minimal hashing interface (abstract so we can swap
// to argon2 later).
type PassphraseHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var (
	// ErrEmptyIdentifier indicates a login with a blank identifier.
	ErrEmptyIdentifier = errors.New("account identifier required")
	// ErrBadPassphrase indicates a passphrase mismatch on a protected account.
	ErrBadPassphrase = errors.New("invalid passphrase")
)

// defaultAdmins is the fixed allow-list of administrative identifiers,
// matched verbatim. AdminAccountsFromEnv can extend it per deployment.
var defaultAdmins = []string{"warden-zero", "nullmaster"}

// AdminAccountsFromEnv returns the allow-list, extended by the comma-separated
// ADMIN_ACCOUNTS env var.
func AdminAccountsFromEnv() []string {
	admins := append([]string(nil), defaultAdmins...)
	if extra := os.Getenv("ADMIN_ACCOUNTS"); extra != "" {
		for _, a := range strings.Split(extra, ",") {
			if a = strings.TrimSpace(a); a != "" {
				admins = append(admins, a)
			}
		}
	}
	return admins
}

// LoginOutcome reports what a successful login established.
type LoginOutcome struct {
	Record  entity.Record
	Created bool
	Admin   bool
}

// Service orchestrates account login against the identity store.
type Service struct {
	store  *identity.Store
	hasher PassphraseHasher
	admins map[string]bool
	logger *zap.SugaredLogger
}

// NewService constructs the account service. A nil hasher defaults to bcrypt.
func NewService(store *identity.Store, hasher PassphraseHasher, admins []string, logger *zap.SugaredLogger) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	set := make(map[string]bool, len(admins))
	for _, a := range admins {
		set[a] = true
	}
	return &Service{store: store, hasher: hasher, admins: set, logger: logger}
}

// IsAdmin reports whether the identifier is on the administrative allow-list.
func (s *Service) IsAdmin(identifier string) bool {
	return s.admins[identifier]
}

// Login resolves an identifier to its identity record, creating one on first
// login. Passphrases are optional: a fresh record with a passphrase stores
// its hash; a protected record verifies it. Admin accounts additionally get
// the privileged profile and the entitlement flag, unconditionally.
func (s *Service) Login(ctx context.Context, identifier, displayName, passphrase string) (LoginOutcome, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return LoginOutcome{}, ErrEmptyIdentifier
	}
	if displayName == "" {
		displayName = identifier
	}

	rec, created, err := s.store.Ensure(ctx, identifier, displayName)
	if err != nil {
		return LoginOutcome{}, err
	}

	switch {
	case rec.PassphraseHash != "":
		if !s.hasher.Verify(rec.PassphraseHash, passphrase) {
			return LoginOutcome{}, ErrBadPassphrase
		}
	case created && passphrase != "":
		hash, err := s.hasher.Hash(passphrase)
		if err != nil {
			return LoginOutcome{}, fmt.Errorf("hash passphrase: %w", err)
		}
		rec, err = s.store.Update(ctx, identifier, func(r *entity.Record) {
			r.PassphraseHash = hash
		})
		if err != nil {
			return LoginOutcome{}, err
		}
	}

	admin := s.IsAdmin(identifier)
	if admin {
		rec, err = s.store.Update(ctx, identifier, func(r *entity.Record) {
			r.Profile.Privileged = true
			r.IsEntitled = true
		})
		if err != nil {
			return LoginOutcome{}, err
		}
	}

	rec, err = s.store.RecordUsage(ctx, identifier)
	if err != nil {
		return LoginOutcome{}, err
	}

	s.logger.Infow("login", "account", identifier, "created", created, "admin", admin)
	return LoginOutcome{Record: rec, Created: created, Admin: admin}, nil
}

// Package identity implements the persisted identity record store: a keyed
// collection of account records serialized as one JSON document into a named
// slot. Every mutation is a whole-document read-modify-write; callers never
// touch the serialized form directly.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kestrelgames/onboarding-core-go/internal/identity/entity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/repo"
	"github.com/kestrelgames/onboarding-core-go/pkg/utilities"
)

// DefaultSlotKey is the fixed store name the record document lives under.
const DefaultSlotKey = "identity_records"

const documentVersion = 1

// ErrRecordNotFound indicates no record exists for the account id.
var ErrRecordNotFound = errors.New("identity record not found")

type document struct {
	Version int                      `json:"version"`
	Records map[string]entity.Record `json:"records"`
}

// Store mediates all access to the persisted identity records.
type Store struct {
	slot   repo.Slot
	key    string
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewStore constructs a Store over a slot backend using the default store key.
func NewStore(slot repo.Slot, logger *zap.SugaredLogger) *Store {
	return &Store{slot: slot, key: DefaultSlotKey, logger: logger, now: time.Now}
}

// load reads the whole document. An empty slot yields an empty store; a
// payload that fails to parse also degrades to an empty store. That trade of
// durability for availability is deliberate: a corrupt document must never
// keep anyone from logging in.
func (s *Store) load(ctx context.Context) (map[string]entity.Record, error) {
	payload, err := s.slot.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, repo.ErrSlotEmpty) {
			return map[string]entity.Record{}, nil
		}
		return nil, fmt.Errorf("load identity store: %w", err)
	}
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil || doc.Records == nil {
		s.logger.Warnw("identity store unreadable, starting empty", "key", s.key, "error", err)
		return map[string]entity.Record{}, nil
	}
	return doc.Records, nil
}

func (s *Store) save(ctx context.Context, records map[string]entity.Record) error {
	payload, err := json.Marshal(document{Version: documentVersion, Records: records})
	if err != nil {
		return fmt.Errorf("encode identity store: %w", err)
	}
	if err := s.slot.Save(ctx, s.key, payload); err != nil {
		return fmt.Errorf("save identity store: %w", err)
	}
	return nil
}

// Get returns the record for an account id.
func (s *Store) Get(ctx context.Context, accountID string) (entity.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return entity.Record{}, err
	}
	rec, ok := records[accountID]
	if !ok {
		return entity.Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, accountID)
	}
	return rec, nil
}

// Ensure returns the record for an account id, creating a fresh one on first
// login. Reports whether the record was created by this call.
func (s *Store) Ensure(ctx context.Context, accountID, displayName string) (entity.Record, bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return entity.Record{}, false, err
	}
	if rec, ok := records[accountID]; ok {
		return rec, false, nil
	}
	now := s.now().UTC()
	rec := entity.Record{
		Profile: entity.Profile{
			AccountID:   accountID,
			DisplayName: displayName,
			Level:       1,
			Credits:     100,
		},
		LastSeen:  now,
		CreatedAt: now,
	}
	records[accountID] = rec
	if err := s.save(ctx, records); err != nil {
		return entity.Record{}, false, err
	}
	s.logger.Infow("identity record created", "account", accountID)
	return rec, true, nil
}

// Update applies mutate to the account's record under a whole-document
// read-modify-write and persists the result.
func (s *Store) Update(ctx context.Context, accountID string, mutate func(*entity.Record)) (entity.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return entity.Record{}, err
	}
	rec, ok := records[accountID]
	if !ok {
		return entity.Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, accountID)
	}
	mutate(&rec)
	records[accountID] = rec
	if err := s.save(ctx, records); err != nil {
		return entity.Record{}, err
	}
	return rec, nil
}

// UpdateProfile applies mutate to the account's profile.
func (s *Store) UpdateProfile(ctx context.Context, accountID string, mutate func(*entity.Profile)) (entity.Record, error) {
	return s.Update(ctx, accountID, func(rec *entity.Record) {
		mutate(&rec.Profile)
	})
}

// RecordUsage bumps the usage counter and last-seen timestamp, stamping the
// event with a snowflake id.
func (s *Store) RecordUsage(ctx context.Context, accountID string) (entity.Record, error) {
	return s.Update(ctx, accountID, func(rec *entity.Record) {
		rec.UsageCount++
		rec.LastSeen = s.now().UTC()
		rec.LastEventID = utilities.NewSnowflakeID()
	})
}

// SetEntitled flips the entitlement flag.
func (s *Store) SetEntitled(ctx context.Context, accountID string, entitled bool) (entity.Record, error) {
	return s.Update(ctx, accountID, func(rec *entity.Record) {
		rec.IsEntitled = entitled
	})
}

// Delete removes a record. Administrative action only; nothing in the
// onboarding flow calls this.
func (s *Store) Delete(ctx context.Context, accountID string) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := records[accountID]; !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, accountID)
	}
	delete(records, accountID)
	if err := s.save(ctx, records); err != nil {
		return err
	}
	s.logger.Infow("identity record deleted", "account", accountID)
	return nil
}

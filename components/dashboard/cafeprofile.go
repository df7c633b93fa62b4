package dashboard

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cafemenu/menudash/pkg/backend"
)

type cafeClient interface {
	Cafe(ctx context.Context) (backend.CafeProfile, error)
	SaveCafe(ctx context.Context, profile backend.CafeProfile) error
}

// DefaultCafeProfile returns the placeholder values shown while the remote
// record is loading, and used as per-field fallbacks when the server record
// has gaps.
func DefaultCafeProfile() backend.CafeProfile {
	return backend.CafeProfile{
		CafeName:    "Café Central",
		PhoneNo:     "5551234567",
		Address:     "123 Main Street, Anytown",
		Description: "Artisanal coffee and fresh pastries in the heart of downtown",
		Logo:        "",
	}
}

// CafeProfileStore owns the café metadata draft. The draft is the owner's
// intent, not a cache of server truth: load failures keep the placeholders
// visible, and save failures never roll back edits.
type CafeProfileStore struct {
	backend  cafeClient
	notifier Notifier
	log      logrus.FieldLogger

	mu      sync.RWMutex
	profile backend.CafeProfile
}

// NewCafeProfileStore builds a store seeded with placeholder defaults.
func NewCafeProfileStore(client cafeClient, notifier Notifier, log logrus.FieldLogger) *CafeProfileStore {
	if log == nil {
		log = discardLogger()
	}
	return &CafeProfileStore{
		backend:  client,
		notifier: normalizeNotifier(notifier),
		log:      log,
		profile:  DefaultCafeProfile(),
	}
}

// Load fetches the café record and overwrites every field, falling back to
// the per-field default when the server value is empty. Failures are logged
// and otherwise swallowed so the placeholder values stay visible instead of
// blanking the form.
func (s *CafeProfileStore) Load(ctx context.Context) {
	remote, err := s.backend.Cafe(ctx)
	if err != nil {
		s.log.WithError(err).Error("fetching cafe record failed")
		return
	}
	defaults := DefaultCafeProfile()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = backend.CafeProfile{
		CafeName:    orDefault(remote.CafeName, defaults.CafeName),
		PhoneNo:     orDefault(remote.PhoneNo, defaults.PhoneNo),
		Address:     orDefault(remote.Address, defaults.Address),
		Description: orDefault(remote.Description, defaults.Description),
		Logo:        remote.Logo,
	}
}

// Save persists the full current draft. On failure the draft is left exactly
// as the owner typed it.
func (s *CafeProfileStore) Save(ctx context.Context) error {
	if err := s.backend.SaveCafe(ctx, s.Profile()); err != nil {
		s.log.WithError(err).Error("saving cafe info failed")
		s.notifier.Error(backend.UserMessage(err))
		return err
	}
	s.notifier.Success("Café information updated successfully!")
	return nil
}

// Profile returns a copy of the current draft.
func (s *CafeProfileStore) Profile() backend.CafeProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Update applies a draft edit. This is the only write entry point besides
// Load, so keystroke-level changes stay serialized with reconciliation.
func (s *CafeProfileStore) Update(mutate func(p *backend.CafeProfile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.profile)
}

// Replace overwrites the whole draft, keeping current values for fields the
// caller leaves empty.
func (s *CafeProfileStore) Replace(p backend.CafeProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = backend.CafeProfile{
		CafeName:    orDefault(p.CafeName, s.profile.CafeName),
		PhoneNo:     orDefault(p.PhoneNo, s.profile.PhoneNo),
		Address:     orDefault(p.Address, s.profile.Address),
		Description: orDefault(p.Description, s.profile.Description),
		Logo:        orDefault(p.Logo, s.profile.Logo),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

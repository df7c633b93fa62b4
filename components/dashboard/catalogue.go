package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cafemenu/menudash/pkg/backend"
)

type menuLister interface {
	MyMenu(ctx context.Context) ([]backend.MenuItem, error)
}

// MenuCatalogueStore owns the item list for the authenticated owner's café.
// Load replaces the whole list atomically; consumers see either the previous
// list, the new list, or an unchanged list plus an error message. Mutation
// reconciliation goes through the unexported entry points below, which only
// the executor calls.
type MenuCatalogueStore struct {
	backend menuLister
	log     logrus.FieldLogger

	mu      sync.RWMutex
	items   []backend.MenuItem
	loading bool
	errMsg  string
}

// NewMenuCatalogueStore builds an empty catalogue.
func NewMenuCatalogueStore(client menuLister, log logrus.FieldLogger) *MenuCatalogueStore {
	if log == nil {
		log = discardLogger()
	}
	return &MenuCatalogueStore{backend: client, log: log}
}

// Load fetches the full item list. Failure leaves the current list untouched
// and records a user-facing message classified by cause.
func (s *MenuCatalogueStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	items, err := s.backend.MyMenu(ctx)
	if err != nil {
		s.log.WithError(err).Error("fetching menu failed")
		s.mu.Lock()
		s.errMsg = classifyFetchError(err)
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.items = items
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

func classifyFetchError(err error) string {
	switch {
	case errors.Is(err, backend.ErrAuthExpired):
		return "Authentication failed. Please log in again."
	case errors.Is(err, backend.ErrNotFound):
		return "No cafe found. Please create a cafe first."
	}
	if msg := backend.ServerMessage(err); msg != "" {
		return msg
	}
	return "Dashboard only for Owners."
}

// Items returns a copy of the current list.
func (s *MenuCatalogueStore) Items() []backend.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]backend.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item looks up a single entry by identity.
func (s *MenuCatalogueStore) Item(id string) (backend.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return backend.MenuItem{}, false
}

// Loading reports whether a fetch is in its window.
func (s *MenuCatalogueStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage is the banner text from the last failed fetch, empty after a
// successful load.
func (s *MenuCatalogueStore) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// removeItem drops exactly the entry matching id. Called only after the
// server confirmed the delete.
func (s *MenuCatalogueStore) removeItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// patchAvailability overwrites an item's availability with the value the
// server returned, which wins over whatever the UI requested.
func (s *MenuCatalogueStore) patchAvailability(id string, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsAvailable = available
			return
		}
	}
}

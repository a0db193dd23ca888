// Package searches manages named, saved attendance queries.
//
// All saved searches live in one JSON list under a fixed key, the same shape
// the web console kept in browser storage, so exports of either are
// interchangeable. There is no schema version.
package searches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hrconsole/internal/attendance"
	"hrconsole/internal/logging"
	"hrconsole/internal/store"
)

// StorageKey is the fixed key holding the saved-search list.
const StorageKey = "hrconsole.savedSearches"

// ErrNotFound is returned when no saved search has the given name.
var ErrNotFound = errors.New("saved search not found")

// SavedSearch is one named query.
type SavedSearch struct {
	Name       string             `json:"name" validate:"required,max=64"`
	SearchTerm string             `json:"searchTerm" validate:"max=256"`
	Filters    attendance.Filters `json:"filters"`
	Timestamp  time.Time          `json:"timestamp"`
}

// Query returns the search as an attendance query.
func (s SavedSearch) Query() attendance.Query {
	return attendance.Query{SearchTerm: s.SearchTerm, Filters: s.Filters}
}

// Manager reads and writes saved searches through a KV store.
type Manager struct {
	kv       store.KV
	validate *validator.Validate
	now      func() time.Time
}

// NewManager creates a manager over kv.
func NewManager(kv store.KV) *Manager {
	return &Manager{
		kv:       kv,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// List returns all saved searches, most recent first.
func (m *Manager) List(ctx context.Context) ([]SavedSearch, error) {
	list, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}

// Get returns the saved search with the given name.
func (m *Manager) Get(ctx context.Context, name string) (SavedSearch, error) {
	list, err := m.load(ctx)
	if err != nil {
		return SavedSearch{}, err
	}
	for _, s := range list {
		if s.Name == name {
			return s, nil
		}
	}
	return SavedSearch{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Save stores q under name, replacing any search with the same name.
func (m *Manager) Save(ctx context.Context, name string, q attendance.Query) (SavedSearch, error) {
	s := SavedSearch{
		Name:       strings.TrimSpace(name),
		SearchTerm: q.SearchTerm,
		Filters:    q.Filters,
		Timestamp:  m.now().UTC(),
	}
	if err := m.validate.Struct(s); err != nil {
		return SavedSearch{}, fmt.Errorf("invalid saved search: %w", err)
	}

	list, err := m.load(ctx)
	if err != nil {
		return SavedSearch{}, err
	}
	replaced := false
	for i := range list {
		if list[i].Name == s.Name {
			list[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, s)
	}
	if err := m.store(ctx, list); err != nil {
		return SavedSearch{}, err
	}

	logging.Searches("saved search %q (replaced=%v)", s.Name, replaced)
	return s, nil
}

// Delete removes the saved search with the given name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	list, err := m.load(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, s := range list {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(list) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := m.store(ctx, kept); err != nil {
		return err
	}
	logging.Searches("deleted search %q", name)
	return nil
}

func (m *Manager) load(ctx context.Context) ([]SavedSearch, error) {
	data, ok, err := m.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved searches: %w", err)
	}
	if !ok || len(data) == 0 {
		return []SavedSearch{}, nil
	}
	var list []SavedSearch
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode saved searches: %w", err)
	}
	return list, nil
}

func (m *Manager) store(ctx context.Context, list []SavedSearch) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode saved searches: %w", err)
	}
	if err := m.kv.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to store saved searches: %w", err)
	}
	return nil
}

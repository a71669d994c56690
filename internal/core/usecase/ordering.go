package usecase

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

type OrderMode string

const (
	OrderByName OrderMode = "name"
	OrderCustom OrderMode = "custom"
)

// OrderingStore holds the live item sequence between ingestion and
// conversion. In name mode the sequence is always sorted; in custom mode
// insertions append and Move splices. Conversion runs read Snapshot, which
// is isolated from later mutations.
type OrderingStore struct {
	mu       sync.Mutex
	mode     OrderMode
	items    []domain.FileItem
	collator *collate.Collator
}

func NewOrderingStore(mode OrderMode) *OrderingStore {
	if mode != OrderCustom {
		mode = OrderByName
	}
	s := &OrderingStore{
		mode:     mode,
		collator: collate.New(language.English),
	}
	return s
}

func (s *OrderingStore) Mode() OrderMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches ordering modes. Switching to name order re-sorts
// immediately; the prior manual order is discarded, not remembered.
func (s *OrderingStore) SetMode(mode OrderMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != OrderByName && mode != OrderCustom {
		return
	}
	s.mode = mode
	if s.mode == OrderByName {
		s.sortLocked()
	}
}

// Add appends items; in name mode the collection re-sorts immediately.
func (s *OrderingStore) Add(items ...domain.FileItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	if s.mode == OrderByName {
		s.sortLocked()
	}
}

// Move splices the element at from out of the sequence and reinserts it at
// to, preserving the relative order of every other element. It is only
// meaningful in custom mode.
func (s *OrderingStore) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) {
		return domain.ErrIndexOutOfRange
	}
	if s.mode != OrderCustom || from == to {
		return nil
	}
	moved := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]domain.FileItem{moved}, s.items[to:]...)...)
	return nil
}

// Remove deletes the item with the given id and releases its byte handle
// so removed previews do not accumulate across add/remove cycles.
func (s *OrderingStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Release()
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (s *OrderingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns a copy of the current sequence. A conversion run
// captures it once at start; reordering or removal afterwards must not
// affect the in-flight run.
func (s *OrderingStore) Snapshot() []domain.FileItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FileItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *OrderingStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.collator.CompareString(s.items[i].Name, s.items[j].Name) < 0
	})
}

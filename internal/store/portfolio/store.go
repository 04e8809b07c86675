// Package portfolio caches portfolio items and exposes featured and
// filtered views over them.
package portfolio

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/pkg/logger"
)

// Store is the portfolio domain store.
type Store struct {
	client *backend.Client
	log    *logger.Logger

	mu               sync.RWMutex
	items            []entity.PortfolioItem
	current          *entity.PortfolioItem
	selectedCategory int // 0 means no filter
	err              string
}

// New creates the store.
func New(client *backend.Client, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{client: client, log: log}
}

// FetchItems replaces the item cache from GET /portfolio/.
func (s *Store) FetchItems(ctx context.Context) {
	items, err := backend.GetList[entity.PortfolioItem](ctx, s.client, "/portfolio/")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch portfolio items")
		s.err = "Failed to fetch portfolio items"
		s.items = []entity.PortfolioItem{}
		return
	}
	s.err = ""
	s.items = items
}

// ItemDetails fetches one portfolio item and keeps it as the current one.
func (s *Store) ItemDetails(ctx context.Context, id int) (*entity.PortfolioItem, error) {
	var item entity.PortfolioItem
	if err := s.client.Get(ctx, fmt.Sprintf("/portfolio/%d/", id), &item); err != nil {
		s.mu.Lock()
		s.err = "Failed to fetch portfolio item details"
		s.mu.Unlock()
		s.log.Error().Err(err).Int("id", id).Msg("fetch portfolio item details")
		return nil, err
	}
	s.mu.Lock()
	s.err = ""
	s.current = &item
	s.mu.Unlock()
	return &item, nil
}

// Items returns the cached items.
func (s *Store) Items() []entity.PortfolioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Current returns the last fetched item detail, or nil.
func (s *Store) Current() *entity.PortfolioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// FeaturedItems returns items that are both featured and active.
func (s *Store) FeaturedItems() []entity.PortfolioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PortfolioItem, 0, len(s.items))
	for _, it := range s.items {
		if it.IsFeatured && it.IsActive {
			out = append(out, it)
		}
	}
	return out
}

// FilteredItems returns active items, optionally narrowed to the
// selected category, ordered by explicit order then newest completion
// date first.
func (s *Store) FilteredItems() []entity.PortfolioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.PortfolioItem, 0, len(s.items))
	for _, it := range s.items {
		if !it.IsActive {
			continue
		}
		if s.selectedCategory > 0 && it.ServiceCategoryID != s.selectedCategory {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		// ISO dates compare correctly as strings
		return out[i].CompletionDate > out[j].CompletionDate
	})
	return out
}

// Categories returns the unique service categories embedded in the
// cached items, in first-seen order.
func (s *Store) Categories() []entity.ServiceCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[int]bool{}
	out := []entity.ServiceCategory{}
	for _, it := range s.items {
		if it.ServiceCategory == nil || seen[it.ServiceCategory.ID] {
			continue
		}
		seen[it.ServiceCategory.ID] = true
		out = append(out, *it.ServiceCategory)
	}
	return out
}

// SetSelectedCategory sets the category filter (0 clears it).
func (s *Store) SetSelectedCategory(categoryID int) {
	s.mu.Lock()
	s.selectedCategory = categoryID
	s.mu.Unlock()
}

// ClearFilters resets the category filter.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.selectedCategory = 0
	s.mu.Unlock()
}

// Error returns the store's last error message, or "".
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ClearError resets the error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

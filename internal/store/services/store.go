// Package services caches the service catalog fetched from the backend
// and exposes filtered views over it.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/pkg/logger"
)

// Store is the services domain store. Caches are replaced wholesale on
// each successful fetch.
type Store struct {
	client *backend.Client
	log    *logger.Logger

	mu               sync.RWMutex
	categories       []entity.ServiceCategory
	services         []entity.Service
	current          *entity.Service
	searchQuery      string
	selectedCategory int // 0 means no category filter
	err              string
}

// New creates the store.
func New(client *backend.Client, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{client: client, log: log}
}

// FetchCategories replaces the category cache from GET /services/categories/.
func (s *Store) FetchCategories(ctx context.Context) {
	items, err := backend.GetList[entity.ServiceCategory](ctx, s.client, "/services/categories/")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch categories")
		s.err = "Failed to fetch categories"
		s.categories = []entity.ServiceCategory{}
		return
	}
	s.err = ""
	s.categories = items
}

// categoryDetail is the by-category response: the category with its
// services embedded.
type categoryDetail struct {
	entity.ServiceCategory
	Services []entity.Service `json:"services"`
}

// FetchServices replaces the services cache. With a category id the
// backend returns the category with its services embedded; otherwise
// the full list.
func (s *Store) FetchServices(ctx context.Context, categoryID int) {
	var (
		items []entity.Service
		err   error
	)
	if categoryID > 0 {
		var detail categoryDetail
		err = s.client.Get(ctx, fmt.Sprintf("/services/categories/%d/", categoryID), &detail)
		items = detail.Services
	} else {
		items, err = backend.GetList[entity.Service](ctx, s.client, "/services/")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch services")
		s.err = "Failed to fetch services"
		s.services = []entity.Service{}
		return
	}
	if items == nil {
		items = []entity.Service{}
	}
	s.err = ""
	s.services = items
}

// ServiceDetails fetches one service and keeps it as the current one.
func (s *Store) ServiceDetails(ctx context.Context, id int) (*entity.Service, error) {
	var svc entity.Service
	if err := s.client.Get(ctx, fmt.Sprintf("/services/%d/", id), &svc); err != nil {
		s.mu.Lock()
		s.err = "Failed to fetch service details"
		s.mu.Unlock()
		s.log.Error().Err(err).Int("id", id).Msg("fetch service details")
		return nil, err
	}
	s.mu.Lock()
	s.err = ""
	s.current = &svc
	s.mu.Unlock()
	return &svc, nil
}

// Categories returns the cached categories.
func (s *Store) Categories() []entity.ServiceCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// ActiveCategories returns only the active cached categories.
func (s *Store) ActiveCategories() []entity.ServiceCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ServiceCategory, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// Services returns the cached services.
func (s *Store) Services() []entity.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// Current returns the last fetched service detail, or nil.
func (s *Store) Current() *entity.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// FilteredServices applies the selected category and the search query
// (case-insensitive over title and description) to the cache.
func (s *Store) FilteredServices() []entity.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Service, 0, len(s.services))
	query := strings.ToLower(s.searchQuery)
	for _, svc := range s.services {
		if s.selectedCategory > 0 && svc.CategoryID != s.selectedCategory {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(svc.Title), query) &&
			!strings.Contains(strings.ToLower(svc.Description), query) {
			continue
		}
		out = append(out, svc)
	}
	return out
}

// SetSearchQuery sets the free-text filter.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = query
	s.mu.Unlock()
}

// SetSelectedCategory sets the category filter (0 clears it).
func (s *Store) SetSelectedCategory(categoryID int) {
	s.mu.Lock()
	s.selectedCategory = categoryID
	s.mu.Unlock()
}

// ClearFilters resets search query and category filter.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.searchQuery = ""
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

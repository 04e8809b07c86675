package portfolio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/storage"
	"github.com/khadamat/webgate/internal/store/portfolio"
	"github.com/khadamat/webgate/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixedLocale struct{}

func (fixedLocale) Language() string { return "en" }

func newStore(t *testing.T, handler http.HandlerFunc) *portfolio.Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.New(backend.Config{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		Locale:  fixedLocale{},
		State:   storage.NewMemStore(),
		Logger:  logger.Nop(),
	})
	return portfolio.New(client, logger.Nop())
}

// Items are deliberately out of display order.
const itemsJSON = `[
	{"id": 1, "title": "Old shop", "service_category": {"id": 2, "name": "Development"},
	 "service_category_id": 2, "completion_date": "2023-01-10", "order": 2, "is_active": true},
	{"id": 2, "title": "Brand refresh", "service_category": {"id": 1, "name": "Design"},
	 "service_category_id": 1, "completion_date": "2024-06-01", "order": 1,
	 "is_featured": true, "is_active": true},
	{"id": 3, "title": "New shop", "service_category": {"id": 2, "name": "Development"},
	 "service_category_id": 2, "completion_date": "2024-02-20", "order": 2, "is_active": true},
	{"id": 4, "title": "Hidden", "service_category": {"id": 1, "name": "Design"},
	 "service_category_id": 1, "completion_date": "2024-09-01", "order": 0,
	 "is_featured": true, "is_active": false}
]`

func itemsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/portfolio/":
		w.Write([]byte(itemsJSON))
	case "/portfolio/2/":
		w.Write([]byte(`{"id": 2, "title": "Brand refresh", "is_active": true}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func fetched(t *testing.T) *portfolio.Store {
	t.Helper()
	s := newStore(t, itemsHandler)
	s.FetchItems(context.Background())
	require.Len(t, s.Items(), 4)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Derived views
// ──────────────────────────────────────────────────────────────────────────────

func TestFeaturedItems_RequiresFeaturedAndActive(t *testing.T) {
	s := fetched(t)

	featured := s.FeaturedItems()

	require.Len(t, featured, 1, "inactive items never surface, featured or not")
	assert.Equal(t, "Brand refresh", featured[0].Title)
}

func TestFilteredItems_OrderThenNewestCompletionFirst(t *testing.T) {
	s := fetched(t)

	list := s.FilteredItems()

	require.Len(t, list, 3, "inactive items are excluded")
	assert.Equal(t, []int{2, 3, 1}, []int{list[0].ID, list[1].ID, list[2].ID},
		"explicit order wins, completion date breaks ties newest first")
}

func TestFilteredItems_ByCategory(t *testing.T) {
	s := fetched(t)

	s.SetSelectedCategory(2)

	list := s.FilteredItems()
	require.Len(t, list, 2)
	assert.Equal(t, "New shop", list[0].Title)

	s.ClearFilters()
	assert.Len(t, s.FilteredItems(), 3)
}

func TestCategories_UniqueInFirstSeenOrder(t *testing.T) {
	s := fetched(t)

	cats := s.Categories()

	require.Len(t, cats, 2)
	assert.Equal(t, "Development", cats[0].Name, "order follows the item list, not the ids")
	assert.Equal(t, "Design", cats[1].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fetching
// ──────────────────────────────────────────────────────────────────────────────

func TestItemDetails_SetsCurrent(t *testing.T) {
	s := newStore(t, itemsHandler)

	item, err := s.ItemDetails(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Brand refresh", item.Title)
	assert.Equal(t, item, s.Current())
}

func TestFetchItems_FailureYieldsMessageAndEmptyCache(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	s.FetchItems(context.Background())

	assert.Equal(t, "Failed to fetch portfolio items", s.Error())
	assert.Empty(t, s.Items())
}

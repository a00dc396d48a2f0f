package application

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/infrastructure/config"
	"storefront-go/presentation"
)

type fakeAPI struct {
	mu         sync.Mutex
	categories []int64
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/product", func(w http.ResponseWriter, r *http.Request) {
		var q struct {
			Category int64 `json:"category"`
			PageNum  int   `json:"page_num"`
		}
		_ = json.NewDecoder(r.Body).Decode(&q)
		f.mu.Lock()
		f.categories = append(f.categories, q.Category)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"list_preview_products":[{"id":1,"title":"Lamp","price":{"base_cost":100,"total_cost":80,"discount":20}}],"max_count_pages":2}`)
	})
	mux.HandleFunc("GET /api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	return mux
}

type harness struct {
	api      *fakeAPI
	server   *httptest.Server
	history  *router.MemoryHistory
	surfaces map[string]*presentation.MemorySurface
	app      *Storefront
}

func newHarness(t *testing.T, start string) *harness {
	t.Helper()

	h := &harness{
		api:      &fakeAPI{},
		history:  router.NewMemoryHistory(start),
		surfaces: make(map[string]*presentation.MemorySurface),
	}
	h.server = httptest.NewServer(h.api.handler())
	t.Cleanup(h.server.Close)

	settings := config.Default()
	settings.API.BaseURL = h.server.URL
	settings.API.HealthInterval = config.Duration{}

	app, err := New(&Config{
		Settings: settings,
		History:  h.history,
		Surfaces: func(view string) (presentation.Surface, error) {
			s := presentation.NewMemorySurface()
			h.surfaces[view] = s
			return s, nil
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Go:     func(fn func()) { fn() },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.app = app
	t.Cleanup(app.Stop)
	return h
}

func (h *harness) active(t *testing.T, name string) {
	t.Helper()
	view, ok := h.app.View(name)
	if !ok {
		t.Fatalf("no view %q", name)
	}
	if !h.app.Router().IsActive(view) {
		t.Errorf("active view is not %q (location %q)", name, h.history.Location())
	}
}

func TestStorefront_StartShowsLocation(t *testing.T) {
	h := newHarness(t, "/items/2")

	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	h.active(t, ViewProducts)
	if got := h.history.Writes(); got != 0 {
		t.Errorf("Start wrote %d history entries, want 0", got)
	}

	r, ok := h.surfaces[ViewProducts].Last()
	if !ok {
		t.Fatal("products not rendered")
	}
	data := r.Data.(presentation.ProductsData)
	if len(data.Products) != 1 || data.Products[0].Price.Total != 80 {
		t.Errorf("products = %+v", data.Products)
	}
	if len(h.api.categories) != 1 || h.api.categories[0] != 2 {
		t.Errorf("categories requested = %v, want [2]", h.api.categories)
	}

	hr, ok := h.surfaces[ViewHeader].Last()
	if !ok {
		t.Fatal("header not rendered")
	}
	if hr.Data.(presentation.HeaderData).LoggedIn {
		t.Error("header shows a session for a 401 cart")
	}
}

func TestStorefront_CartRequiresLogin(t *testing.T) {
	h := newHarness(t, "/")
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := h.app.Router().Open("/cart"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	h.active(t, ViewLogin)
	if got := h.history.Location(); got != "/login" {
		t.Errorf("Location() = %q, want /login", got)
	}
}

func TestStorefront_OfflineRedirect(t *testing.T) {
	h := newHarness(t, "/")
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	h.server.Close()

	if err := h.app.Router().Open("/items/1"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	h.active(t, ViewOffline)
	entries := h.history.Entries()
	if len(entries) != 2 || entries[1] != "/offline" {
		t.Errorf("entries = %v, want [/ /offline]", entries)
	}

	h.surfaces[ViewOffline].Trigger(event.Action{Name: "retry"})
	r, _ := h.surfaces[ViewOffline].Last()
	if !r.Data.(presentation.OfflineData).StillOffline {
		t.Error("retry left the offline page without a reachable API")
	}
}

func TestStorefront_WithoutAPI(t *testing.T) {
	settings := config.Default()
	settings.API.BaseURL = ""
	surfaces := make(map[string]*presentation.MemorySurface)
	history := router.NewMemoryHistory("/items/1")

	app, err := New(&Config{
		Settings: settings,
		History:  history,
		Surfaces: func(view string) (presentation.Surface, error) {
			s := presentation.NewMemorySurface()
			surfaces[view] = s
			return s, nil
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Go:     func(fn func()) { fn() },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Stop()

	if err := app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if want := []string{"/offline"}; !reflect.DeepEqual(history.Entries(), want) {
		t.Errorf("Entries() = %v, want %v", history.Entries(), want)
	}
	offline, _ := app.View(ViewOffline)
	if !app.Router().IsActive(offline) {
		t.Errorf("Active() = %v, want the offline view", app.Router().Active())
	}

	surfaces[ViewOffline].Trigger(event.Action{Name: "retry"})
	r, ok := surfaces[ViewOffline].Last()
	if !ok || !r.Data.(presentation.OfflineData).StillOffline {
		t.Error("retry without an API should stay on the offline page")
	}
}

func TestStorefront_BackAndForward(t *testing.T) {
	h := newHarness(t, "/")
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_ = h.app.Router().Open("/items/3")
	_ = h.app.Router().Open("/login")
	writes := h.history.Writes()

	if err := h.history.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	h.active(t, ViewProducts)
	if h.history.Writes() != writes {
		t.Error("Back wrote a history entry")
	}
}

func TestStorefront_LinkClick(t *testing.T) {
	h := newHarness(t, "/")
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	handled, err := h.history.Click(router.LinkClick{Href: "/login"})
	if err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if !handled {
		t.Fatal("in-app link not intercepted")
	}
	h.active(t, ViewLogin)

	handled, _ = h.history.Click(router.LinkClick{Href: "https://elsewhere.example/login"})
	if handled {
		t.Error("external link intercepted")
	}
}

func TestStorefront_Stop(t *testing.T) {
	h := newHarness(t, "/")
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	h.app.Stop()
	h.app.Stop()

	if n := h.history.Listeners(); n != 0 {
		t.Errorf("Listeners() = %d after Stop, want 0", n)
	}
	if len(h.surfaces) != 8 {
		t.Errorf("surfaces = %d, want 8", len(h.surfaces))
	}
	for name, s := range h.surfaces {
		if n := s.Releases(); n != 1 {
			t.Errorf("%s surface Releases() = %d, want 1", name, n)
		}
	}
	if err := h.app.Start(); err != nil {
		t.Errorf("Start() after Stop error = %v", err)
	}
	if n := h.history.Listeners(); n != 0 {
		t.Errorf("Start after Stop listened again")
	}
}

func TestNew_RouteTableErrors(t *testing.T) {
	tests := []struct {
		name   string
		routes string
		check  func(error) bool
	}{
		{"unknown view", "routes:\n  - pattern: /wishlist\n    view: wishlist\n", func(err error) bool {
			var uv *router.UnknownViewError
			return errors.As(err, &uv) && uv.View == "wishlist"
		}},
		{"bad pattern", "routes:\n  - pattern: /items/(?P<id\n    view: products\n", func(err error) bool {
			var ce *router.ConfigError
			return errors.As(err, &ce)
		}},
		{"empty", "routes: []\n", func(err error) bool { return err != nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&Config{
				Routes: []byte(tt.routes),
				Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			if err == nil || !tt.check(err) {
				t.Errorf("New() error = %v", err)
			}
		})
	}
}

func TestNew_SurfaceError(t *testing.T) {
	want := errors.New("no element")
	_, err := New(&Config{
		Surfaces: func(string) (presentation.Surface, error) { return nil, want },
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if !errors.Is(err, want) {
		t.Errorf("New() error = %v, want %v", err, want)
	}
}


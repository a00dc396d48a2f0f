package devserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"storefront-go/core/router"
)

func newTestServer(t *testing.T, apiURL string) *httptest.Server {
	t.Helper()

	s, err := New(&Config{
		Static: fstest.MapFS{
			"storefront.wasm": {Data: []byte("\x00asm")},
			"wasm_exec.js":    {Data: []byte("// go runtime")},
		},
		Shell: fstest.MapFS{
			"index.html": {Data: []byte("<html>shell</html>")},
		},
		Routes: []router.RouteSpec{
			{Pattern: "/", View: "products"},
			{Pattern: `/item(/(?P<productID>[0-9]*))?`, View: "product"},
			{Pattern: "/cart", View: "cart"},
		},
		APIURL: apiURL,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp.Header
}

func TestServer_Fallback(t *testing.T) {
	srv := newTestServer(t, "")

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "shell"},
		{"/item/42", http.StatusOK, "shell"},
		{"/cart?from=header", http.StatusOK, "shell"},
		{"/wasm_exec.js", http.StatusOK, "go runtime"},
		{"/nowhere", http.StatusNotFound, "404"},
		{"/cart/extra", http.StatusNotFound, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body, _ := get(t, srv.URL+tt.path)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if !strings.Contains(body, tt.body) {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestServer_WasmContentType(t *testing.T) {
	srv := newTestServer(t, "")

	_, _, header := get(t, srv.URL+"/storefront.wasm")
	if ct := header.Get("Content-Type"); ct != "application/wasm" {
		t.Errorf("Content-Type = %q, want application/wasm", ct)
	}
}

func TestServer_RejectsWrites(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Post(srv.URL+"/cart", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_Proxy(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "api:"+r.URL.Path)
	}))
	defer api.Close()

	srv := newTestServer(t, api.URL)

	status, body, _ := get(t, srv.URL+"/api/v1/cart")
	if status != http.StatusOK || body != "api:/api/v1/cart" {
		t.Errorf("proxy = %d %q", status, body)
	}
}

func TestServer_ProxyDown(t *testing.T) {
	api := httptest.NewServer(http.NotFoundHandler())
	url := api.URL
	api.Close()

	srv := newTestServer(t, url)

	status, _, _ := get(t, srv.URL+"/api/v1/cart")
	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", status)
	}
}

func TestNew_Errors(t *testing.T) {
	shell := fstest.MapFS{"index.html": {Data: []byte("x")}}

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"no shell", &Config{}},
		{"bad route", &Config{Shell: shell, Routes: []router.RouteSpec{{Pattern: "(", View: "x"}}}},
		{"bad api url", &Config{Shell: shell, APIURL: "localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}

// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package embedding

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestSource(t *testing.T) {
	tests := []struct {
		name      string
		src       Source
		empty     bool
		cacheable bool
		refPrefix string
	}{
		{"url", URLSource(" https://img/a.jpg "), false, true, "https://img/a.jpg"},
		{"empty", URLSource("  "), true, false, ""},
		{"bytes", BytesSource([]byte{0xff, 0xd8, 0xff, 0xe0}, "image/jpeg"), false, false, "data:image/jpeg;base64,"},
		{"bytes sniffed", BytesSource([]byte("\x89PNG\r\n\x1a\n0000"), ""), false, false, "data:image/png;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.src.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
			if got := tt.src.Cacheable(); got != tt.cacheable {
				t.Errorf("Cacheable() = %v, want %v", got, tt.cacheable)
			}
			if got := tt.src.Reference(); !strings.HasPrefix(got, tt.refPrefix) {
				t.Errorf("Reference() = %q, want prefix %q", got, tt.refPrefix)
			}
		})
	}
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientEmbed(t *testing.T) {
	var gotAuth, gotImage string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		var req embedRequest
		_ = json.Unmarshal(body, &req)
		gotImage = req.Image
		_, _ = w.Write([]byte(`{"embedding":[0.5,0.25,-1]}`))
	})

	c, err := NewClient(ClientConfig{URL: srv.URL, APIKey: "k", Dimension: 3}, srv.Client(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	vec, err := c.Embed(context.Background(), URLSource("https://img/a.jpg"))
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.5 || vec[2] != -1 {
		t.Errorf("Embed() = %v, want [0.5 0.25 -1]", vec)
	}
	if gotAuth != "Bearer k" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer k")
	}
	if gotImage != "https://img/a.jpg" {
		t.Errorf("image = %q, want the URL", gotImage)
	}
}

func TestClientEmbedErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unsupported image", http.StatusBadRequest, `{"error":"cannot decode"}`, ErrUnsupportedImage},
		{"wrong dimension", http.StatusOK, `{"embedding":[1,2]}`, ErrDimension},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, nil},
		{"empty vector", http.StatusOK, `{"embedding":[]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			c, err := NewClient(ClientConfig{URL: srv.URL, Dimension: 3}, srv.Client(), zerolog.Nop())
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}

			_, err = c.Embed(context.Background(), URLSource("https://img/x.jpg"))
			if err == nil {
				t.Fatal("Embed() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Embed() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientEmptySource(t *testing.T) {
	c, err := NewClient(ClientConfig{URL: "http://unused"}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Embed(context.Background(), Source{}); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Embed(empty) error = %v, want ErrEmptySource", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(ClientConfig{}, nil, zerolog.Nop()); err == nil {
		t.Error("NewClient() error = nil, want error for missing url")
	}
}

func TestClientHonoursDeadline(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`{"embedding":[1]}`))
	})
	c, err := NewClient(ClientConfig{URL: srv.URL}, srv.Client(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Embed(ctx, URLSource("https://img/slow.jpg")); err == nil {
		t.Error("Embed() error = nil, want deadline error")
	}
}

// mapCache is a synchronous Cache for tests.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]float32
	name string
}

func newMapCache(name string) *mapCache {
	return &mapCache{data: make(map[string][]float32), name: name}
}

func (m *mapCache) Name() string { return m.name }

func (m *mapCache) Get(_ context.Context, key string) ([]float32, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, vec []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = vec
	return nil
}

type countingEmbedder struct {
	calls atomic.Int32
}

func (c *countingEmbedder) Embed(_ context.Context, src Source) ([]float32, error) {
	c.calls.Add(1)
	if src.Empty() {
		return nil, ErrEmptySource
	}
	return []float32{1, 2, 3}, nil
}

func TestCachedEmbedder(t *testing.T) {
	next := &countingEmbedder{}
	cache := newMapCache("map")
	e := NewCachedEmbedder(next, cache, "clip", zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.Embed(ctx, URLSource("https://img/a.jpg")); err != nil {
			t.Fatalf("Embed: %v", err)
		}
	}
	if got := next.calls.Load(); got != 1 {
		t.Errorf("backend calls for repeated url = %d, want 1", got)
	}
	if _, ok := cache.data[CacheKey("clip", "https://img/a.jpg")]; !ok {
		t.Error("cache missing model-namespaced key")
	}

	for i := 0; i < 2; i++ {
		if _, err := e.Embed(ctx, BytesSource([]byte{1, 2, 3}, "image/jpeg")); err != nil {
			t.Fatalf("Embed(bytes): %v", err)
		}
	}
	if got := next.calls.Load(); got != 3 {
		t.Errorf("backend calls after uploads = %d, want 3 (uploads are not cached)", got)
	}
}

func TestTieredPromotes(t *testing.T) {
	fast, slow := newMapCache("fast"), newMapCache("slow")
	tiered := NewTiered(fast, slow)
	ctx := context.Background()

	_ = slow.Set(ctx, "k", []float32{4, 5})

	vec, ok, err := tiered.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v; want hit", vec, ok, err)
	}
	if _, ok := fast.data["k"]; !ok {
		t.Error("hit in slow tier was not promoted to fast tier")
	}

	if _, ok, _ := tiered.Get(ctx, "missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}

	if err := tiered.Set(ctx, "n", []float32{1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := slow.data["n"]; !ok {
		t.Error("Set did not reach slow tier")
	}
}

func TestBadgerCache(t *testing.T) {
	bc, err := OpenBadgerCache("", time.Hour)
	if err != nil {
		t.Fatalf("OpenBadgerCache: %v", err)
	}
	defer bc.Close()
	ctx := context.Background()

	if _, ok, err := bc.Get(ctx, "absent"); ok || err != nil {
		t.Errorf("Get(absent) = %v, %v; want miss without error", ok, err)
	}

	want := []float32{0.1, -2.5, 3e-7}
	if err := bc.Set(ctx, "k", want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := bc.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = %v, %v", ok, err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := bc.RunGC(0.5); err != nil {
		t.Errorf("RunGC() on in-memory store error = %v, want nil", err)
	}
}

func TestDecodeVectorCorrupt(t *testing.T) {
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("decodeVector(3 bytes) error = nil, want error")
	}
}

func TestMemoryCacheSet(t *testing.T) {
	mc, err := NewMemoryCache(1<<20, time.Minute)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	defer mc.Close()
	ctx := context.Background()

	if _, ok, err := mc.Get(ctx, "absent"); ok || err != nil {
		t.Errorf("Get(absent) = %v, %v; want miss without error", ok, err)
	}
	if err := mc.Set(ctx, "k", []float32{1, 2}); err != nil {
		t.Errorf("Set() error = %v", err)
	}
}

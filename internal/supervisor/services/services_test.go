// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/outfitter/internal/metrics"
)

// mockHTTPServer blocks in ListenAndServe until Shutdown is called, unless
// listenErr is set.
type mockHTTPServer struct {
	listenErr     error
	shutdownErr   error
	shutdownCount atomic.Int32
	started       chan struct{}
	stopCh        chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	select {
	case m.started <- struct{}{}:
	default:
	}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopCh
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	if m.shutdownCount.Add(1) == 1 {
		close(m.stopCh)
	}
	return m.shutdownErr
}

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*CacheGCService)(nil)
)

func TestHTTPServerService(t *testing.T) {
	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		mock := newMockHTTPServer()
		svc := NewHTTPServerService(mock, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		<-mock.started
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
		if mock.shutdownCount.Load() != 1 {
			t.Errorf("Shutdown called %d times, want 1", mock.shutdownCount.Load())
		}
	})

	t.Run("listener failure is returned", func(t *testing.T) {
		mock := newMockHTTPServer()
		mock.listenErr = errors.New("address in use")
		svc := NewHTTPServerService(mock, time.Second)

		err := svc.Serve(context.Background())
		if err == nil || !errors.Is(err, mock.listenErr) {
			t.Errorf("Serve() = %v, want wrapped listen error", err)
		}
	})

	t.Run("defaults and name", func(t *testing.T) {
		svc := NewHTTPServerService(newMockHTTPServer(), 0)
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
		}
		if svc.String() != "http-server" {
			t.Errorf("String() = %q", svc.String())
		}
	})
}

type fakeGC struct {
	results []int
	err     error
	calls   atomic.Int32
}

func (f *fakeGC) RunGC(float64) (int, error) {
	n := int(f.calls.Add(1)) - 1
	if f.err != nil {
		return 0, f.err
	}
	if n < len(f.results) {
		return f.results[n], nil
	}
	return 0, nil
}

func TestCacheGCService(t *testing.T) {
	tests := []struct {
		name   string
		gc     *fakeGC
		result string
	}{
		{"rewritten", &fakeGC{results: []int{2}}, "rewritten"},
		{"noop", &fakeGC{}, "noop"},
		{"error", &fakeGC{err: errors.New("disk full")}, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.EmbeddingCacheGCRuns.WithLabelValues(tt.result))

			svc := NewCacheGCService(tt.gc, time.Hour, 0.5)
			svc.runOnce()

			after := testutil.ToFloat64(metrics.EmbeddingCacheGCRuns.WithLabelValues(tt.result))
			if after-before != 1 {
				t.Errorf("%s counter grew by %v, want 1", tt.result, after-before)
			}
		})
	}
}

func TestCacheGCServiceTicksUntilCanceled(t *testing.T) {
	gc := &fakeGC{}
	svc := NewCacheGCService(gc, 5*time.Millisecond, 0.5)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if gc.calls.Load() == 0 {
		t.Error("GC never ran")
	}
}

func TestNewCacheGCServiceDefaults(t *testing.T) {
	svc := NewCacheGCService(&fakeGC{}, 0, 1.5)
	if svc.interval != 10*time.Minute || svc.discardRatio != 0.5 {
		t.Errorf("interval = %v, ratio = %v", svc.interval, svc.discardRatio)
	}
	if svc.String() != "embedding-cache-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}

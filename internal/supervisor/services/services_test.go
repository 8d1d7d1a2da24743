// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type fakeServer struct {
	listenErr    error
	done         chan struct{}
	shutdownSeen atomic.Bool
}

func newFakeServer(listenErr error) *fakeServer {
	return &fakeServer{listenErr: listenErr, done: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.done
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(_ context.Context) error {
	f.shutdownSeen.Store(true)
	close(f.done)
	return nil
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	server := newFakeServer(nil)
	svc := NewHTTPService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- svc.Serve(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if !server.shutdownSeen.Load() {
		t.Error("Shutdown was not called")
	}
}

func TestHTTPServiceStartupFailure(t *testing.T) {
	listenErr := errors.New("address already in use")
	svc := NewHTTPService(newFakeServer(listenErr), time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, listenErr) {
		t.Errorf("Serve returned %v, want wrapped listen error", err)
	}
}

func TestHTTPServiceDefaultsShutdownTimeout(t *testing.T) {
	svc := NewHTTPService(newFakeServer(nil), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %s, want 10s", svc.shutdownTimeout)
	}
}

type fakeRunner struct {
	err error
}

func (f *fakeRunner) Run(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestSyncServiceDelegates(t *testing.T) {
	runErr := errors.New("feed loop crashed")
	svc := NewSyncService(&fakeRunner{err: runErr})

	if err := svc.Serve(context.Background()); !errors.Is(err, runErr) {
		t.Errorf("Serve returned %v, want run error", err)
	}
}

func TestSyncServiceStopsOnCancel(t *testing.T) {
	svc := NewSyncService(&fakeRunner{})

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- svc.Serve(ctx) }()
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServiceNames(t *testing.T) {
	if got := NewHTTPService(newFakeServer(nil), 0).String(); got != "http-server" {
		t.Errorf("HTTPService name = %q", got)
	}
	if got := NewSyncService(&fakeRunner{}).String(); got != "sync-refresher" {
		t.Errorf("SyncService name = %q", got)
	}
}

// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// mockServer scripts ListenAndServe/Shutdown behavior.
type mockServer struct {
	serveErr     error
	shutdownErr  error
	shutdownDone chan struct{}
	release      chan struct{}
}

func newMockServer() *mockServer {
	return &mockServer{
		shutdownDone: make(chan struct{}, 1),
		release:      make(chan struct{}),
	}
}

func (m *mockServer) ListenAndServe() error {
	<-m.release
	if m.serveErr != nil {
		return m.serveErr
	}
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(ctx context.Context) error {
	m.shutdownDone <- struct{}{}
	close(m.release)
	return m.shutdownErr
}

func TestServeShutsDownOnContextCancel(t *testing.T) {
	t.Parallel()

	server := newMockServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	select {
	case <-server.shutdownDone:
	default:
		t.Error("Shutdown was not called")
	}
}

func TestServeReturnsServerFailure(t *testing.T) {
	t.Parallel()

	server := newMockServer()
	server.serveErr = errors.New("bind: address already in use")
	close(server.release)

	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.serveErr) {
		t.Errorf("Serve() error = %v, want wrapped bind failure", err)
	}
}

func TestStringIdentifiesService(t *testing.T) {
	t.Parallel()

	svc := NewHTTPServerService(newMockServer(), time.Second)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

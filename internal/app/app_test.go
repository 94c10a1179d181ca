package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/akulagin/clubhouse/internal/config"
	testhelpers "github.com/akulagin/clubhouse/internal/test"
	"github.com/akulagin/clubhouse/internal/worker"
)

func newTestSweeper() *worker.RetentionSweeper {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewRetentionSweeper(&testhelpers.BoardFacadeStub{}, time.Hour, 10*time.Millisecond, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewRetentionSweeperUsesConfig(t *testing.T) {
	sweeper := newRetentionSweeper(workerParams{
		Facade: &ClubFacade{},
		Config: &config.Config{MessageRetention: time.Hour, SweepInterval: time.Minute, SweepBatch: 5},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if sweeper == nil {
		t.Fatal("expected retention sweeper instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	sweeper := newTestSweeper()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Ctx:        context.Background(),
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Sweeper:    sweeper,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not finish in time")
	}
}

func TestRegisterLifecycleSweeperOutlivesStartHook(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	board := &testhelpers.BoardFacadeStub{}
	sweeper := worker.NewRetentionSweeper(board, time.Hour, 10*time.Millisecond, 1, logger)
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Ctx:        context.Background(),
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Sweeper:    sweeper,
		Config:     cfg,
	})

	hook := recorder.Hooks[0]
	// Start hook contexts are cancelled as soon as startup returns;
	// the sweeper must keep running regardless.
	startCtx, cancelStart := context.WithCancel(context.Background())
	if err := hook.OnStart(startCtx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	cancelStart()
	t.Cleanup(func() { _ = hook.OnStop(context.Background()) })

	deadline := time.Now().Add(time.Second)
	for board.PruneCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected a sweep after the start hook returned")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegisterLifecycleServerFailureTriggersShutdown(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	// Address is intentionally unroutable so ListenAndServe fails fast.
	server := &http.Server{Addr: "256.256.256.256:0", Handler: http.NewServeMux()}
	sweeper := newTestSweeper()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Ctx:        context.Background(),
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Sweeper:    sweeper,
		Config:     cfg,
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	t.Cleanup(func() { _ = hook.OnStop(context.Background()) })

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdowner invocation")
	}
}

var _ fx.Lifecycle = (*testhelpers.LifecycleRecorder)(nil)

package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/akulagin/clubhouse/internal/app"
	"github.com/akulagin/clubhouse/internal/config"
	"github.com/akulagin/clubhouse/internal/domain/repository"
	"github.com/akulagin/clubhouse/internal/storage/postgres"
	"github.com/akulagin/clubhouse/internal/test"
	"go.uber.org/fx"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		SessionSecret:   "secret",
		SessionTTL:      time.Hour,
		PasswordDriver:  config.PasswordDriverBcrypt,
		SweepInterval:   time.Millisecond,
		SweepBatch:      1,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	messageRepo := &test.MessageRepositoryStub{}
	secretRepo := &test.SecretRepositoryStub{Secret: "open sesame"}

	var facade *app.ClubFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.MessageRepository(messageRepo)),
			fx.Replace(repository.SecretRepository(secretRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected club facade instance")
	}
}

package infra_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"edupath/internal/config"
	"edupath/internal/infra"
	"edupath/internal/models/db_models"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := infra.OpenDatabase(config.DatabaseConfig{URL: "sqlite:file::memory:?cache=shared", LogLevel: "silent"}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer infra.CloseDatabase(db, zap.NewNop())

	if err := infra.Migrate(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if infra.SupportsVectors(db) {
		t.Fatal("sqlite should not report vector support")
	}
	if !db.Migrator().HasTable(&db_models.AccountQuizHistory{}) {
		t.Fatal("expected history table")
	}
	if db.Migrator().HasTable(&db_models.CollegeEmbedding{}) {
		t.Fatal("embedding table should be skipped on sqlite")
	}
}

func TestNewTTLStore(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := infra.NewTTLStore(ctx, config.RedisConfig{}, zap.NewNop())
	if err != nil || store == nil {
		t.Fatalf("expected memory store, got %v", err)
	}
	_ = closeFn()

	mr := miniredis.RunT(t)
	store, closeFn, err = infra.NewTTLStore(ctx, config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		t.Fatalf("redis store: %v", err)
	}
	defer closeFn()

	if err := store.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("edupath:k") {
		t.Fatal("expected prefixed key")
	}
}

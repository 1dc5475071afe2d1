package database

import (
	"context"
	"path/filepath"
	"testing"

	"worknest_backend/internals/configs"
	"worknest_backend/internals/store"
)

func TestOpenStoreMemory(t *testing.T) {
	st, db, err := OpenStore(context.Background(), &configs.AppConfig{StoreDriver: configs.DriverMemory})
	if err != nil || db != nil {
		t.Fatalf("memory: db=%v err=%v", db, err)
	}
	if _, ok := st.(*store.MemoryStore); !ok {
		t.Fatalf("expected *store.MemoryStore, got %T", st)
	}
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &configs.AppConfig{
		StoreDriver: configs.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "worknest.db"),
	}
	st, db, err := OpenStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer st.Close()
	if db == nil {
		t.Fatalf("relational driver should expose *gorm.DB")
	}
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	if _, _, err := OpenStore(context.Background(), &configs.AppConfig{StoreDriver: "mongo"}); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

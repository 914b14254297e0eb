package storage

import (
	"payroll/internal/config"
	"testing"
)

func testConfig() config.Config {
	return config.Config{StoreType: TypeS3}
}

func TestNewStorageSelectsBackend(t *testing.T) {
	cfg := config.Config{StoreType: "LOCAL", DataDir: t.TempDir()}
	store, err := NewStorage(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*LocalStorage); !ok {
		t.Fatalf("expected *LocalStorage, got %T", store)
	}

	if _, err := NewStorage(config.Config{StoreType: "ftp"}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestIsBlobType(t *testing.T) {
	for _, typ := range []string{"", "local", "S3", "r2"} {
		if !IsBlobType(typ) {
			t.Errorf("expected %q to be a blob type", typ)
		}
	}
	for _, typ := range []string{"sqlite", "postgres", "mysql"} {
		if IsBlobType(typ) {
			t.Errorf("expected %q not to be a blob type", typ)
		}
	}
}

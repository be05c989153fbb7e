package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/FAU-CDI/vobox/pkg/vobj"
	"github.com/google/go-cmp/cmp"
	"github.com/tkw1536/pkglib/iterator"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvStoreDir, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "vobox.yaml")
	if err := os.WriteFile(path, []byte("store:\n  dir: /data\n  backend: leveldb\nmap:\n  limit: 10\nlogging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error %s", err)
	}

	want := &Config{
		Store:   StoreConfig{Dir: "/data", Backend: BackendLevelDB, Enabled: true},
		Map:     MapConfig{Buckets: 127, Limit: 10},
		Logging: LoggingConfig{Level: "debug"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	if level, err := got.Level(); level != slog.LevelDebug || err != nil {
		t.Errorf("Level() = %v, %v", level, err)
	}
}

func TestLoad_Default(t *testing.T) {
	t.Setenv(EnvStoreDir, "")

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) returned error %s", path, err)
		}
		if diff := cmp.Diff(Default(), got); diff != "" {
			t.Errorf("Load(%q) mismatch (-want +got):\n%s", path, diff)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("default config is invalid: %s", err)
		}
	}

	t.Setenv(EnvStoreDir, "/elsewhere")
	if got, _ := Load(""); got.Store.Dir != "/elsewhere" {
		t.Errorf("Load() did not apply %s", EnvStoreDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of broken file did not fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Dir = ""
	cfg.Store.Backend = "tape"
	cfg.Map.Buckets = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	for _, want := range []error{errNoDir, errUnknownBackend, errBuckets, errLevel} {
		if !errors.Is(err, want) {
			t.Errorf("Validate() = %v, does not contain %v", err, want)
		}
	}
}

func TestSave(t *testing.T) {
	t.Setenv(EnvStoreDir, "")

	path := filepath.Join(t.TempDir(), "nested", "vobox.yaml")
	want := Default()
	want.Map.Limit = 99

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() returned error %s", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(Save()) mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenStore(t *testing.T) {
	for _, backend := range []Backend{BackendFile, BackendLevelDB} {
		t.Run(string(backend), func(t *testing.T) {
			cfg := Default()
			cfg.Store.Dir = t.TempDir()
			cfg.Store.Backend = backend

			store, err := cfg.OpenStore()
			if err != nil {
				t.Fatalf("OpenStore() returned error %s", err)
			}
			defer store.Disable()

			rt, err := cfg.Runtime(store, nil)
			if err != nil {
				t.Fatal(err)
			}
			defer rt.Close()

			if _, err := rt.NewInteger(7); err != nil {
				t.Fatalf("NewInteger() returned error %s", err)
			}

			records, err := iterator.Drain(store.Records())
			if err != nil || len(records) != 1 || records[0].Type != string(vobj.KindInteger) || string(records[0].Value) != "7\n" {
				t.Errorf("Records() = %v, %v", records, err)
			}
		})
	}

	cfg := Default()
	cfg.Store.Dir = t.TempDir()
	cfg.Store.Enabled = false
	store, err := cfg.OpenStore()
	if err != nil || store.Enabled() {
		t.Errorf("OpenStore() with disabled store = %v, %v", store.Enabled(), err)
	}
}

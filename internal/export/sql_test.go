package export

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/FAU-CDI/vobox/pkg/vobj"
	_ "github.com/glebarez/go-sqlite"
	"github.com/google/go-cmp/cmp"
)

type row struct {
	Kind   string
	ID     string
	Length sql.NullInt64
	Value  string
}

// newStore creates a store with n integers and one string.
func newStore(t *testing.T, n int) *ostore.Store {
	t.Helper()

	store := ostore.New(t.TempDir())
	if err := store.Enable(); err != nil {
		t.Fatal(err)
	}
	rt, err := vobj.New(vobj.Options{Store: store})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rt.Close() })

	if _, err := rt.NewString("hello"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := rt.NewInteger(int32(-i)); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func readRows(t *testing.T, db *sql.DB) []row {
	t.Helper()

	result, err := db.Query("SELECT kind, id, length, value FROM objects ORDER BY kind, length(id), id")
	if err != nil {
		t.Fatal(err)
	}
	defer result.Close()

	var rows []row
	for result.Next() {
		var r row
		if err := result.Scan(&r.Kind, &r.ID, &r.Length, &r.Value); err != nil {
			t.Fatal(err)
		}
		rows = append(rows, r)
	}
	if err := result.Err(); err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestSQL_Export(t *testing.T) {
	store := newStore(t, 2)
	db := openDB(t)

	exporter := &SQL{DB: db, BatchSize: 1000, MaxQueryVar: 32766}
	if err := exporter.Export(store, nil); err != nil {
		t.Fatalf("Export() returned error %s", err)
	}

	want := []row{
		{Kind: "int", ID: "0x2", Value: "0"},
		{Kind: "int", ID: "0x3", Value: "-1"},
		{Kind: "str", ID: "0x1", Length: sql.NullInt64{Int64: 5, Valid: true}, Value: "hello"},
	}
	if diff := cmp.Diff(want, readRows(t, db)); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}

	// exporting again replaces the table
	if err := exporter.Export(store, nil); err != nil {
		t.Fatalf("second Export() returned error %s", err)
	}
	if got := len(readRows(t, db)); got != len(want) {
		t.Errorf("second Export() resulted in %d rows, want = %d", got, len(want))
	}
}

func TestSQL_Export_Batches(t *testing.T) {
	store := newStore(t, 99)
	db := openDB(t)

	// four columns per row, at most two rows per statement
	exporter := &SQL{DB: db, BatchSize: 1000, MaxQueryVar: 8}
	if err := exporter.Export(store, nil); err != nil {
		t.Fatalf("Export() returned error %s", err)
	}
	if got := len(readRows(t, db)); got != 100 {
		t.Errorf("Export() exported %d rows, want = 100", got)
	}

	exporter.MaxQueryVar = 3
	if err := exporter.Export(store, nil); !errors.Is(err, errInsufficientQueryVars) {
		t.Errorf("Export() got err = %v, want = %v", err, errInsufficientQueryVars)
	}
}

func TestRow(t *testing.T) {
	got, err := Row(ostore.Record{Type: "float", ID: 0xff, Value: []byte("1.5\n")})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{"float", "0xff", nil, "1.5\n"}, got); diff != "" {
		t.Errorf("Row() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Row(ostore.Record{Type: "int", ID: 1, Value: []byte("x\n")}); !errors.Is(err, vobj.ErrMalformed) {
		t.Errorf("Row() of malformed integer got err = %v", err)
	}
}

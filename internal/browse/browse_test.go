package browse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/FAU-CDI/vobox/pkg/vobj"
	"github.com/google/go-cmp/cmp"
)

// newViewer creates a new viewer for a store holding some objects.
func newViewer(t *testing.T) (*Viewer, *vobj.String, *vobj.Integer) {
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

	s, err := rt.NewString("hello")
	if err != nil {
		t.Fatal(err)
	}
	i, err := rt.NewInteger(42)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.NewInteger(-1); err != nil {
		t.Fatal(err)
	}

	// a record of a foreign kind
	if err := store.Save(&ostore.Record{Type: "float", ID: 0x100, Value: []byte("1.5\n")}); err != nil {
		t.Fatal(err)
	}

	return &Viewer{Store: store}, s, i
}

// get performs a GET request against handler and decodes the response into dest.
func get(t *testing.T, handler http.Handler, path string, dest any) int {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	if rec.Code == http.StatusOK && dest != nil {
		if err := json.NewDecoder(rec.Body).Decode(dest); err != nil {
			t.Fatalf("GET %s returned invalid json: %s", path, err)
		}
	}
	return rec.Code
}

func TestViewer_Index(t *testing.T) {
	viewer, _, _ := newViewer(t)

	var got []KindInfo
	if code := get(t, viewer, "/api/v1", &got); code != http.StatusOK {
		t.Fatalf("GET /api/v1 returned %d", code)
	}

	want := []KindInfo{
		{Kind: "float", Count: 1},
		{Kind: "int", Count: 2},
		{Kind: "str", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GET /api/v1 mismatch (-want +got):\n%s", diff)
	}
}

func TestViewer_Kind(t *testing.T) {
	viewer, s, i := newViewer(t)

	var got []string
	if code := get(t, viewer, "/api/v1/int", &got); code != http.StatusOK {
		t.Fatalf("GET /api/v1/int returned %d", code)
	}
	if diff := cmp.Diff([]string{i.ID().String(), (i.ID() + 1).String()}, got); diff != "" {
		t.Errorf("GET /api/v1/int mismatch (-want +got):\n%s", diff)
	}

	got = nil
	if code := get(t, viewer, "/api/v1/str", &got); code != http.StatusOK {
		t.Fatalf("GET /api/v1/str returned %d", code)
	}
	if diff := cmp.Diff([]string{s.ID().String()}, got); diff != "" {
		t.Errorf("GET /api/v1/str mismatch (-want +got):\n%s", diff)
	}

	if code := get(t, viewer, "/api/v1/nothing", nil); code != http.StatusNotFound {
		t.Errorf("GET /api/v1/nothing returned %d, want = %d", code, http.StatusNotFound)
	}
}

func TestViewer_Object(t *testing.T) {
	viewer, s, i := newViewer(t)

	for _, tt := range []struct {
		path string
		want Object
	}{
		{"/api/v1/str/" + s.ID().String(), Object{Kind: "str", ID: s.ID().String(), Raw: "5:hello\n", Value: "hello"}},
		{"/api/v1/int/" + i.ID().String(), Object{Kind: "int", ID: i.ID().String(), Raw: "42\n", Value: float64(42)}},
		{"/api/v1/float/0x100", Object{Kind: "float", ID: "0x100", Raw: "1.5\n"}},
	} {
		var got Object
		if code := get(t, viewer, tt.path, &got); code != http.StatusOK {
			t.Errorf("GET %s returned %d", tt.path, code)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("GET %s mismatch (-want +got):\n%s", tt.path, diff)
		}
	}

	for _, path := range []string{
		"/api/v1/str/0x999",
		"/api/v1/str/0x0",
		"/api/v1/str/42",
		"/api/v1/int/" + s.ID().String(),
	} {
		if code := get(t, viewer, path, nil); code != http.StatusNotFound {
			t.Errorf("GET %s returned %d, want = %d", path, code, http.StatusNotFound)
		}
	}
}

func TestViewer_Malformed(t *testing.T) {
	viewer, _, _ := newViewer(t)
	if err := viewer.Store.Save(&ostore.Record{Type: "int", ID: 0x200, Value: []byte("forty-two\n")}); err != nil {
		t.Fatal(err)
	}

	var got Object
	if code := get(t, viewer, "/api/v1/int/0x200", &got); code != http.StatusOK {
		t.Fatalf("GET returned %d", code)
	}
	if got.Error == "" || got.Value != nil {
		t.Errorf("malformed record decoded as %v", got)
	}
}

func TestViewer_Disabled(t *testing.T) {
	viewer := &Viewer{Store: ostore.New(t.TempDir())}
	if code := get(t, viewer, "/api/v1", nil); code != http.StatusInternalServerError {
		t.Errorf("GET /api/v1 on disabled store returned %d", code)
	}
}

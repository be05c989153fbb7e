// Package browse implements a read-only http interface to an object store.
package browse

import (
	"errors"
	"io/fs"
	"net/http"
	"sync"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/FAU-CDI/vobox/pkg/vobj"
	"github.com/gorilla/mux"
	"github.com/tkw1536/pkglib/iterator"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Viewer implements an [http.Handler] that displays the records of an object store.
//
// The store is scanned on every request, so that changes made by other processes are visible.
type Viewer struct {
	Store *ostore.Store

	m sync.Mutex // m serializes access to Store

	init sync.Once
	mux  mux.Router
}

// Prepare sets up the routes of this viewer.
// It is called automatically by ServeHTTP.
func (viewer *Viewer) Prepare() {
	viewer.init.Do(func() {
		viewer.mux.HandleFunc("/api/v1", viewer.jsonIndex).Methods(http.MethodGet)
		viewer.mux.HandleFunc("/api/v1/{kind}", viewer.jsonKind).Methods(http.MethodGet)
		viewer.mux.HandleFunc("/api/v1/{kind}/{id}", viewer.jsonObject).Methods(http.MethodGet)
	})
}

func (viewer *Viewer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer.Prepare()
	viewer.mux.ServeHTTP(w, r)
}

// KindInfo describes the objects of a single kind in the store.
type KindInfo struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Object describes a single record in the store.
type Object struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Raw   string `json:"raw"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// scan returns the ids of all objects in the store, grouped by kind.
func (viewer *Viewer) scan() (map[string][]omap.ID, error) {
	viewer.m.Lock()
	defer viewer.m.Unlock()

	records, err := iterator.Drain(viewer.Store.Records())
	if err != nil {
		return nil, err
	}

	ids := make(map[string][]omap.ID)
	for _, rec := range records {
		ids[rec.Type] = append(ids[rec.Type], rec.ID)
	}
	return ids, nil
}

// Index returns information about all kinds in the store, ordered by kind.
func (viewer *Viewer) Index() ([]KindInfo, error) {
	ids, err := viewer.scan()
	if err != nil {
		return nil, err
	}

	kinds := maps.Keys(ids)
	slices.Sort(kinds)

	infos := make([]KindInfo, len(kinds))
	for i, kind := range kinds {
		infos[i] = KindInfo{Kind: kind, Count: len(ids[kind])}
	}
	return infos, nil
}

// IDs returns the ids of objects of the given kind in ascending order.
// The second return value indicates if there are any objects of the given kind.
func (viewer *Viewer) IDs(kind string) ([]omap.ID, bool, error) {
	ids, err := viewer.scan()
	if err != nil {
		return nil, false, err
	}

	kindIDs, ok := ids[kind]
	slices.Sort(kindIDs)
	return kindIDs, ok, nil
}

// Object loads and decodes a single object.
// The second return value indicates if the object exists.
func (viewer *Viewer) Object(kind string, id omap.ID) (Object, bool, error) {
	viewer.m.Lock()
	defer viewer.m.Unlock()

	raw, err := viewer.Store.Load(kind, id)
	switch {
	case errors.Is(err, ostore.ErrDisabled):
		return Object{}, false, err
	case errors.Is(err, ostore.ErrInvalidRecord), errors.Is(err, fs.ErrNotExist):
		return Object{}, false, nil
	case err != nil:
		return Object{}, false, err
	}

	obj := Object{Kind: kind, ID: id.String(), Raw: string(raw)}
	if k := vobj.Kind(kind); k.Valid() {
		value, err := vobj.Decode(k, raw)
		if err != nil {
			obj.Error = err.Error()
		} else {
			obj.Value = value
		}
	}
	return obj, true, nil
}

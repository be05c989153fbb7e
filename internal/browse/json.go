package browse

import (
	"encoding/json"
	"net/http"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(value)
}

func (viewer *Viewer) jsonIndex(w http.ResponseWriter, r *http.Request) {
	infos, err := viewer.Index()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, infos)
}

func (viewer *Viewer) jsonKind(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ids, ok, err := viewer.IDs(vars["kind"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	writeJSON(w, names)
}

func (viewer *Viewer) jsonObject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := omap.ParseID(vars["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	obj, ok, err := viewer.Object(vars["kind"], id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, obj)
}

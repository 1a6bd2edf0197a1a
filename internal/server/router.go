// Package server exposes a layout store over HTTP using the historical
// routes of the web planner, so browser and desktop clients can share a
// directory of layouts.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/project"
)

// maxLayoutBytes bounds the size of an uploaded layout.
const maxLayoutBytes = 8 << 20

// Router wraps the mux router and the layout store.
type Router struct {
	*mux.Router
	store   *project.FileStore
	catalog string
	log     *log.Logger
}

// NewRouter creates the HTTP router with all routes. A nil logger
// disables request logging.
func NewRouter(store *project.FileStore, catalogPath string, logger *log.Logger) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		store:   store,
		catalog: catalogPath,
		log:     logger,
	}
	if logger != nil {
		r.Use(r.logRequests)
	}

	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/layouts", r.listLayouts).Methods("GET")
	api.HandleFunc("/equipment", r.getEquipment).Methods("GET")

	r.HandleFunc("/save_layout/{name}", r.saveLayout).Methods("POST")
	r.HandleFunc("/load_layout/{name}", r.loadLayout).Methods("GET")
	r.HandleFunc("/delete_layout/{name}", r.deleteLayout).Methods("DELETE")

	return r
}

// NewServer builds an http.Server for cfg.
func NewServer(cfg Config, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(project.NewFileStore(cfg.LayoutsDir), cfg.Catalog, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) listLayouts(w http.ResponseWriter, req *http.Request) {
	names, err := r.store.List(req.Context())
	if err != nil {
		respondStatus(w, http.StatusInternalServerError, "error", "Could not list layouts.")
		return
	}
	respondJSON(w, http.StatusOK, names)
}

func (r *Router) getEquipment(w http.ResponseWriter, req *http.Request) {
	catalog := model.DefaultCatalog()
	if r.catalog != "" {
		c, warnings, err := project.LoadCatalog(r.catalog)
		if err != nil {
			respondStatus(w, http.StatusInternalServerError, "error", "Could not load equipment file.")
			return
		}
		for _, msg := range warnings {
			r.logWarn("catalog", "path", r.catalog, "warning", msg)
		}
		catalog = c
	}
	cats := catalog.Categories
	if cats == nil {
		cats = []model.Category{}
	}
	respondJSON(w, http.StatusOK, cats)
}

func (r *Router) saveLayout(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxLayoutBytes))
	if err != nil {
		respondStatus(w, http.StatusRequestEntityTooLarge, "error", fmt.Sprintf("Failed to save layout '%s': %v", name, err))
		return
	}
	racks, err := project.DecodeLayout(body)
	if err != nil {
		respondStatus(w, http.StatusBadRequest, "error", fmt.Sprintf("Failed to save layout '%s': %v", name, err))
		return
	}
	if err := r.store.Save(req.Context(), name, racks); err != nil {
		respondStatus(w, statusFor(err), "error", fmt.Sprintf("Failed to save layout '%s': %v", name, err))
		return
	}
	respondStatus(w, http.StatusOK, "ok", fmt.Sprintf("Layout saved successfully as '%s'.", name))
}

func (r *Router) loadLayout(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	racks, err := r.store.Load(req.Context(), name)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			respondStatus(w, http.StatusNotFound, "error", fmt.Sprintf("Layout '%s' not found.", name))
			return
		}
		respondStatus(w, statusFor(err), "error", fmt.Sprintf("Failed to load layout '%s': %v", name, err))
		return
	}
	respondJSON(w, http.StatusOK, racks)
}

func (r *Router) deleteLayout(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	if err := r.store.Delete(req.Context(), name); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			respondStatus(w, http.StatusNotFound, "error", fmt.Sprintf("Layout '%s' not found.", name))
			return
		}
		respondStatus(w, statusFor(err), "error", fmt.Sprintf("Failed to delete layout '%s': %v", name, err))
		return
	}
	respondStatus(w, http.StatusOK, "ok", fmt.Sprintf("Layout '%s' deleted successfully.", name))
}

func statusFor(err error) int {
	if errors.Is(err, project.ErrInvalidName) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondStatus sends a status/message body.
func respondStatus(w http.ResponseWriter, code int, status, message string) {
	respondJSON(w, code, project.StatusResponse{Status: status, Message: message})
}

func (r *Router) logWarn(msg string, kv ...interface{}) {
	if r.log != nil {
		r.log.Warn(msg, kv...)
	}
}

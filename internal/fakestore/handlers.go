package fakestore

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/openpetstore/petstore-contract-tests/servicedef"
)

// Handler serves the pet store API from a MemoryStore.
type Handler struct {
	store *MemoryStore
}

func NewHandler(s *MemoryStore) *Handler {
	return &Handler{store: s}
}

// Router returns an http.Handler with all routes mounted at the root, so a server's URL can be
// used directly as the base URL.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	h.Routes(r)
	return r
}

// Routes mounts the pet and store routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/pet", func(r chi.Router) {
		r.Post("/", h.AddPet)
		r.Put("/", h.UpdatePet)
		r.Get("/findByStatus", h.FindPetsByStatus)
		r.Get("/{petId}", h.GetPet)
		r.Delete("/{petId}", h.DeletePet)
	})
	r.Route("/store", func(r chi.Router) {
		r.Post("/order", h.PlaceOrder)
	})
}

// GetPet handles GET /pet/{petId}.
func (h *Handler) GetPet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "petId")
	if !ok {
		return
	}
	p, ok := h.store.Pet(id)
	if !ok {
		apiError(w, http.StatusNotFound, "error", servicedef.MessagePetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AddPet handles POST /pet.
func (h *Handler) AddPet(w http.ResponseWriter, r *http.Request) {
	var p servicedef.Pet
	if !decodeBody(w, r, &p) {
		return
	}
	h.store.PutPet(p)
	writeJSON(w, http.StatusOK, p)
}

// UpdatePet handles PUT /pet. Like the real service, it creates the pet if it does not exist.
func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	h.AddPet(w, r)
}

// FindPetsByStatus handles GET /pet/findByStatus?status=a,b.
func (h *Handler) FindPetsByStatus(w http.ResponseWriter, r *http.Request) {
	var statuses []string
	for _, v := range r.URL.Query()["status"] {
		statuses = append(statuses, strings.Split(v, ",")...)
	}
	writeJSON(w, http.StatusOK, h.store.PetsByStatus(statuses...))
}

// DeletePet handles DELETE /pet/{petId}. A missing pet gets a 404 with no body.
func (h *Handler) DeletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "petId")
	if !ok {
		return
	}
	if !h.store.DeletePet(id) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, servicedef.APIResponse{
		Code:    http.StatusOK,
		Type:    "unknown",
		Message: strconv.FormatInt(id, 10),
	})
}

// PlaceOrder handles POST /store/order.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var o servicedef.Order
	if !decodeBody(w, r, &o) {
		return
	}
	if o.Quantity < 0 {
		badInput(w)
		return
	}
	writeJSON(w, http.StatusOK, h.store.PlaceOrder(o))
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		apiError(w, http.StatusNotFound, "unknown", "java.lang.NumberFormatException: For input string: \""+raw+"\"")
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON body into dest. Anything that does not decode cleanly gets the
// service's generic 500 response.
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		badInput(w)
		return false
	}
	return true
}

func badInput(w http.ResponseWriter) {
	apiError(w, http.StatusInternalServerError, "unknown", servicedef.MessageBadInput)
}

func apiError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, servicedef.APIResponse{Code: status, Type: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

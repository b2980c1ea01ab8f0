package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
)

type Handlers struct {
	Repo *Repository
}

type serviceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

func (req *serviceRequest) validate() (decimal.Decimal, string) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return decimal.Zero, "name is required"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return decimal.Zero, "price must be a decimal string"
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, "price must be > 0"
	}
	return price.Round(2), ""
}

// Create lists a new service for the authenticated carwash, subject to the
// active-service cap.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	price, msg := req.validate()
	if msg != "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}

	n, err := h.Repo.CountActive(r.Context(), u.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if n >= MaxActivePerCarwash {
		api.WriteError(w, http.StatusConflict, "SERVICE_LIMIT_REACHED", "active service limit reached")
		return
	}

	s, err := h.Repo.Create(r.Context(), CreateParams{
		CarWashID:   u.ID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Price:       price,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"service": s})
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	price, msg := req.validate()
	if msg != "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}

	s, err := h.Repo.Update(r.Context(), u.ID, id, UpdateParams{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Price:       price,
	})
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"service": s})
}

func (h Handlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h Handlers) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h Handlers) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	if active {
		n, err := h.Repo.CountActive(r.Context(), u.ID)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			return
		}
		if n >= MaxActivePerCarwash {
			api.WriteError(w, http.StatusConflict, "SERVICE_LIMIT_REACHED", "active service limit reached")
			return
		}
	}

	if err := h.Repo.SetActive(r.Context(), u.ID, id, active); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMine returns the authenticated carwash's full catalog, inactive included.
func (h Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	items, err := h.Repo.ListByCarWash(r.Context(), u.ID, false)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []*Service{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// ListByCarWash is the client-facing catalog: active services of one provider.
func (h Handlers) ListByCarWash(w http.ResponseWriter, r *http.Request) {
	carWashID := chi.URLParam(r, "carWashID")
	if carWashID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing carWashID")
		return
	}

	items, err := h.Repo.ListByCarWash(r.Context(), carWashID, true)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []*Service{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

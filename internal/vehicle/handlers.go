package vehicle

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
)

type Handlers struct {
	Repo *Repository
}

type createRequest struct {
	Make    string `json:"make"`
	Model   string `json:"model"`
	PlateNo string `json:"plateNo"`
	Color   string `json:"color"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Make = strings.TrimSpace(req.Make)
	req.Model = strings.TrimSpace(req.Model)
	req.PlateNo = strings.ToUpper(strings.TrimSpace(req.PlateNo))
	if req.Make == "" || req.Model == "" || req.PlateNo == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "make, model and plateNo are required")
		return
	}

	v, err := h.Repo.Create(r.Context(), CreateParams{
		ClientID: u.ID,
		Make:     req.Make,
		Model:    req.Model,
		PlateNo:  req.PlateNo,
		Color:    strings.TrimSpace(req.Color),
	})
	if err != nil {
		// Unique (client_id, plate_no) violation is the common failure here.
		api.WriteError(w, http.StatusConflict, "PLATE_ALREADY_REGISTERED", "vehicle with this plate already registered")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"vehicle": v})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	items, err := h.Repo.ListByClient(r.Context(), u.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []*Vehicle{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

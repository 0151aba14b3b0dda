package handler

import (
	"net/http"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/logger"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/bcnelson/netinventory/internal/validation"
	"github.com/rs/zerolog"
)

// EquipmentHandler handles /equipements endpoints.
type EquipmentHandler struct {
	store storage.Storage
	log   zerolog.Logger
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(store storage.Storage) *EquipmentHandler {
	return &EquipmentHandler{store: store, log: logger.WithComponent("equipment")}
}

// List lists equipment, optionally filtered by ?location= and ?vlan=.
// Empty query values are ignored.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EquipmentFilter{
		Location: domain.StringPtr(q.Get("location")),
		VLAN:     domain.StringPtr(q.Get("vlan")),
	}

	items, err := h.store.ListEquipment(r.Context(), filter)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Get gets equipment by id.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	eq, err := h.store.GetEquipment(r.Context(), id)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, eq)
}

// Create validates the body and inserts a new record.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.EquipmentInput
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.log, err)
		return
	}

	req.Normalize()

	if verr := validation.ValidateEquipment(&req); verr != nil {
		handleError(w, h.log, verr)
		return
	}

	id, err := h.store.CreateEquipment(r.Context(), &req)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	h.log.Info().Int64("id", id).Str("name", req.Name).Msg("equipment created")
	respondJSON(w, http.StatusCreated, &domain.CreateEquipmentResponse{ID: id})
}

// Update validates the body and replaces every mutable field of the record.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	var req domain.EquipmentInput
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.log, err)
		return
	}

	req.Normalize()

	if verr := validation.ValidateEquipment(&req); verr != nil {
		handleError(w, h.log, verr)
		return
	}

	if err := h.store.UpdateEquipment(r.Context(), id, &req); err != nil {
		handleError(w, h.log, err)
		return
	}

	h.log.Info().Int64("id", id).Msg("equipment updated")
	respondJSON(w, http.StatusOK, &domain.MessageResponse{Message: "Equipment updated successfully"})
}

// Delete removes the record. Unknown ids still report success.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	if err := h.store.DeleteEquipment(r.Context(), id); err != nil {
		handleError(w, h.log, err)
		return
	}

	h.log.Info().Int64("id", id).Msg("equipment deleted")
	respondJSON(w, http.StatusOK, &domain.MessageResponse{Message: "Equipment deleted successfully"})
}

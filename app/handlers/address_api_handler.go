package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/models/other"
	"github.com/Rakhulsr/go-addressbook/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// AddressAPIHandler serves the JSON REST API the account pages consume.
type AddressAPIHandler struct {
	render      *render.Render
	addressRepo repositories.AddressRepository
	validate    *validator.Validate
}

func NewAddressAPIHandler(render *render.Render, addressRepo repositories.AddressRepository, validate *validator.Validate) *AddressAPIHandler {
	return &AddressAPIHandler{
		render:      render,
		addressRepo: addressRepo,
		validate:    validate,
	}
}

func (h *AddressAPIHandler) writeError(w http.ResponseWriter, status int, message string) {
	_ = h.render.JSON(w, status, other.ErrorResponse{Message: message})
}

func (h *AddressAPIHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// decodeAddress reads and validates the request body. It writes the error
// response itself and returns false when the body is unusable.
func (h *AddressAPIHandler) decodeAddress(w http.ResponseWriter, r *http.Request) (*models.Address, bool) {
	var address models.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}

	if err := h.validate.Struct(address); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := helpers.FormatValidationErrors(verrs)
			_ = h.render.JSON(w, http.StatusBadRequest, other.ErrorResponse{
				Message: helpers.FirstValidationMessage(fields, helpers.AddressFieldOrder),
				Fields:  fields,
			})
			return nil, false
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &address, true
}

// ListAddresses handles GET /api/addresses
func (h *AddressAPIHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	addresses, err := h.addressRepo.FindAddressesByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("ListAddresses: Failed to load addresses for user %s: %v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "failed to load addresses")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, addresses)
}

// CreateAddress handles POST /api/addresses
func (h *AddressAPIHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	address, ok := h.decodeAddress(w, r)
	if !ok {
		return
	}
	address.UserID = userID

	if err := h.addressRepo.CreateAddress(r.Context(), address); err != nil {
		log.Printf("CreateAddress: Failed to save address for user %s: %v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "failed to save address")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, address)
}

// UpdateAddress handles PUT /api/addresses/{id}
func (h *AddressAPIHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	address, ok := h.decodeAddress(w, r)
	if !ok {
		return
	}
	address.ID = id
	address.UserID = userID

	if err := h.addressRepo.UpdateAddress(r.Context(), address); err != nil {
		if errors.Is(err, repositories.ErrAddressNotFound) {
			h.writeError(w, http.StatusNotFound, "address not found")
			return
		}
		log.Printf("UpdateAddress: Failed to update address %d for user %s: %v", id, userID, err)
		h.writeError(w, http.StatusInternalServerError, "failed to update address")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, address)
}

// DeleteAddress handles DELETE /api/addresses/{id}
func (h *AddressAPIHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	if err := h.addressRepo.DeleteAddress(r.Context(), userID, id); err != nil {
		if errors.Is(err, repositories.ErrAddressNotFound) {
			h.writeError(w, http.StatusNotFound, "address not found")
			return
		}
		log.Printf("DeleteAddress: Failed to delete address %d for user %s: %v", id, userID, err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete address")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

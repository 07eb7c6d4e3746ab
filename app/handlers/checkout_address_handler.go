package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-addressbook/app/components"
	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/Rakhulsr/go-addressbook/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-addressbook/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// CheckoutAddressHandler lets the shopper pick a shipping address. The
// selection lives in the session.
type CheckoutAddressHandler struct {
	render       *render.Render
	newClient    ClientFactory
	sessionStore sessions.SessionStore
}

func NewCheckoutAddressHandler(render *render.Render, newClient ClientFactory, sessionStore sessions.SessionStore) *CheckoutAddressHandler {
	return &CheckoutAddressHandler{
		render:       render,
		newClient:    newClient,
		sessionStore: sessionStore,
	}
}

func (h *CheckoutAddressHandler) list(w http.ResponseWriter, r *http.Request) *components.AddressList {
	store := services.NewAddressService(h.newClient(w, r))
	list := components.NewAddressList(store, h.sessionStore.GetSelectedAddressID(r), func(id uint) {
		if err := h.sessionStore.SetSelectedAddressID(w, r, id); err != nil {
			log.Printf("CheckoutAddressHandler: Failed to store selected address %d: %v", id, err)
		}
	})
	list.Mount(r.Context())
	return list
}

func (h *CheckoutAddressHandler) renderList(w http.ResponseWriter, r *http.Request, status int, list *components.AddressList, extra map[string]interface{}) {
	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Checkout", URL: "/checkout/addresses"},
		{Name: "Shipping Address", URL: "/checkout/addresses"},
	}

	data := map[string]interface{}{
		"Title":       "Shipping Address",
		"Breadcrumbs": breadcrumbs,
		"List":        list,
	}
	for k, v := range extra {
		data[k] = v
	}
	_ = h.render.HTML(w, status, "checkout/addresses", helpers.GetBaseData(r, data))
}

// ShowAddresses handles GET /checkout/addresses
func (h *CheckoutAddressHandler) ShowAddresses(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, http.StatusOK, h.list(w, r), nil)
}

// SelectAddress handles POST /checkout/addresses/select
func (h *CheckoutAddressHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r.FormValue("addressId"))
	if err != nil {
		helpers.RedirectWithMessage(w, r, "/checkout/addresses", "error", "Please choose an address.")
		return
	}

	list := h.list(w, r)
	known := false
	for _, a := range list.Addresses {
		if a.ID == id {
			known = true
			break
		}
	}
	if !known {
		log.Printf("SelectAddress: Address %d not in the current user's list", id)
		helpers.RedirectWithMessage(w, r, "/checkout/addresses", "error", "Address not found.")
		return
	}

	list.Select(id)
	helpers.RedirectWithMessage(w, r, "/checkout/addresses", "success", "Shipping address selected.")
}

// NewAddressForm handles GET /checkout/addresses/new
func (h *CheckoutAddressHandler) NewAddressForm(w http.ResponseWriter, r *http.Request) {
	list := h.list(w, r)
	list.ShowForm()
	h.renderList(w, r, http.StatusOK, list, nil)
}

// CreateAddress handles POST /checkout/addresses
func (h *CheckoutAddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	list := h.list(w, r)

	err := list.Save(r.Context(), helpers.AddressFromForm(r))
	switch {
	case err == nil:
		helpers.RedirectWithMessage(w, r, "/checkout/addresses", "success", "Address added.")
	case errors.Is(err, components.ErrInvalidForm):
		h.renderList(w, r, http.StatusUnprocessableEntity, list, nil)
	default:
		h.renderList(w, r, http.StatusUnprocessableEntity, list, map[string]interface{}{
			"MessageStatus": "error",
			"Message":       components.SaveErrorMessage(err),
		})
	}
}

// ConfirmDeleteAddress handles GET /checkout/addresses/{id}/delete
func (h *CheckoutAddressHandler) ConfirmDeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		helpers.RedirectWithMessage(w, r, "/checkout/addresses", "error", "Invalid address.")
		return
	}

	list := h.list(w, r)
	for _, a := range list.Addresses {
		if a.ID == id {
			renderDeleteConfirm(h.render, w, r, a, fmt.Sprintf("/checkout/addresses/%d", id), "/checkout/addresses")
			return
		}
	}
	helpers.RedirectWithMessage(w, r, "/checkout/addresses", "error", "Address not found.")
}

// DeleteAddress handles DELETE /checkout/addresses/{id}
func (h *CheckoutAddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		helpers.RedirectWithMessage(w, r, "/checkout/addresses", "error", "Invalid address.")
		return
	}
	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, fmt.Sprintf("/checkout/addresses/%d/delete", id), http.StatusSeeOther)
		return
	}

	list := h.list(w, r)
	list.Confirm = confirmedBy(r)
	if err := list.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteAddress: Address %d left in place: %v", id, err)
		http.Redirect(w, r, "/checkout/addresses", http.StatusSeeOther)
		return
	}
	helpers.RedirectWithMessage(w, r, "/checkout/addresses", "success", "Address deleted.")
}

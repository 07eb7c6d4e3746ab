package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-addressbook/app/components"
	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/Rakhulsr/go-addressbook/app/utils/breadcrumb"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

const addressesTabURL = "/profile?tab=addresses"

// ClientFactory builds the API client for the user behind r. It may renew
// the session token, so it runs before anything is written to w.
type ClientFactory func(w http.ResponseWriter, r *http.Request) services.RESTClient

type ProfileHandler struct {
	render    *render.Render
	newClient ClientFactory
}

func NewProfileHandler(render *render.Render, newClient ClientFactory) *ProfileHandler {
	return &ProfileHandler{
		render:    render,
		newClient: newClient,
	}
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(helpers.ContextKeyUser).(*models.User)
	return user
}

// confirmedBy answers a component's confirmation prompt with the posted
// confirm field.
func confirmedBy(r *http.Request) components.ConfirmFunc {
	return func(string) bool {
		return r.FormValue("confirm") == "yes"
	}
}

// page gates the account area on a signed-in user and mounts the address
// book when the addresses tab is shown.
func (h *ProfileHandler) page(w http.ResponseWriter, r *http.Request, tab components.Tab) (*components.ProfilePage, bool) {
	page, ok := components.NewProfilePage(currentUser(r), tab)
	if !ok {
		helpers.RedirectWithMessage(w, r, "/login", "error", "Please sign in to view your profile.")
		return nil, false
	}

	if page.ShowsAddresses() {
		page.AddressBook = components.NewAddressBook(h.newClient(w, r))
		page.AddressBook.Mount(r.Context())
	}
	return page, true
}

func (h *ProfileHandler) renderProfile(w http.ResponseWriter, r *http.Request, status int, page *components.ProfilePage) {
	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "My Account", URL: "/profile"},
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "My Account",
		"Breadcrumbs": breadcrumbs,
		"Page":        page,
		"Book":        page.AddressBook,
	})
	_ = h.render.HTML(w, status, "account/profile", data)
}

func (h *ProfileHandler) addressOr404(w http.ResponseWriter, r *http.Request, book *components.AddressBook) (models.Address, bool) {
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		helpers.RedirectWithMessage(w, r, addressesTabURL, "error", "Invalid address.")
		return models.Address{}, false
	}

	address, found := book.Find(id)
	if !found {
		log.Printf("ProfileHandler: Address %d not in the current user's list", id)
		helpers.RedirectWithMessage(w, r, addressesTabURL, "error", "Address not found.")
		return models.Address{}, false
	}
	return address, true
}

// ShowProfile handles GET /profile?tab=
func (h *ProfileHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.ParseTab(r.URL.Query().Get("tab")))
	if !ok {
		return
	}
	h.renderProfile(w, r, http.StatusOK, page)
}

// NewAddressForm handles GET /profile/addresses/new
func (h *ProfileHandler) NewAddressForm(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	page.AddressBook.OpenNew()
	h.renderProfile(w, r, http.StatusOK, page)
}

// EditAddressForm handles GET /profile/addresses/{id}/edit
func (h *ProfileHandler) EditAddressForm(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	address, ok := h.addressOr404(w, r, page.AddressBook)
	if !ok {
		return
	}
	page.AddressBook.OpenEdit(address)
	h.renderProfile(w, r, http.StatusOK, page)
}

// CreateAddress handles POST /profile/addresses
func (h *ProfileHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	book := page.AddressBook
	book.OpenNew()

	draft := helpers.AddressFromForm(r)
	draft.ID = 0
	if err := book.Submit(r.Context(), draft); err != nil {
		h.renderProfile(w, r, http.StatusUnprocessableEntity, page)
		return
	}
	helpers.RedirectWithMessage(w, r, addressesTabURL, "success", "Address saved.")
}

// UpdateAddress handles PUT /profile/addresses/{id}
func (h *ProfileHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	book := page.AddressBook
	address, ok := h.addressOr404(w, r, book)
	if !ok {
		return
	}
	book.OpenEdit(address)

	if err := book.Submit(r.Context(), helpers.AddressFromForm(r)); err != nil {
		h.renderProfile(w, r, http.StatusUnprocessableEntity, page)
		return
	}
	helpers.RedirectWithMessage(w, r, addressesTabURL, "success", "Address updated.")
}

// SetDefaultAddress handles POST /profile/addresses/{id}/default
func (h *ProfileHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	address, ok := h.addressOr404(w, r, page.AddressBook)
	if !ok {
		return
	}

	if err := page.AddressBook.SetDefault(r.Context(), address); err != nil {
		log.Printf("SetDefaultAddress: Address %d left unchanged: %v", address.ID, err)
		http.Redirect(w, r, addressesTabURL, http.StatusSeeOther)
		return
	}
	helpers.RedirectWithMessage(w, r, addressesTabURL, "success", "Default address updated.")
}

// ConfirmDeleteAddress handles GET /profile/addresses/{id}/delete
func (h *ProfileHandler) ConfirmDeleteAddress(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	address, ok := h.addressOr404(w, r, page.AddressBook)
	if !ok {
		return
	}
	renderDeleteConfirm(h.render, w, r, address,
		fmt.Sprintf("/profile/addresses/%d", address.ID), addressesTabURL)
}

// DeleteAddress handles DELETE /profile/addresses/{id}
func (h *ProfileHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, components.TabAddresses)
	if !ok {
		return
	}
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		helpers.RedirectWithMessage(w, r, addressesTabURL, "error", "Invalid address.")
		return
	}

	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, fmt.Sprintf("/profile/addresses/%d/delete", id), http.StatusSeeOther)
		return
	}

	page.AddressBook.Confirm = confirmedBy(r)
	if err := page.AddressBook.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteAddress: Address %d left in place: %v", id, err)
		http.Redirect(w, r, addressesTabURL, http.StatusSeeOther)
		return
	}
	helpers.RedirectWithMessage(w, r, addressesTabURL, "success", "Address deleted.")
}

func renderDeleteConfirm(rnd *render.Render, w http.ResponseWriter, r *http.Request, address models.Address, action, cancelURL string) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Delete Address",
		"Address":   address,
		"Prompt":    components.DeleteConfirmMessage,
		"Action":    action,
		"CancelURL": cancelURL,
	})
	_ = rnd.HTML(w, http.StatusOK, "account/address_delete_confirm", data)
}

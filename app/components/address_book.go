// Package components holds the view-models behind the account pages. Each
// one is mounted for a single request, talks to the address API and is then
// handed to a template.
package components

import (
	"context"
	"errors"
	"log"

	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/services"
)

const (
	SaveErrorFallback    = "Failed to save address. Please try again."
	DeleteConfirmMessage = "Are you sure you want to delete this address?"
)

// ConfirmFunc blocks on the user's answer to a confirmation prompt.
type ConfirmFunc func(message string) bool

// AddressBook is the full CRUD panel with default-address selection shown
// on the profile page.
type AddressBook struct {
	api services.RESTClient

	Addresses  []models.Address
	Loading    bool
	FormOpen   bool
	Editing    *models.Address
	Form       models.Address
	Error      string
	Submitting bool

	Confirm ConfirmFunc
}

func NewAddressBook(api services.RESTClient) *AddressBook {
	return &AddressBook{api: api, Addresses: []models.Address{}}
}

func (b *AddressBook) Mount(ctx context.Context) {
	b.fetch(ctx)
}

func (b *AddressBook) fetch(ctx context.Context) {
	b.Loading = true
	defer func() { b.Loading = false }()

	var addresses []models.Address
	if err := b.api.Get(ctx, services.AddressesPath, &addresses); err != nil {
		log.Printf("AddressBook.fetch: Failed to fetch addresses: %v", err)
		return
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	b.Addresses = addresses
}

// DefaultLocked reports whether the default checkbox is disabled, which is
// the case while the user has no address yet.
func (b *AddressBook) DefaultLocked() bool {
	return len(b.Addresses) == 0
}

func (b *AddressBook) Find(id uint) (models.Address, bool) {
	for _, a := range b.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return models.Address{}, false
}

func (b *AddressBook) OpenNew() {
	b.Editing = nil
	b.Form = models.Address{IsDefault: b.DefaultLocked()}
	b.Error = ""
	b.FormOpen = true
}

func (b *AddressBook) OpenEdit(address models.Address) {
	editing := address
	b.Editing = &editing
	b.Form = address
	b.Error = ""
	b.FormOpen = true
}

func (b *AddressBook) CloseForm() {
	b.FormOpen = false
	b.Editing = nil
	b.Form = models.Address{}
	b.Error = ""
}

// Submit saves the form: PUT when an address is being edited, POST
// otherwise. On success the list is fetched again and the form closed; on
// failure the form stays open with a single banner message.
func (b *AddressBook) Submit(ctx context.Context, draft models.Address) error {
	b.Form = draft
	b.Error = ""
	b.Submitting = true
	defer func() { b.Submitting = false }()

	var err error
	if b.Editing != nil {
		payload := mergeForm(*b.Editing, draft)
		b.Form = payload
		err = b.api.Put(ctx, services.AddressPath(payload.ID), payload, nil)
	} else {
		payload := mergeForm(models.Address{}, draft)
		if b.DefaultLocked() {
			payload.IsDefault = true
		}
		b.Form = payload
		err = b.api.Post(ctx, services.AddressesPath, payload, nil)
	}

	if err != nil {
		log.Printf("AddressBook.Submit: Failed to save address: %v", err)
		b.Error = SaveErrorMessage(err)
		return err
	}

	b.fetch(ctx)
	b.CloseForm()
	return nil
}

// Delete removes the address after confirmation. The local list is filtered
// instead of fetched again.
func (b *AddressBook) Delete(ctx context.Context, id uint) error {
	if b.Confirm == nil || !b.Confirm(DeleteConfirmMessage) {
		return nil
	}

	if err := b.api.Delete(ctx, services.AddressPath(id)); err != nil {
		log.Printf("AddressBook.Delete: Failed to delete address %d: %v", id, err)
		return err
	}

	kept := make([]models.Address, 0, len(b.Addresses))
	for _, a := range b.Addresses {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	b.Addresses = kept
	return nil
}

// SetDefault re-sends the full address with IsDefault forced on. Demoting
// the previous default is left to the server. An address that is already
// the default is left alone.
func (b *AddressBook) SetDefault(ctx context.Context, address models.Address) error {
	if address.IsDefault {
		return nil
	}

	payload := address
	payload.IsDefault = true

	if err := b.api.Put(ctx, services.AddressPath(address.ID), payload, nil); err != nil {
		log.Printf("AddressBook.SetDefault: Failed to set default address %d: %v", address.ID, err)
		return err
	}

	b.fetch(ctx)
	return nil
}

// mergeForm copies the editable fields of form over base.
func mergeForm(base, form models.Address) models.Address {
	base.FullName = form.FullName
	base.PhoneNumber = form.PhoneNumber
	base.StreetAddress = form.StreetAddress
	base.City = form.City
	base.State = form.State
	base.ZipCode = form.ZipCode
	base.IsDefault = form.IsDefault
	return base
}

// SaveErrorMessage prefers the message sent by the server.
func SaveErrorMessage(err error) string {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return SaveErrorFallback
}

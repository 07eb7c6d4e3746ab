package components

import (
	"context"
	"log"

	"github.com/Rakhulsr/go-addressbook/app/models"
)

// AddressStore is the persistence AddressList goes through.
type AddressStore interface {
	GetUserAddresses(ctx context.Context) ([]models.Address, error)
	AddAddress(ctx context.Context, address models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, id uint) error
}

// AddressList is the add/select/delete list used where an address has to be
// picked, e.g. checkout. The caller owns the selection.
type AddressList struct {
	store AddressStore

	Addresses  []models.Address
	SelectedID uint
	Form       *AddressForm
	Loading    bool

	OnSelect func(id uint)
	Confirm  ConfirmFunc
}

func NewAddressList(store AddressStore, selectedID uint, onSelect func(id uint)) *AddressList {
	return &AddressList{
		store:      store,
		Addresses:  []models.Address{},
		SelectedID: selectedID,
		OnSelect:   onSelect,
	}
}

func (l *AddressList) Mount(ctx context.Context) {
	l.fetch(ctx)
}

func (l *AddressList) fetch(ctx context.Context) {
	l.Loading = true
	defer func() { l.Loading = false }()

	addresses, err := l.store.GetUserAddresses(ctx)
	if err != nil {
		log.Printf("AddressList.fetch: Failed to fetch addresses: %v", err)
		return
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	l.Addresses = addresses
}

func (l *AddressList) IsSelected(id uint) bool {
	return l.SelectedID != 0 && l.SelectedID == id
}

func (l *AddressList) Select(id uint) {
	l.SelectedID = id
	if l.OnSelect != nil {
		l.OnSelect(id)
	}
}

func (l *AddressList) ShowingForm() bool {
	return l.Form != nil
}

// ShowForm swaps the list for a fresh creation form.
func (l *AddressList) ShowForm() *AddressForm {
	l.Form = NewAddressForm(l.save)
	return l.Form
}

func (l *AddressList) HideForm() {
	l.Form = nil
}

// Save submits draft through the creation form, showing it first if needed.
func (l *AddressList) Save(ctx context.Context, draft models.Address) error {
	if l.Form == nil {
		l.ShowForm()
	}
	return l.Form.Submit(ctx, draft)
}

func (l *AddressList) save(ctx context.Context, draft models.Address) error {
	draft.ID = 0
	draft.IsDefault = false

	if _, err := l.store.AddAddress(ctx, draft); err != nil {
		log.Printf("AddressList.save: Failed to add address: %v", err)
		return err
	}

	l.fetch(ctx)
	l.HideForm()
	return nil
}

// Delete never touches the selection. After confirmation the address is
// deleted and the list fetched again.
func (l *AddressList) Delete(ctx context.Context, id uint) error {
	if l.Confirm == nil || !l.Confirm(DeleteConfirmMessage) {
		return nil
	}

	if err := l.store.DeleteAddress(ctx, id); err != nil {
		log.Printf("AddressList.Delete: Failed to delete address %d: %v", id, err)
		return err
	}

	l.fetch(ctx)
	return nil
}

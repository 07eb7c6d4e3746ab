package components

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidForm = errors.New("address form has missing fields")

var validate = helpers.NewValidator()

// SaveFunc receives the draft of a submitted AddressForm.
type SaveFunc func(ctx context.Context, draft models.Address) error

// AddressForm is the bare creation form: every field is required and it
// knows nothing about default addresses.
type AddressForm struct {
	Draft  models.Address
	Errors map[string]string

	onSave SaveFunc
}

func NewAddressForm(onSave SaveFunc) *AddressForm {
	return &AddressForm{onSave: onSave, Errors: map[string]string{}}
}

// Validate returns the missing fields keyed by their JSON name.
func (f *AddressForm) Validate() map[string]string {
	err := validate.Struct(f.Draft)
	if err == nil {
		return map[string]string{}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return helpers.FormatValidationErrors(verrs)
	}
	return map[string]string{"form": err.Error()}
}

// Submit hands the draft to onSave once it validates. The draft is kept as
// is afterwards; replacing the form is up to the parent.
func (f *AddressForm) Submit(ctx context.Context, draft models.Address) error {
	f.Draft = draft
	f.Errors = f.Validate()
	if len(f.Errors) > 0 {
		return ErrInvalidForm
	}
	return f.onSave(ctx, f.Draft)
}

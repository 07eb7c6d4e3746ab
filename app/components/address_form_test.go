package components

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressForm_AllFieldsRequired(t *testing.T) {
	saved := false
	form := NewAddressForm(func(ctx context.Context, d models.Address) error {
		saved = true
		return nil
	})

	err := form.Submit(context.Background(), models.Address{})

	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.False(t, saved)
	for _, field := range []string{"fullName", "phoneNumber", "streetAddress", "city", "state", "zipCode"} {
		assert.Contains(t, form.Errors, field)
	}
	assert.Len(t, form.Errors, 6)
}

func TestAddressForm_SubmitPassesDraftAndKeepsIt(t *testing.T) {
	var got models.Address
	form := NewAddressForm(func(ctx context.Context, d models.Address) error {
		got = d
		return nil
	})

	d := draft("Ada")
	require.NoError(t, form.Submit(context.Background(), d))

	assert.Equal(t, d, got)
	assert.Equal(t, d, form.Draft)
	assert.Empty(t, form.Errors)
}

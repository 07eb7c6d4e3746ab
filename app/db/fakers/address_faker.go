package fakers

import (
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/go-faker/faker/v4"
)

func AddressFaker(userID string, isDefault bool) *models.Address {
	addr := faker.GetRealAddress()

	return &models.Address{
		UserID:        userID,
		FullName:      faker.Name(),
		PhoneNumber:   faker.Phonenumber(),
		StreetAddress: addr.Address,
		City:          addr.City,
		State:         addr.State,
		ZipCode:       addr.PostalCode,
		IsDefault:     isDefault,
	}
}

// UserFaker returns an unsaved user; the password is stored in clear until
// the repository hashes it on create.
func UserFaker(email string) *models.User {
	if email == "" {
		email = faker.Email()
	}
	return &models.User{
		Username: faker.Username(),
		Email:    email,
		Password: "password",
	}
}

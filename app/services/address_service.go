package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-addressbook/app/models"
)

const AddressesPath = "/addresses"

func AddressPath(id uint) string {
	return fmt.Sprintf("%s/%d", AddressesPath, id)
}

// AddressService passes straight through to the REST API.
type AddressService struct {
	api RESTClient
}

func NewAddressService(api RESTClient) *AddressService {
	return &AddressService{api: api}
}

func (s *AddressService) GetUserAddresses(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.api.Get(ctx, AddressesPath, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *AddressService) AddAddress(ctx context.Context, address models.Address) (*models.Address, error) {
	var created models.Address
	if err := s.api.Post(ctx, AddressesPath, address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, id uint) error {
	return s.api.Delete(ctx, AddressPath(id))
}

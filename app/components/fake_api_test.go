package components

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/services"
)

// fakeAPI is an in-memory address API that records every call.
type fakeAPI struct {
	addresses []models.Address
	nextID    uint
	calls     []string
	payloads  []models.Address
	failOn    map[string]error
}

func newFakeAPI(addresses ...models.Address) *fakeAPI {
	f := &fakeAPI{nextID: 100, failOn: map[string]error{}}
	f.addresses = append(f.addresses, addresses...)
	return f
}

func (f *fakeAPI) record(method, path string) error {
	f.calls = append(f.calls, method+" "+path)
	return f.failOn[method]
}

func idFromPath(path string) uint {
	id, _ := strconv.ParseUint(strings.TrimPrefix(path, services.AddressesPath+"/"), 10, 64)
	return uint(id)
}

func (f *fakeAPI) Get(ctx context.Context, path string, out interface{}) error {
	if err := f.record("GET", path); err != nil {
		return err
	}
	list := append([]models.Address(nil), f.addresses...)
	*(out.(*[]models.Address)) = list
	return nil
}

func (f *fakeAPI) Post(ctx context.Context, path string, in, out interface{}) error {
	if err := f.record("POST", path); err != nil {
		return err
	}
	addr := in.(models.Address)
	f.payloads = append(f.payloads, addr)
	f.nextID++
	addr.ID = f.nextID
	f.applyDefault(addr)
	f.addresses = append(f.addresses, addr)
	return nil
}

func (f *fakeAPI) Put(ctx context.Context, path string, in, out interface{}) error {
	if err := f.record("PUT", path); err != nil {
		return err
	}
	addr := in.(models.Address)
	f.payloads = append(f.payloads, addr)
	id := idFromPath(path)
	for i := range f.addresses {
		if f.addresses[i].ID == id {
			f.applyDefault(addr)
			f.addresses[i] = addr
			return nil
		}
	}
	return &services.APIError{StatusCode: 404, Message: "address not found"}
}

func (f *fakeAPI) Delete(ctx context.Context, path string) error {
	if err := f.record("DELETE", path); err != nil {
		return err
	}
	id := idFromPath(path)
	for i := range f.addresses {
		if f.addresses[i].ID == id {
			f.addresses = append(f.addresses[:i], f.addresses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("address %d: %w", id, errors.New("not found"))
}

// applyDefault demotes the others the way the real server does.
func (f *fakeAPI) applyDefault(addr models.Address) {
	if !addr.IsDefault {
		return
	}
	for i := range f.addresses {
		if f.addresses[i].ID != addr.ID {
			f.addresses[i].IsDefault = false
		}
	}
}

func sample(id uint, name string, isDefault bool) models.Address {
	return models.Address{
		ID:            id,
		FullName:      name,
		PhoneNumber:   "5550100",
		StreetAddress: "742 Evergreen Terrace",
		City:          "Springfield",
		State:         "OR",
		ZipCode:       "97403",
		IsDefault:     isDefault,
	}
}

func draft(name string) models.Address {
	a := sample(0, name, false)
	return a
}

func confirmWith(answer bool) ConfirmFunc {
	return func(string) bool { return answer }
}

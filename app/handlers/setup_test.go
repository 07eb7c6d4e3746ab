package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/models/migrations"
	"github.com/Rakhulsr/go-addressbook/app/repositories"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/Rakhulsr/go-addressbook/app/utils/renderer"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestRender() *render.Render {
	return renderer.New("../../templates", false)
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Username: "Jane", Email: email, Password: "secret123"}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedAddress(t *testing.T, db *gorm.DB, userID, name string, isDefault bool) models.Address {
	t.Helper()
	address := models.Address{
		UserID:        userID,
		FullName:      name,
		PhoneNumber:   "5551234567",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62701",
		IsDefault:     isDefault,
	}
	require.NoError(t, repositories.NewGormAddressRepository(db).CreateAddress(context.Background(), &address))
	return address
}

func loadAddresses(t *testing.T, db *gorm.DB, userID string) []models.Address {
	t.Helper()
	addresses, err := repositories.NewGormAddressRepository(db).FindAddressesByUserID(context.Background(), userID)
	require.NoError(t, err)
	return addresses
}

// asUser stands in for the API auth middleware.
func asUser(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), helpers.ContextKeyUserID, userID))
		}
		next.ServeHTTP(w, r)
	})
}

func newAPIRouter(db *gorm.DB) *mux.Router {
	h := NewAddressAPIHandler(render.New(), repositories.NewGormAddressRepository(db), helpers.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/addresses", h.ListAddresses).Methods("GET")
	router.HandleFunc("/addresses", h.CreateAddress).Methods("POST")
	router.HandleFunc("/addresses/{id}", h.UpdateAddress).Methods("PUT")
	router.HandleFunc("/addresses/{id}", h.DeleteAddress).Methods("DELETE")
	return router
}

// apiClientFactory serves the address API for userID and returns a factory
// of clients pointing at it.
func apiClientFactory(t *testing.T, db *gorm.DB, userID string) ClientFactory {
	t.Helper()
	srv := httptest.NewServer(asUser(userID, newAPIRouter(db)))
	t.Cleanup(srv.Close)

	return func(w http.ResponseWriter, r *http.Request) services.RESTClient {
		return services.NewAPIClient(srv.URL, "", 5*time.Second)
	}
}

// pageRequest builds a browser form request for a signed-in (or anonymous) visitor.
func pageRequest(method, target string, form url.Values, user *models.User) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != nil {
		ctx := context.WithValue(req.Context(), helpers.ContextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
		req = req.WithContext(ctx)
	}
	return req
}

func addressForm(name string) url.Values {
	return url.Values{
		"fullName":      {name},
		"phoneNumber":   {"5559876543"},
		"streetAddress": {"742 Evergreen Terrace"},
		"city":          {"Springfield"},
		"state":         {"OR"},
		"zipCode":       {"97475"},
	}
}

type fakeSessionStore struct {
	userID   string
	token    string
	selected uint
}

func (f *fakeSessionStore) GetUserID(r *http.Request) string { return f.userID }
func (f *fakeSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	f.userID = userID
	return nil
}
func (f *fakeSessionStore) GetAPIToken(r *http.Request) string { return f.token }
func (f *fakeSessionStore) SetAPIToken(w http.ResponseWriter, r *http.Request, token string) error {
	f.token = token
	return nil
}
func (f *fakeSessionStore) GetSelectedAddressID(r *http.Request) uint { return f.selected }
func (f *fakeSessionStore) SetSelectedAddressID(w http.ResponseWriter, r *http.Request, id uint) error {
	f.selected = id
	return nil
}
func (f *fakeSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	*f = fakeSessionStore{}
	return nil
}

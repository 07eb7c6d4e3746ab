package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Rakhulsr/go-addressbook/app/middlewares"
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/repositories"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type profileFixture struct {
	db     *gorm.DB
	user   *models.User
	router http.Handler
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	db := newTestDB(t)
	user := createUser(t, db, "jane@example.com")
	h := NewProfileHandler(newTestRender(), apiClientFactory(t, db, user.ID))

	router := mux.NewRouter()
	router.HandleFunc("/profile", h.ShowProfile).Methods("GET")
	router.HandleFunc("/profile/addresses/new", h.NewAddressForm).Methods("GET")
	router.HandleFunc("/profile/addresses", h.CreateAddress).Methods("POST")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}/edit", h.EditAddressForm).Methods("GET")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}", h.UpdateAddress).Methods("PUT")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}/delete", h.ConfirmDeleteAddress).Methods("GET")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}", h.DeleteAddress).Methods("DELETE")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}/default", h.SetDefaultAddress).Methods("POST")

	return &profileFixture{db: db, user: user, router: middlewares.MethodOverrideMiddleware(router)}
}

// assertSavedAndRedirected checks a post/redirect/get answer and returns the
// page the browser lands on.
func assertSavedAndRedirected(t *testing.T, rec *httptest.ResponseRecorder, path, message string) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, path, location.Path)
	assert.Equal(t, "success", location.Query().Get("status"))
	assert.Equal(t, message, location.Query().Get("message"))
	return location
}

func (f *profileFixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, pageRequest(method, target, form, f.user))
	return rec
}

func TestProfile_RedirectsAnonymousToLogin(t *testing.T) {
	f := newProfileFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, pageRequest(http.MethodGet, "/profile?tab=addresses", nil, nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login")
}

func TestProfile_UnknownTabShowsAddresses(t *testing.T) {
	f := newProfileFixture(t)
	seedAddress(t, f.db, f.user.ID, "Home Address", true)

	for _, target := range []string{"/profile", "/profile?tab=billing"} {
		rec := f.do(http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Saved addresses", target)
		assert.Contains(t, rec.Body.String(), "Home Address", target)
	}

	rec := f.do(http.MethodGet, "/profile?tab=profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@example.com")
	assert.NotContains(t, rec.Body.String(), "Saved addresses")
}

func TestProfile_SecurityTabIsPlaceholder(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(http.MethodGet, "/profile?tab=security", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not available yet")
}

func TestProfile_AddressesTabListsCards(t *testing.T) {
	f := newProfileFixture(t)
	home := seedAddress(t, f.db, f.user.ID, "Home Address", true)
	seedAddress(t, f.db, f.user.ID, "Office Address", false)
	seedAddress(t, f.db, "someone-else", "Not Mine", true)

	rec := f.do(http.MethodGet, "/profile?tab=addresses", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Home Address")
	assert.Contains(t, body, "Office Address")
	assert.NotContains(t, body, "Not Mine")
	assert.Contains(t, body, "Springfield, IL 62701")
	assert.Contains(t, body, "Default")
	assert.NotContains(t, body, fmt.Sprintf("/profile/addresses/%d/default", home.ID), "no set-default action on the default card")
}

func TestProfile_NewFormLocksDefaultOnEmptyList(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(http.MethodGet, "/profile/addresses/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `checked disabled`)
	assert.Contains(t, rec.Body.String(), `name="isDefault" value="true"`)

	seedAddress(t, f.db, f.user.ID, "Existing", true)
	rec = f.do(http.MethodGet, "/profile/addresses/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `checked disabled`)
}

func TestProfile_CreateFirstAddressBecomesDefault(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(http.MethodPost, "/profile/addresses", addressForm("First Address"))
	location := assertSavedAndRedirected(t, rec, "/profile", "Address saved.")
	assert.Equal(t, "addresses", location.Query().Get("tab"))

	rec = f.do(http.MethodGet, location.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First Address")
	assert.Contains(t, rec.Body.String(), "Address saved.")
	assert.NotContains(t, rec.Body.String(), "New address", "form is closed after saving")

	list := loadAddresses(t, f.db, f.user.ID)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault)
}

func TestProfile_CreateFollowsCheckboxWhenListNotEmpty(t *testing.T) {
	f := newProfileFixture(t)
	seedAddress(t, f.db, f.user.ID, "Home", true)

	rec := f.do(http.MethodPost, "/profile/addresses", addressForm("Second"))
	assertSavedAndRedirected(t, rec, "/profile", "Address saved.")

	list := loadAddresses(t, f.db, f.user.ID)
	require.Len(t, list, 2)
	assert.Equal(t, "Home", list[0].FullName)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)
}

func TestProfile_CreateShowsServerMessage(t *testing.T) {
	f := newProfileFixture(t)

	form := addressForm("")
	rec := f.do(http.MethodPost, "/profile/addresses", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "fullName is required.")
	assert.Contains(t, rec.Body.String(), "742 Evergreen Terrace", "the form keeps what was typed")
	assert.Empty(t, loadAddresses(t, f.db, f.user.ID))
}

func TestProfile_EditAndUpdate(t *testing.T) {
	f := newProfileFixture(t)
	home := seedAddress(t, f.db, f.user.ID, "Home", true)

	rec := f.do(http.MethodGet, fmt.Sprintf("/profile/addresses/%d/edit", home.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Home"`)
	assert.Contains(t, rec.Body.String(), `name="_method" value="PUT"`)

	form := addressForm("Home Renamed")
	form.Set("isDefault", "on")
	form.Set("_method", "PUT")
	rec = f.do(http.MethodPost, fmt.Sprintf("/profile/addresses/%d", home.ID), form)
	assertSavedAndRedirected(t, rec, "/profile", "Address updated.")

	list := loadAddresses(t, f.db, f.user.ID)
	require.Len(t, list, 1)
	assert.Equal(t, home.ID, list[0].ID)
	assert.Equal(t, "Home Renamed", list[0].FullName)
	assert.Equal(t, "97475", list[0].ZipCode)
	assert.True(t, list[0].IsDefault)
}

func TestProfile_EditUnknownAddressRedirects(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(http.MethodGet, "/profile/addresses/999/edit", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/profile?tab=addresses")
}

func TestProfile_SetDefault(t *testing.T) {
	f := newProfileFixture(t)
	home := seedAddress(t, f.db, f.user.ID, "Home", true)
	office := seedAddress(t, f.db, f.user.ID, "Office", false)

	rec := f.do(http.MethodPost, fmt.Sprintf("/profile/addresses/%d/default", office.ID), url.Values{})
	assertSavedAndRedirected(t, rec, "/profile", "Default address updated.")

	list := loadAddresses(t, f.db, f.user.ID)
	require.Len(t, list, 2)
	assert.Equal(t, office.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.Equal(t, "Office", list[0].FullName, "other fields are unchanged")
	assert.Equal(t, home.ID, list[1].ID)
	assert.False(t, list[1].IsDefault)
}

func TestProfile_DeleteNeedsConfirmation(t *testing.T) {
	f := newProfileFixture(t)
	home := seedAddress(t, f.db, f.user.ID, "Home", true)
	office := seedAddress(t, f.db, f.user.ID, "Office", false)

	rec := f.do(http.MethodGet, fmt.Sprintf("/profile/addresses/%d/delete", office.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure you want to delete this address?")

	rec = f.do(http.MethodPost, fmt.Sprintf("/profile/addresses/%d", office.ID), url.Values{"_method": {"DELETE"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, loadAddresses(t, f.db, f.user.ID), 2)

	rec = f.do(http.MethodPost, fmt.Sprintf("/profile/addresses/%d", office.ID), url.Values{"_method": {"DELETE"}, "confirm": {"yes"}})
	location := assertSavedAndRedirected(t, rec, "/profile", "Address deleted.")

	rec = f.do(http.MethodGet, location.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Office")

	list := loadAddresses(t, f.db, f.user.ID)
	require.Len(t, list, 1)
	assert.Equal(t, home.ID, list[0].ID)
}

func TestProfile_ExpiredSessionTokenIsRenewed(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "jane@example.com")
	seedAddress(t, db, user.ID, "Home Address", true)

	tokens, err := services.NewTokenService("secret", time.Hour)
	require.NoError(t, err)
	expired, err := services.NewTokenService("secret", -time.Minute)
	require.NoError(t, err)
	stale, err := expired.Issue(user.ID, user.Email)
	require.NoError(t, err)

	session := &fakeSessionStore{userID: user.ID, token: stale}
	authSvc := services.NewAuthService(repositories.NewUserRepository(db), session, tokens)

	srv := httptest.NewServer(middlewares.APIAuth(tokens, render.New())(newAPIRouter(db)))
	t.Cleanup(srv.Close)
	newClient := func(w http.ResponseWriter, r *http.Request) services.RESTClient {
		return services.NewAPIClient(srv.URL, authSvc.APIToken(w, r), 5*time.Second)
	}

	router := mux.NewRouter()
	router.HandleFunc("/profile", NewProfileHandler(newTestRender(), newClient).ShowProfile).Methods("GET")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, pageRequest(http.MethodGet, "/profile?tab=addresses", nil, user))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Home Address")

	assert.NotEqual(t, stale, session.token)
	claims, err := tokens.Validate(session.token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

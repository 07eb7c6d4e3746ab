package helpers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/models/other"
	"github.com/Rakhulsr/go-addressbook/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

const AppName = "Address Book"

func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = AppName
	}
	if _, exists := pageSpecificData["Breadcrumbs"]; !exists {
		pageSpecificData["Breadcrumbs"] = []breadcrumb.Breadcrumb{}
	}
	if _, exists := pageSpecificData["IsAuthPage"]; !exists {
		pageSpecificData["IsAuthPage"] = false
	}

	pageSpecificData["IsLoggedIn"] = false
	pageSpecificData["User"] = nil
	if userVal := r.Context().Value(ContextKeyUser); userVal != nil {
		if user, ok := userVal.(*models.User); ok && user != nil {
			pageSpecificData["User"] = other.NewUserForTemplate(user)
			pageSpecificData["IsLoggedIn"] = true
		} else {
			log.Printf("GetBaseData: User in context is not of type *models.User or is nil. Value: %+v", userVal)
		}
	}

	pageSpecificData["CSRFField"] = csrf.TemplateField(r)

	if _, exists := pageSpecificData["MessageStatus"]; !exists {
		pageSpecificData["MessageStatus"] = r.URL.Query().Get("status")
	}
	if _, exists := pageSpecificData["Message"]; !exists {
		pageSpecificData["Message"] = r.URL.Query().Get("message")
	}

	return pageSpecificData
}

// RedirectWithMessage follows the status/message query convention the
// templates read flash banners from.
func RedirectWithMessage(w http.ResponseWriter, r *http.Request, path, status, message string) {
	target := path
	if status != "" || message != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target = fmt.Sprintf("%s%sstatus=%s&message=%s", path, sep, url.QueryEscape(status), url.QueryEscape(message))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// NewValidator reports field names using their json tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", field)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", field, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", field, err.Param())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", field)
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check.", field, err.Tag())
		}
	}
	return errorMessages
}

// FirstValidationMessage joins the messages in a stable order for one-line banners.
func FirstValidationMessage(messages map[string]string, order []string) string {
	for _, field := range order {
		if msg, ok := messages[field]; ok {
			return msg
		}
	}
	for _, msg := range messages {
		return msg
	}
	return ""
}

func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// AddressFromForm reads the address fields posted by the HTML forms.
func AddressFromForm(r *http.Request) models.Address {
	address := models.Address{
		FullName:      strings.TrimSpace(r.FormValue("fullName")),
		PhoneNumber:   strings.TrimSpace(r.FormValue("phoneNumber")),
		StreetAddress: strings.TrimSpace(r.FormValue("streetAddress")),
		City:          strings.TrimSpace(r.FormValue("city")),
		State:         strings.TrimSpace(r.FormValue("state")),
		ZipCode:       strings.TrimSpace(r.FormValue("zipCode")),
		IsDefault:     r.FormValue("isDefault") == "on" || r.FormValue("isDefault") == "true",
	}
	if id, err := ParseID(r.FormValue("id")); err == nil {
		address.ID = id
	}
	return address
}

// AddressFieldOrder is the order the address form lists its fields in.
var AddressFieldOrder = []string{"fullName", "phoneNumber", "streetAddress", "city", "state", "zipCode"}

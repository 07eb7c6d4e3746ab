package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/Rakhulsr/go-addressbook/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render    *render.Render
	authSvc   *services.AuthService
	validator *validator.Validate
}

func NewAuthHandler(r *render.Render, authSvc *services.AuthService, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:    r,
		authSvc:   authSvc,
		validator: validator,
	}
}

type RegisterForm struct {
	Username        string `json:"username" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (h *AuthHandler) authPage(w http.ResponseWriter, r *http.Request, template, title, path string) {
	if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string); ok && userID != "" {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: title, URL: path},
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       title,
		"Breadcrumbs": breadcrumbs,
		"IsAuthPage":  true,
	})
	_ = h.render.HTML(w, http.StatusOK, template, data)
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.authPage(w, r, "auth/login", "Sign In", "/login")
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPostHandler: Error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Could not read the submitted form.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := h.authSvc.Login(w, r, email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("LoginPostHandler: Invalid credentials for email: %s", email)
			helpers.RedirectWithMessage(w, r, "/login", "error", "Incorrect email or password.")
			return
		}
		log.Printf("LoginPostHandler: Error signing in %s: %v", email, err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Something went wrong. Please try again.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/profile", "success", "Welcome back, "+user.Username+"!")
}

func (h *AuthHandler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.authPage(w, r, "auth/register", "Create Account", "/register")
}

func (h *AuthHandler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("RegisterPostHandler: Error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/register", "error", "Could not read the submitted form.")
		return
	}

	form := RegisterForm{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		message := "Please check the form."
		if errors.As(err, &verrs) {
			message = helpers.FirstValidationMessage(helpers.FormatValidationErrors(verrs),
				[]string{"username", "email", "password", "confirm_password"})
		}
		helpers.RedirectWithMessage(w, r, "/register", "error", message)
		return
	}

	if _, err := h.authSvc.Register(r.Context(), form.Username, form.Email, form.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			helpers.RedirectWithMessage(w, r, "/register", "error", "That email is already registered.")
			return
		}
		log.Printf("RegisterPostHandler: Error registering %s: %v", form.Email, err)
		helpers.RedirectWithMessage(w, r, "/register", "error", "Something went wrong. Please try again.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/login", "success", "Account created. You can sign in now.")
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(w, r); err != nil {
		log.Printf("LogoutHandler: Error clearing session: %v", err)
	}
	helpers.RedirectWithMessage(w, r, "/login", "success", "You have been signed out.")
}

package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-addressbook/app/configs"
	"github.com/Rakhulsr/go-addressbook/app/handlers"
	"github.com/Rakhulsr/go-addressbook/app/helpers"
	"github.com/Rakhulsr/go-addressbook/app/middlewares"
	"github.com/Rakhulsr/go-addressbook/app/repositories"
	"github.com/Rakhulsr/go-addressbook/app/services"
	"github.com/Rakhulsr/go-addressbook/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// Deps is everything the router wires its handlers from.
type Deps struct {
	Env          configs.ENV
	Keys         configs.SessionKeys
	DB           *gorm.DB
	Render       *render.Render
	SessionStore sessions.SessionStore
	Tokens       *services.TokenService
	Registry     *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	validate := helpers.NewValidator()

	userRepo := repositories.NewUserRepository(d.DB)
	addressRepo := repositories.NewGormAddressRepository(d.DB)
	authSvc := services.NewAuthService(userRepo, d.SessionStore, d.Tokens)

	newClient := func(w http.ResponseWriter, r *http.Request) services.RESTClient {
		return services.NewAPIClient(d.Env.APIBaseURL, authSvc.APIToken(w, r), d.Env.APITimeout)
	}

	homeHandler := handlers.NewHomeHandler(d.Render, d.DB)
	authHandler := handlers.NewAuthHandler(d.Render, authSvc, validate)
	profileHandler := handlers.NewProfileHandler(d.Render, newClient)
	checkoutHandler := handlers.NewCheckoutAddressHandler(d.Render, newClient, d.SessionStore)
	addressAPIHandler := handlers.NewAddressAPIHandler(d.Render, addressRepo, validate)

	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := middlewares.NewMetrics(registry)

	router := mux.NewRouter()
	router.Use(middlewares.RequestID, metrics.Middleware)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
	router.HandleFunc("/healthz", homeHandler.Healthz).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.APIAuth(d.Tokens, d.Render))
	api.HandleFunc("/addresses", addressAPIHandler.ListAddresses).Methods("GET")
	api.HandleFunc("/addresses", addressAPIHandler.CreateAddress).Methods("POST")
	api.HandleFunc("/addresses/{id:[0-9]+}", addressAPIHandler.UpdateAddress).Methods("PUT")
	api.HandleFunc("/addresses/{id:[0-9]+}", addressAPIHandler.DeleteAddress).Methods("DELETE")

	web := router.NewRoute().Subrouter()
	if !d.Env.IsProduction() {
		web.Use(middlewares.PlaintextCSRF)
	}
	web.Use(csrf.Protect(d.Keys.CSRFKey,
		csrf.Secure(d.Env.IsProduction()),
		csrf.Path("/"),
		csrf.FieldName("csrf_token"),
	))
	web.Use(middlewares.LoadUser(authSvc))

	web.HandleFunc("/", homeHandler.Home).Methods("GET")
	web.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	web.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	web.HandleFunc("/register", authHandler.RegisterGetHandler).Methods("GET")
	web.HandleFunc("/register", authHandler.RegisterPostHandler).Methods("POST")
	web.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")

	web.HandleFunc("/profile", profileHandler.ShowProfile).Methods("GET")
	web.HandleFunc("/profile/addresses/new", profileHandler.NewAddressForm).Methods("GET")
	web.HandleFunc("/profile/addresses", profileHandler.CreateAddress).Methods("POST")
	web.HandleFunc("/profile/addresses/{id:[0-9]+}/edit", profileHandler.EditAddressForm).Methods("GET")
	web.HandleFunc("/profile/addresses/{id:[0-9]+}", profileHandler.UpdateAddress).Methods("PUT")
	web.HandleFunc("/profile/addresses/{id:[0-9]+}/delete", profileHandler.ConfirmDeleteAddress).Methods("GET")
	web.HandleFunc("/profile/addresses/{id:[0-9]+}", profileHandler.DeleteAddress).Methods("DELETE")
	web.HandleFunc("/profile/addresses/{id:[0-9]+}/default", profileHandler.SetDefaultAddress).Methods("POST")

	checkout := web.PathPrefix("/checkout").Subrouter()
	checkout.Use(middlewares.RequireUser)
	checkout.HandleFunc("/addresses", checkoutHandler.ShowAddresses).Methods("GET")
	checkout.HandleFunc("/addresses", checkoutHandler.CreateAddress).Methods("POST")
	checkout.HandleFunc("/addresses/select", checkoutHandler.SelectAddress).Methods("POST")
	checkout.HandleFunc("/addresses/new", checkoutHandler.NewAddressForm).Methods("GET")
	checkout.HandleFunc("/addresses/{id:[0-9]+}/delete", checkoutHandler.ConfirmDeleteAddress).Methods("GET")
	checkout.HandleFunc("/addresses/{id:[0-9]+}", checkoutHandler.DeleteAddress).Methods("DELETE")

	return middlewares.MethodOverrideMiddleware(router)
}

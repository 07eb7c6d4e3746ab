package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HomeHandler struct {
	render *render.Render
	db     *gorm.DB
}

func NewHomeHandler(r *render.Render, db *gorm.DB) *HomeHandler {
	return &HomeHandler{
		render: r,
		db:     db,
	}
}

// Home sends visitors to their account, or to the login page via the
// profile gate.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *HomeHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		log.Printf("Healthz: Database ping failed: %v", err)
		_ = h.render.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/tableside/config"
	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/database/dbhelper"
	"github.com/ray-remotestate/tableside/notify"
	"github.com/ray-remotestate/tableside/utils"
)

// Handler owns the HTTP surface; every dependency is injected at
// construction so nothing reaches for process-wide state.
type Handler struct {
	cfg         *config.Config
	menu        *dbhelper.MenuStore
	orders      *dbhelper.OrderStore
	restaurants *dbhelper.RestaurantStore
	users       *dbhelper.UserStore
	hub         *notify.Hub
}

func New(cfg *config.Config, db *database.DB, hub *notify.Hub) *Handler {
	return &Handler{
		cfg:         cfg,
		menu:        dbhelper.NewMenuStore(db),
		orders:      dbhelper.NewOrderStore(db),
		restaurants: dbhelper.NewRestaurantStore(db),
		users:       dbhelper.NewUserStore(db),
		hub:         hub,
	}
}

// serverError hides store errors behind a generic message outside of
// development, mirroring what the UI expects.
func (h *Handler) serverError(w http.ResponseWriter, message string, err error) {
	logrus.WithError(err).Error(message)
	if h.cfg.IsDevelopment() {
		utils.RespondError(w, http.StatusInternalServerError, message, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, message)
}

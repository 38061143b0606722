package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ray-remotestate/tableside/config"
	"github.com/ray-remotestate/tableside/handlers"
	"github.com/ray-remotestate/tableside/middlewares"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/notify"
	"github.com/ray-remotestate/tableside/utils"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(cfg *config.Config, h *handlers.Handler, hub *notify.Hub) *Server {
	router := mux.NewRouter()
	router.Use(middlewares.CORS(cfg.AllowedOrigins))

	// mux only runs middleware on matched routes and every route below is
	// method-restricted, so preflight requests need a route of their own for
	// the CORS middleware to answer.
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"alive":        true,
			"adminClients": hub.ClientCount(),
		})
	}).Methods("GET")

	router.HandleFunc("/register", h.Register).Methods("POST")
	router.HandleFunc("/login", h.Login).Methods("POST")
	router.HandleFunc("/refresh", h.RefreshToken).Methods("POST")
	router.HandleFunc("/logout", h.Logout).Methods("POST")

	// admin clients receive new-order pushes here
	router.Handle("/ws", hub)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/menu", h.ListMenu).Methods("GET")
	api.HandleFunc("/menu", h.CreateMenuItem).Methods("POST")
	api.HandleFunc("/menu/category/{category}", h.ListMenuByCategory).Methods("GET")
	api.HandleFunc("/menu/{id}", h.UpdateMenuItem).Methods("PUT")
	api.HandleFunc("/menu/{id}", h.DeleteMenuItem).Methods("DELETE")

	authOnly := middlewares.Auth(cfg.SecretKey)

	api.HandleFunc("/orders", h.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", h.ListOrders).Methods("GET")
	// registered before /orders/{id} so the literal path wins
	api.Handle("/orders/my-orders", authOnly(http.HandlerFunc(h.MyOrders))).Methods("GET")
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods("PATCH")
	api.HandleFunc("/orders/{id}/cancel", h.CancelOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", h.DeleteOrder).Methods("DELETE")

	api.HandleFunc("/restaurants", h.ListRestaurants).Methods("GET")
	api.HandleFunc("/restaurants/{id}", h.GetRestaurant).Methods("GET")
	api.HandleFunc("/restaurants/{id}/menu", h.GetRestaurantMenu).Methods("GET")

	api.HandleFunc("/qr/tables", h.TableQRCodes).Methods("GET")
	api.HandleFunc("/qr/generate/{tableNumber}", h.GenerateTableQR).Methods("GET")

	api.Handle("/restaurants/{id}/reviews", authOnly(http.HandlerFunc(h.AddReview))).Methods("POST")

	// admin only
	admin := router.PathPrefix("/api").Subrouter()
	admin.Use(middlewares.Auth(cfg.SecretKey))
	admin.Use(middlewares.RequireRole(models.RoleAdmin))

	admin.HandleFunc("/restaurants", h.CreateRestaurant).Methods("POST")
	admin.HandleFunc("/restaurants/{id}", h.UpdateRestaurant).Methods("PUT")
	admin.HandleFunc("/restaurants/{id}", h.DeleteRestaurant).Methods("DELETE")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(addr string) error {
	svr.server = &http.Server{
		Addr:              addr,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}

package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ray-remotestate/calluna/handlers"
	"github.com/ray-remotestate/calluna/middlewares"
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

func SetupRoutes(h *handlers.Handler, auth *middlewares.Authenticator) *Server {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	router.Use(auth.AuthMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	api := routeGroup{router: router, prefix: "/api"}

	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")
	api.HandleFunc("/auth/logout", h.Logout).Methods("POST", "GET")
	api.Handle("/auth/user", middlewares.RequireAuth(http.HandlerFunc(h.CurrentUser))).Methods("GET")

	api.HandleFunc("/tables", h.ListTables).Methods("GET")
	api.HandleFunc("/locations", h.ListLocations).Methods("GET")
	api.HandleFunc("/menu/categories", h.ListMenuCategories).Methods("GET")
	api.HandleFunc("/menu/items", h.ListMenuItems).Methods("GET")
	api.HandleFunc("/gallery", h.ListGalleryImages).Methods("GET")
	api.HandleFunc("/contact", h.ListContactInfo).Methods("GET")
	api.HandleFunc("/hours", h.ListOpeningHours).Methods("GET")
	api.HandleFunc("/bookings/date/{date}", h.BookingsByDate).Methods("GET")
	api.HandleFunc("/bookings", h.CreateBooking).Methods("POST")
	api.HandleFunc("/availability", h.Availability).Methods("GET")
	api.HandleFunc("/settings/registration", h.RegistrationStatus).Methods("GET")

	// admin only
	admin := routeGroup{router: router, prefix: "/api/admin", wrap: middlewares.RequireAdmin}

	admin.HandleFunc("/bookings", h.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}", h.GetBooking).Methods("GET")
	admin.HandleFunc("/bookings/{id}", h.UpdateBookingStatus).Methods("PATCH")
	admin.HandleFunc("/bookings/{id}", h.UpdateBooking).Methods("PUT")
	admin.HandleFunc("/bookings/{id}", h.CancelBooking).Methods("DELETE")

	admin.HandleFunc("/tables", h.ListAllTables).Methods("GET")
	admin.HandleFunc("/tables", h.CreateTable).Methods("POST")
	admin.HandleFunc("/tables/{id}", h.GetTable).Methods("GET")
	admin.HandleFunc("/tables/{id}", h.UpdateTable).Methods("PATCH", "PUT")
	admin.HandleFunc("/tables/{id}", h.DeleteTable).Methods("DELETE")
	admin.HandleFunc("/tables/{id}/position", h.MoveTable).Methods("PATCH")

	admin.HandleFunc("/locations", h.CreateLocation).Methods("POST")
	admin.HandleFunc("/locations/{id}", h.GetLocation).Methods("GET")
	admin.HandleFunc("/locations/{id}", h.UpdateLocation).Methods("PATCH", "PUT")
	admin.HandleFunc("/locations/{id}", h.DeleteLocation).Methods("DELETE")

	admin.HandleFunc("/floor-plan-elements", h.ListFloorPlanElements).Methods("GET")
	admin.HandleFunc("/floor-plan-elements", h.CreateFloorPlanElement).Methods("POST")
	admin.HandleFunc("/floor-plan-elements/{id}", h.GetFloorPlanElement).Methods("GET")
	admin.HandleFunc("/floor-plan-elements/{id}", h.UpdateFloorPlanElement).Methods("PATCH", "PUT")
	admin.HandleFunc("/floor-plan-elements/{id}", h.DeleteFloorPlanElement).Methods("DELETE")
	admin.HandleFunc("/floor-plan-elements/{id}/position", h.MoveFloorPlanElement).Methods("PATCH")

	admin.HandleFunc("/menu/categories", h.CreateMenuCategory).Methods("POST")
	admin.HandleFunc("/menu/categories/{id}", h.GetMenuCategory).Methods("GET")
	admin.HandleFunc("/menu/categories/{id}", h.UpdateMenuCategory).Methods("PATCH", "PUT")
	admin.HandleFunc("/menu/categories/{id}", h.DeleteMenuCategory).Methods("DELETE")
	admin.HandleFunc("/menu/items", h.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/menu/items/{id}", h.GetMenuItem).Methods("GET")
	admin.HandleFunc("/menu/items/{id}", h.UpdateMenuItem).Methods("PATCH", "PUT")
	admin.HandleFunc("/menu/items/{id}", h.DeleteMenuItem).Methods("DELETE")

	admin.HandleFunc("/gallery", h.CreateGalleryImage).Methods("POST")
	admin.HandleFunc("/gallery/{id}", h.GetGalleryImage).Methods("GET")
	admin.HandleFunc("/gallery/{id}", h.UpdateGalleryImage).Methods("PATCH", "PUT")
	admin.HandleFunc("/gallery/{id}", h.DeleteGalleryImage).Methods("DELETE")

	admin.HandleFunc("/contact", h.CreateContactInfo).Methods("POST")
	admin.HandleFunc("/contact/{id}", h.GetContactInfo).Methods("GET")
	admin.HandleFunc("/contact/{id}", h.UpdateContactInfo).Methods("PATCH", "PUT")
	admin.HandleFunc("/contact/{id}", h.DeleteContactInfo).Methods("DELETE")

	admin.HandleFunc("/hours", h.CreateOpeningHours).Methods("POST")
	admin.HandleFunc("/hours/{id}", h.GetOpeningHours).Methods("GET")
	admin.HandleFunc("/hours/{id}", h.UpdateOpeningHours).Methods("PATCH", "PUT")
	admin.HandleFunc("/hours/{id}", h.DeleteOpeningHours).Methods("DELETE")

	admin.HandleFunc("/settings", h.SetSystemSetting).Methods("POST")
	admin.HandleFunc("/settings/{key}", h.GetSystemSetting).Methods("GET")

	return &Server{
		Router: router,
	}
}

// routeGroup registers prefixed routes on the root router. Nested mux
// subrouters answer a wrong method with 404 instead of 405.
type routeGroup struct {
	router *mux.Router
	prefix string
	wrap   func(http.Handler) http.Handler
}

func (g routeGroup) Handle(path string, handler http.Handler) *mux.Route {
	if g.wrap != nil {
		handler = g.wrap(handler)
	}
	return g.router.Handle(g.prefix+path, handler)
}

func (g routeGroup) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
	return g.Handle(path, http.HandlerFunc(f))
}

// Handler is the router wrapped in the outer middleware chain; unmatched
// routes pass through it too.
func (svr *Server) Handler() http.Handler {
	return middlewares.CORS(middlewares.Recovery(middlewares.Logging(svr.Router)))
}

func (svr *Server) Run(addr string) error {
	svr.server = &http.Server{
		Addr:              addr,
		Handler:           svr.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	if svr.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}

package network

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/territoryarena/server/roomserver"
)

// NewRouter builds the HTTP router serving one room: GET /health and the
// GET /ws upgrade endpoint, both wrapped in combined (Apache-style) access
// logging.
func NewRouter(hub *Hub, room *roomserver.Room) *mux.Router {
	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/health", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(HealthHandler),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := r.URL.Query().Get("name")
			if name == "" {
				name = "Player"
			}
			ServeWs(hub, room, name, w, r)
		}),
	)).Methods("GET")

	return router
}

// ListenAndServe starts the HTTP server for router on addr (e.g. ":8080").
func ListenAndServe(addr string, router *mux.Router) error {
	return http.ListenAndServe(addr, router)
}

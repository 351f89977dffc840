package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hexfieldgame/hexfield/pkg/api/handlers"
	"github.com/hexfieldgame/hexfield/pkg/api/middleware"
	"github.com/hexfieldgame/hexfield/pkg/events"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
	"github.com/hexfieldgame/hexfield/pkg/log"
	"github.com/hexfieldgame/hexfield/pkg/repositories"
	"github.com/hexfieldgame/hexfield/pkg/workers"
)

// saveRequestTimeout bounds how long a save API call waits for the worker.
const saveRequestTimeout = 30 * time.Second

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port            int
	TLS             *TLSConfig
	AdminToken      string
	GameList        *gamelist.GameList
	Repository      repositories.Repository
	EventBus        *events.Bus
	SaveRequestChan chan<- workers.SaveGameRequest
	SaveDir         string
}

// NewAPIServer creates a new http.Server for handling admin API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	adminAuth := middleware.NewAdminAuthMiddleware(opts.AdminToken)

	mux := http.NewServeMux()
	mux.Handle("GET /games", adminAuth(handlers.HandleListGames(opts.GameList)))
	mux.Handle("POST /games/{gameName}/save", adminAuth(handlers.HandleSaveGame(opts.SaveRequestChan, saveRequestTimeout)))
	mux.Handle("POST /games/load", adminAuth(handlers.HandleLoadGame(opts.GameList, opts.SaveDir, opts.EventBus)))
	mux.Handle("GET /saves", adminAuth(handlers.HandleListSaves(opts.Repository)))
	mux.Handle("GET /events", adminAuth(handlers.HandleEvents(opts.EventBus)))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

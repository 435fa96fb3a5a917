package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ralim/listcreation/history"
	"github.com/ralim/listcreation/settings"
	"github.com/ralim/listcreation/webpart"
	"github.com/ralim/listcreation/webui"
	"github.com/rs/zerolog/log"
)

//Server is the host page for the web part, and the endpoints the host uses to drive it

type Server struct {
	part       *webpart.WebPart
	webui      *webui.WebUI
	settings   *settings.Settings
	httpServer *http.Server
}

// NewServer wires up the host, store may be nil when history is disabled
func NewServer(part *webpart.WebPart, store history.Store, settings *settings.Settings) *Server {
	server := &Server{
		part:     part,
		webui:    webui.NewWebUI(part, store),
		settings: settings,
	}
	// First render binds the click handlers, before any page has been served
	if err := part.Render(); err != nil {
		log.Error().Err(err).Msg("Initial web part render failed")
	}
	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", settings.HTTPPort),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server
}

// Run starts serving in the background
func (server *Server) Run() {
	log.Info().Int("port", server.settings.HTTPPort).Msg("Starting HTTP server")
	go server.StartHTTP()
}

func (server *Server) StartHTTP() {
	err := server.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server failed")
	}
}

func (server *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("HTTP server didn't shut down cleanly")
	}
}

package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/justinas/alice"
	"github.com/klauspost/compress/gzhttp"
	"github.com/ralim/listcreation/webpart"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Handler is the full routing table wrapped in the logging and compression middleware
func (server *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", server.httpHandleIndex)
	r.Get("/index.html", server.httpHandleIndex)
	r.Post("/click/{elementID}", server.httpHandleClick)
	r.Post("/theme", server.httpHandleTheme)
	r.Get("/propertypane.json", server.httpHandlePropertyPane)
	r.Put("/properties", server.httpHandleProperties)
	r.Get("/history", server.httpHandleHistoryPage)
	r.Get("/history.json", server.httpHandleHistoryJSON)
	r.Get("/listcreation.css", server.httpHandleCSS)
	r.Get("/assets/*", server.httpHandleAsset)

	chain := alice.New(
		hlog.NewHandler(log.Logger),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("HTTP Request")
		}),
		hlog.RemoteAddrHandler("ip"),
		hlog.RequestIDHandler("req_id", "Request-Id"),
		compress,
	)
	return chain.Then(r)
}

func compress(h http.Handler) http.Handler {
	return gzhttp.GzipHandler(h)
}

func (server *Server) httpHandleIndex(respWriter http.ResponseWriter, r *http.Request) {
	server.writeHostPage(respWriter, r, http.StatusOK, nil)
}

// httpHandleClick is the button press: the posted form holds the input values at click time
func (server *Server) httpHandleClick(respWriter http.ResponseWriter, r *http.Request) {
	elementID := chi.URLParam(r, "elementID")
	if err := r.ParseForm(); err != nil {
		http.Error(respWriter, "Invalid form", http.StatusBadRequest)
		return
	}

	collector := &webpart.Collector{}
	// Once clicked the pass runs to completion, even if the browser goes away
	ctx := context.WithoutCancel(r.Context())
	err := server.part.Container().Click(ctx, elementID, r.PostForm, collector)
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, webpart.ErrBusy):
		collector.Notify(webpart.MessageBusy)
		status = http.StatusConflict
	case errors.Is(err, webpart.ErrNoHandler):
		http.Error(respWriter, "Nothing to click", http.StatusNotFound)
		return
	default:
		hlog.FromRequest(r).Error().Err(err).Str("element", elementID).Msg("Click handler failed")
		http.Error(respWriter, "Click failed", http.StatusInternalServerError)
		return
	}
	server.writeHostPage(respWriter, r, status, collector.Messages())
}

func (server *Server) writeHostPage(respWriter http.ResponseWriter, r *http.Request, status int, notifications []string) {
	page := &bytes.Buffer{}
	if err := server.webui.RenderHostPage(page, notifications); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Rendering host page failed")
		http.Error(respWriter, "Rendering page failed", http.StatusInternalServerError)
		return
	}
	respWriter.Header().Set("Content-Type", "text/html; charset=UTF-8")
	respWriter.WriteHeader(status)
	_, _ = respWriter.Write(page.Bytes())
}

func (server *Server) httpHandleHistoryPage(respWriter http.ResponseWriter, r *http.Request) {
	page := &bytes.Buffer{}
	if err := server.webui.RenderHistory(r.Context(), page); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Rendering history failed")
		http.Error(respWriter, "Rendering page failed", http.StatusInternalServerError)
		return
	}
	respWriter.Header().Set("Content-Type", "text/html; charset=UTF-8")
	_, _ = respWriter.Write(page.Bytes())
}

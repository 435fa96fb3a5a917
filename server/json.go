package server

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/ralim/listcreation/webpart"
	"github.com/rs/zerolog/hlog"
)

// JSON endpoints the host uses to configure the web part

type propertyPaneResponse struct {
	DataVersion string `json:"dataVersion"`
	webpart.PropertyPaneConfiguration
}

type themeResponse struct {
	IsDarkTheme bool `json:"isDarkTheme"`
}

func (server *Server) httpHandlePropertyPane(respWriter http.ResponseWriter, r *http.Request) {
	render.JSON(respWriter, r, propertyPaneResponse{
		DataVersion:               webpart.DataVersion,
		PropertyPaneConfiguration: server.part.PropertyPaneConfiguration(),
	})
}

// httpHandleTheme is the host's theme-change notification, a null theme is ignored
func (server *Server) httpHandleTheme(respWriter http.ResponseWriter, r *http.Request) {
	var theme *webpart.Theme
	if err := render.DecodeJSON(r.Body, &theme); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(respWriter, r, "invalid theme")
		return
	}
	server.part.OnThemeChanged(theme)
	render.JSON(respWriter, r, themeResponse{IsDarkTheme: server.part.IsDarkTheme()})
}

func (server *Server) httpHandleHistoryJSON(respWriter http.ResponseWriter, r *http.Request) {
	attempts, err := server.webui.RecentAttempts(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Loading history failed")
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(respWriter, r, "")
		return
	}
	render.JSON(respWriter, r, attempts)
}

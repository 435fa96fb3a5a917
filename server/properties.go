package server

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/ralim/listcreation/webpart"
)

// httpHandleProperties stores new web part properties, they show from the next render
func (server *Server) httpHandleProperties(respWriter http.ResponseWriter, r *http.Request) {
	properties := webpart.Properties{}
	if err := render.DecodeJSON(r.Body, &properties); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(respWriter, r, "invalid properties")
		return
	}
	server.part.SetProperties(properties)

	server.settings.SetDescription(properties.Description)

	render.JSON(respWriter, r, server.part.Properties())
}

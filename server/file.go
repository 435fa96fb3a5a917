package server

import (
	"io/fs"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/ralim/listcreation/webui"
)

// Static files the rendered markup links to, all embedded in the binary

func (server *Server) httpHandleCSS(respWriter http.ResponseWriter, r *http.Request) {
	respWriter.Header().Set("Content-Type", "text/css")
	_, err := respWriter.Write(webui.StyleSheet)
	if err != nil {
		http.Error(respWriter, "Sending file failed", http.StatusInternalServerError)
		return
	}
}

func (server *Server) httpHandleAsset(respWriter http.ResponseWriter, r *http.Request) {
	name := path.Clean(chi.URLParam(r, "*"))
	data, err := fs.ReadFile(webui.Assets(), name)
	if err != nil {
		http.Error(respWriter, "Path not found", http.StatusNotFound)
		return
	}
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		respWriter.Header().Set("Content-Type", contentType)
	}
	respWriter.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = respWriter.Write(data)
}

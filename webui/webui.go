package webui

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/ralim/listcreation/history"
	"github.com/ralim/listcreation/webpart"
)

//go:embed templates/index.html
var hostPageTemplateSource string

//go:embed templates/history.html
var historyPageTemplateSource string

//go:embed templates/listcreation.css
var StyleSheet []byte

//go:embed assets/*.svg
var assetFiles embed.FS

var (
	hostPageTemplate    = template.Must(template.New("index").Parse(hostPageTemplateSource))
	historyPageTemplate = template.Must(template.New("history").Parse(historyPageTemplateSource))
)

// WebUI is the host page the web part is rendered into, plus the pages around it

type WebUI struct {
	part    *webpart.WebPart
	history history.Store
}

// NewWebUI wraps the web part, history may be nil
func NewWebUI(part *webpart.WebPart, store history.Store) *WebUI {
	return &WebUI{
		part:    part,
		history: store,
	}
}

// Assets is the static files the rendered markup links to
func Assets() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

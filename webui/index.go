package webui

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ralim/listcreation/webpart"
)

type hostPage struct {
	Dark          bool
	Style         template.CSS
	Content       template.HTML
	Notifications []string
}

// RenderHostPage renders the web part into its container and writes the page around it.
// Any notifications are shown in a modal dialog over the page.
func (web *WebUI) RenderHostPage(writer io.Writer, notifications []string) error {
	content, err := web.part.RenderContent()
	if err != nil {
		return err
	}
	page := hostPage{
		Dark:          web.part.IsDarkTheme(),
		Style:         web.part.Container().Style(),
		Content:       content,
		Notifications: notifications,
	}
	if err := hostPageTemplate.Execute(writer, page); err != nil {
		return fmt.Errorf("%w - %v", webpart.ErrBadTemplate, err)
	}
	return nil
}

package sphttp

import (
	"net/url"
	"strings"
)

// BaseTemplateGenericList selects the plain "custom list" template
const BaseTemplateGenericList = 100

// ListDefinition is the body posted to create a list. Field order is part of the wire format.
type ListDefinition struct {
	Title               string `json:"Title"`
	Description         string `json:"Description"`
	AllowContentTypes   bool   `json:"AllowContentTypes"`
	BaseTemplate        int    `json:"BaseTemplate"`
	ContentTypesEnabled bool   `json:"ContentTypesEnabled"`
}

func NewListDefinition(title, description string) ListDefinition {
	return ListDefinition{
		Title:               title,
		Description:         description,
		AllowContentTypes:   true,
		BaseTemplate:        BaseTemplateGenericList,
		ContentTypesEnabled: true,
	}
}

// ListsURL is the collection endpoint new lists are posted to
func ListsURL(webAbsoluteURL string) string {
	return strings.TrimRight(webAbsoluteURL, "/") + "/_api/web/lists"
}

// ListByTitleURL builds the GetByTitle lookup for a list.
// With encode unset the title is interpolated as-is, which breaks on quotes and reserved characters.
func ListByTitleURL(webAbsoluteURL, title string, encode bool) string {
	if encode {
		title = url.PathEscape(strings.ReplaceAll(title, "'", "''"))
	}
	return ListsURL(webAbsoluteURL) + "/GetByTitle('" + title + "')"
}

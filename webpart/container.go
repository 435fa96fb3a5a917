package webpart

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoHandler      = errors.New("no click handler bound")
	ErrUnknownElement = errors.New("element not present in container")
)

// ClickHandler is run when a bound element is clicked, with the values of the container's inputs at click time
type ClickHandler func(ctx context.Context, form url.Values, notify Notifier) error

// Only plain colour values may be written into the style attribute
var safeStyleValue = regexp.MustCompile(`^[#A-Za-z0-9(),.%\s-]+$`)

// Container is the region of the host page a web part renders into.
// It holds the rendered markup, the custom style properties and the bound click listeners.
type Container struct {
	sync.Mutex
	content   template.HTML
	style     map[string]string
	listeners map[string]ClickHandler
}

func NewContainer() *Container {
	return &Container{
		style:     make(map[string]string),
		listeners: make(map[string]ClickHandler),
	}
}

func (c *Container) Content() template.HTML {
	c.Lock()
	defer c.Unlock()
	return c.content
}

// Replace swaps in new markup together with its listeners, clicks see either the old pair or the new one
func (c *Container) Replace(content template.HTML, listeners map[string]ClickHandler) error {
	bound := make(map[string]ClickHandler, len(listeners))
	for elementID, handler := range listeners {
		if !strings.Contains(string(content), `id="`+elementID+`"`) {
			return fmt.Errorf("%w: %s", ErrUnknownElement, elementID)
		}
		bound[elementID] = handler
	}
	c.Lock()
	defer c.Unlock()
	c.content = content
	c.listeners = bound
	return nil
}

func (c *Container) ListenerCount() int {
	c.Lock()
	defer c.Unlock()
	return len(c.listeners)
}

// Click dispatches a click on the element to its listener
func (c *Container) Click(ctx context.Context, elementID string, form url.Values, notify Notifier) error {
	c.Lock()
	handler, ok := c.listeners[elementID]
	c.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, elementID)
	}
	return handler(ctx, form, notify)
}

// SetStyleProperty sets a CSS custom property on the container, a blank value clears it
func (c *Container) SetStyleProperty(name, value string) {
	c.Lock()
	defer c.Unlock()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(c.style, name)
		return
	}
	if !safeStyleValue.MatchString(value) {
		log.Warn().Str("property", name).Str("value", value).Msg("Ignoring unsafe style value")
		delete(c.style, name)
		return
	}
	c.style[name] = value
}

func (c *Container) StyleProperty(name string) (string, bool) {
	c.Lock()
	defer c.Unlock()
	value, ok := c.style[name]
	return value, ok
}

// Style renders the custom properties for the container's style attribute, sorted by name
func (c *Container) Style() template.CSS {
	c.Lock()
	defer c.Unlock()
	names := make([]string, 0, len(c.style))
	for name := range c.style {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+c.style[name])
	}
	return template.CSS(strings.Join(parts, "; "))
}

// ClickPath is where the host page posts clicks on an element
func ClickPath(elementID string) string {
	return "/click/" + url.PathEscape(elementID)
}

package webpart

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"sync"

	"github.com/ralim/listcreation/locale"
	"github.com/rs/zerolog/log"
)

// Ids of the form elements, the inputs double as the posted field names
const (
	ElementNewListName        = "txtNewListName"
	ElementNewListDescription = "txtNewListDescription"
	ElementCreateNewList      = "btnCreateNewList"
)

const (
	welcomeImageLight = "/assets/welcome-light.svg"
	welcomeImageDark  = "/assets/welcome-dark.svg"
)

//go:embed templates/webpart.html
var webPartTemplateSource string

var webPartTemplate = template.Must(template.New("webpart").Parse(webPartTemplateSource))

var ErrBadTemplate = errors.New("bad template file")

// Properties are the configurable web part properties
type Properties struct {
	Description string `json:"description"`
}

type Options struct {
	PageContext PageContext
	Environment Environment
	Properties  Properties
	Strings     *locale.Strings
	Workflow    *Workflow
	Observer    Notifier // Optional, sees every notification (eg the console UI)
}

// WebPart renders the list creation form and runs the workflow when its button is clicked
type WebPart struct {
	sync.Mutex
	// Held across a whole render so renders land in the container in order
	renderLock  sync.Mutex
	pageContext PageContext
	environment Environment
	properties  Properties
	strings     *locale.Strings
	workflow    *Workflow
	observer    Notifier
	container   *Container

	isDarkTheme        bool
	environmentMessage string
}

type viewData struct {
	IsTeams            bool
	WelcomeImage       string
	UserDisplayName    string
	EnvironmentMessage string
	Description        string
	ClickAction        string
	Busy               bool
}

func New(opts Options) *WebPart {
	table := opts.Strings
	if table == nil {
		table = locale.LoadOrDefault(locale.DefaultLocale)
	}
	return &WebPart{
		pageContext: opts.PageContext,
		environment: opts.Environment,
		properties:  opts.Properties,
		strings:     table,
		workflow:    opts.Workflow,
		observer:    opts.Observer,
		container:   NewContainer(),
	}
}

// OnInit works out the environment message, call once before the first Render
func (p *WebPart) OnInit() {
	p.Lock()
	defer p.Unlock()
	p.environmentMessage = EnvironmentMessage(p.environment, p.strings)
}

func EnvironmentMessage(env Environment, table *locale.Strings) string {
	if env.IsTeams {
		if env.IsServedFromLocalhost {
			return table.AppLocalEnvironmentTeams
		}
		return table.AppTeamsTabEnvironment
	}
	if env.IsServedFromLocalhost {
		return table.AppLocalEnvironmentSharePoint
	}
	return table.AppSharePointEnvironment
}

func (p *WebPart) Container() *Container {
	return p.container
}

// Render rebuilds the container contents and binds the create button
func (p *WebPart) Render() error {
	_, err := p.RenderContent()
	return err
}

// RenderContent is Render, also returning the markup this call put in the container
func (p *WebPart) RenderContent() (template.HTML, error) {
	p.renderLock.Lock()
	defer p.renderLock.Unlock()

	p.Lock()
	data := viewData{
		IsTeams:            p.environment.IsTeams,
		WelcomeImage:       welcomeImageLight,
		UserDisplayName:    p.pageContext.UserDisplayName,
		EnvironmentMessage: p.environmentMessage,
		Description:        p.properties.Description,
		ClickAction:        ClickPath(ElementCreateNewList),
		Busy:               p.workflow != nil && p.workflow.Busy(),
	}
	if p.isDarkTheme {
		data.WelcomeImage = welcomeImageDark
	}
	p.Unlock()

	buf := &bytes.Buffer{}
	if err := webPartTemplate.Execute(buf, data); err != nil {
		return "", fmt.Errorf("%w - %v", ErrBadTemplate, err)
	}
	content := template.HTML(buf.String())
	err := p.container.Replace(content, map[string]ClickHandler{
		ElementCreateNewList: p.createNewList,
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (p *WebPart) createNewList(ctx context.Context, form url.Values, notify Notifier) error {
	if p.workflow == nil {
		return errors.New("web part has no workflow configured")
	}
	req := ListCreationRequest{
		Name:        form.Get(ElementNewListName),
		Description: form.Get(ElementNewListDescription),
	}
	_, err := p.workflow.Run(ctx, req, Notifiers{notify, p.observer})
	return err
}

// OnThemeChanged keeps the dark flag for the next render and pushes the theme colours onto the container
func (p *WebPart) OnThemeChanged(theme *Theme) {
	if theme == nil {
		return
	}
	p.Lock()
	p.isDarkTheme = theme.IsInverted
	p.Unlock()

	if colors := theme.SemanticColors; colors != nil {
		p.container.SetStyleProperty("--bodyText", colors.BodyText)
		p.container.SetStyleProperty("--link", colors.Link)
		p.container.SetStyleProperty("--linkHovered", colors.LinkHovered)
	}
	log.Debug().Bool("dark", theme.IsInverted).Msg("Theme changed")
}

func (p *WebPart) IsDarkTheme() bool {
	p.Lock()
	defer p.Unlock()
	return p.isDarkTheme
}

func (p *WebPart) Properties() Properties {
	p.Lock()
	defer p.Unlock()
	return p.properties
}

// SetProperties takes effect on the next Render
func (p *WebPart) SetProperties(properties Properties) {
	p.Lock()
	defer p.Unlock()
	p.properties = properties
}

func (p *WebPart) PropertyPaneConfiguration() PropertyPaneConfiguration {
	return PropertyPaneConfiguration{
		Pages: []PropertyPanePage{
			{
				Header: PropertyPaneHeader{Description: p.strings.PropertyPaneDescription},
				Groups: []PropertyPaneGroup{
					{
						GroupName: p.strings.BasicGroupName,
						GroupFields: []PropertyPaneField{
							PropertyPaneTextField("description", p.strings.DescriptionFieldLabel),
						},
					},
				},
			},
		},
	}
}

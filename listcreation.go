package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ralim/listcreation/history"
	"github.com/ralim/listcreation/locale"
	"github.com/ralim/listcreation/server"
	"github.com/ralim/listcreation/settings"
	"github.com/ralim/listcreation/sphttp"
	"github.com/ralim/listcreation/termui"
	"github.com/ralim/listcreation/webpart"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

type ListCreation struct {
	ConfigFilePath string `flag:"config" help:"Path to config file"`
	NoCUI          bool   `flag:"noCUI" help:"Disable the Console UI"`
	HTTPPort       int    `flag:"port" help:"Override the HTTP port from the config file"`
	CreateList     string `flag:"create" help:"Create this list once from the command line and exit"`
	Description    string `flag:"description" help:"Description for the list made by -create"`

	ui       *termui.TermUI     `flag:"-"`
	settings *settings.Settings `flag:"-"`
	store    history.Store      `flag:"-"`
	workflow *webpart.Workflow  `flag:"-"`
	out      io.Writer          `flag:"-"` // One-shot notifications, stdout when nil
}

func NewListCreation() *ListCreation {
	return &ListCreation{}
}

func (m *ListCreation) Run() error {
	settingsPath := "./config.json"
	if m.ConfigFilePath != "" {
		settingsPath = m.ConfigFilePath
	}
	m.settings = settings.NewSettings(settingsPath)
	if m.HTTPPort > 0 {
		m.settings.HTTPPort = m.HTTPPort
	}

	if m.CreateList != "" {
		m.settings.SetupLogging(os.Stderr)
		log.Debug().Str("config", m.settings.FilePath()).Msg("Loaded settings")
		if err := m.openHistory(); err != nil {
			return err
		}
		defer m.closeHistory()
		m.buildWorkflow()
		return m.createOnce()
	}

	uiExit := make(chan bool, 1)
	if !m.NoCUI {
		m.ui = termui.NewTermUI()
		m.settings.SetupLogging(tview.ANSIWriter(m.ui.LogsView))
		go func() {
			m.ui.Run()
			m.ui.Stop()
			uiExit <- true
		}()
	} else {
		m.settings.SetupLogging(os.Stdout)
		//Run hook listener for ctrl-c
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				log.Warn().Msg("Control-C received, shutting down")
				uiExit <- true
			}
		}()
	}

	log.Info().Str("config", m.settings.FilePath()).Msg("Loaded settings")
	if err := m.openHistory(); err != nil {
		m.settings.SetupLogging(os.Stdout)
		if m.ui != nil {
			m.ui.Stop()
		}
		return err
	}
	defer m.closeHistory()
	m.buildWorkflow()

	part := m.buildWebPart()
	server := server.NewServer(part, m.store, m.settings)
	m.ui.RegisterTask("HTTP server").UpdateStatus(fmt.Sprintf("Listening on :%d", m.settings.HTTPPort))
	server.Run()

	//Wait for exit
	<-uiExit

	//Redirect logs back to terminal since UI has exited
	m.settings.SetupLogging(os.Stdout)
	log.Warn().Msg("Closing up")
	fmt.Println("Waiting for requests to finish")
	server.Stop()

	return nil
}

// openHistory leaves m.store nil when history is switched off
func (m *ListCreation) openHistory() error {
	task := m.ui.RegisterTask("History")
	if m.settings.HistoryDatabase == "" {
		task.UpdateStatus("Disabled")
		return nil
	}
	store, err := history.NewSQLiteStore(m.settings.HistoryDatabase)
	if err != nil {
		return fmt.Errorf("opening history %s: %w", m.settings.HistoryDatabase, err)
	}
	m.store = store
	task.UpdateStatus(m.settings.HistoryDatabase)
	return nil
}

func (m *ListCreation) closeHistory() {
	if m.store == nil {
		return
	}
	if err := m.store.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing history failed")
	}
}

func (m *ListCreation) buildWorkflow() {
	client := sphttp.NewClient(sphttp.Options{
		AccessToken: m.settings.AccessToken,
		Timeout:     m.settings.RequestTimeout(),
	})
	recorders := webpart.Recorders{}
	if m.store != nil {
		recorders = append(recorders, m.store)
	}
	if m.ui != nil {
		recorders = append(recorders, m.ui.Statistics())
	}
	m.workflow = webpart.NewWorkflow(webpart.WorkflowOptions{
		Client:          client,
		WebAbsoluteURL:  m.settings.SiteURL,
		EncodeListTitle: m.settings.EncodeListTitle,
		Recorder:        recorders,
	})
}

func (m *ListCreation) buildWebPart() *webpart.WebPart {
	table, err := locale.Load(m.settings.Locale)
	if err != nil {
		log.Warn().Err(err).
			Str("locale", m.settings.Locale).
			Strs("available", locale.Available()).
			Msg("Falling back to the default locale")
		table = locale.LoadOrDefault(locale.DefaultLocale)
	}
	opts := webpart.Options{
		PageContext: webpart.PageContext{
			WebAbsoluteURL:  m.settings.SiteURL,
			UserDisplayName: m.settings.UserDisplayName,
		},
		Environment: webpart.Environment{
			IsTeams:               m.settings.IsTeams,
			IsServedFromLocalhost: m.settings.IsServedFromLocalhost,
		},
		Properties: webpart.Properties{Description: m.settings.Description},
		Strings:    table,
		Workflow:   m.workflow,
	}
	if m.ui != nil {
		opts.Observer = m.ui
	}
	part := webpart.New(opts)
	part.OnInit()
	return part
}

// createOnce runs a single pass and prints what the button would have shown
func (m *ListCreation) createOnce() error {
	req := webpart.ListCreationRequest{Name: m.CreateList, Description: m.Description}
	out := m.out
	if out == nil {
		out = os.Stdout
	}
	notify := webpart.NotifierFunc(func(message string) {
		fmt.Fprintln(out, message)
	})
	attempt, err := m.workflow.Run(context.Background(), req, notify)
	if err != nil {
		return err
	}
	switch attempt.Outcome {
	case history.OutcomeServerError, history.OutcomeTransportFailed:
		return fmt.Errorf("list %q was not created: %s", m.CreateList, attempt.Message)
	}
	return nil
}

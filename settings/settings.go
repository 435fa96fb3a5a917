package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	SiteURL               string `json:"siteUrl"`               // Absolute URL of the web the lists live in
	AccessToken           string `json:"accessToken"`           // Bearer token sent with every REST call, blank to send none
	UserDisplayName       string `json:"userDisplayName"`       // Shown in the welcome banner
	Description           string `json:"description"`           // The web part "description" property
	IsTeams               bool   `json:"isTeams"`               // Hosted inside Microsoft Teams
	IsServedFromLocalhost bool   `json:"isServedFromLocalhost"` // Served from a local development origin
	Locale                string `json:"locale"`                // Which string table to load
	HTTPPort              int    `json:"httpPort"`              // Port used for HTTP
	HistoryDatabase       string `json:"historyDatabase"`       // SQLite file recording each list creation attempt, blank disables
	EncodeListTitle       bool   `json:"encodeListTitle"`       // Percent-encode the title in the existence check URL
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds"` // 0 means requests never time out
	LogLevel              string `json:"logLevel"`              // zerolog level name
	// Private
	filePath string
	lock     sync.Mutex // Serialises Save and runtime updates
}

// NewSettings creates settings with sane defaults
// And then loads any settings from the provided path (overwriting defaults)
func NewSettings(path string) *Settings {

	settings := &Settings{
		filePath:        path,
		SiteURL:         "https://contoso.sharepoint.com/sites/dev",
		UserDisplayName: "Developer",
		Description:     "ListCreation",
		Locale:          "en-us",
		HTTPPort:        8080,
		HistoryDatabase: "./listcreation.db",
		EncodeListTitle: true,
		LogLevel:        "info",
	}
	//Load the settings file if it exsts, which will override the defaults above if specified
	settings.Load()
	//Save to preserve if we have added anything to the file, and drop no-longer used settings for clarity
	settings.Save()
	return settings
}

func (s *Settings) Load() {
	//Load existing settings file if possible; if not load do nothing
	file, err := os.Open(s.filePath)
	if err != nil {
		return
	}
	defer file.Close()
	if err := s.LoadFrom(file); err != nil {
		fmt.Fprintln(os.Stderr, "Couldn't load settings", err)
	}
}

// LoadFrom overlays any settings present in the reader onto the current values
func (s *Settings) LoadFrom(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, s)
}

func (s *Settings) Save() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.save()
}

// SetDescription updates the web part description and persists it
func (s *Settings) SetDescription(description string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Description = description
	s.save()
}

func (s *Settings) save() {
	if s.filePath == "" {
		return
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't save settings - %v", err)
		return
	}
	err = os.WriteFile(s.filePath, data, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't save settings - %v", err)
	}
}

// FilePath is where Save writes, empty for in-memory settings
func (s *Settings) FilePath() string {
	return s.filePath
}

func (s *Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// SetupLogging points the global logger at the writer, used to swap between the console UI and stdout
func (s *Settings) SetupLogging(writer io.Writer) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}

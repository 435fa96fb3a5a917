package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed strings/*.json
var stringTables embed.FS

var ErrUnknownLocale = errors.New("unknown locale")

// DefaultLocale is used whenever the requested table is missing
const DefaultLocale = "en-us"

// Strings is the externalized text for the web part and its property pane
type Strings struct {
	PropertyPaneDescription       string `json:"PropertyPaneDescription"`
	BasicGroupName                string `json:"BasicGroupName"`
	DescriptionFieldLabel         string `json:"DescriptionFieldLabel"`
	AppLocalEnvironmentSharePoint string `json:"AppLocalEnvironmentSharePoint"`
	AppLocalEnvironmentTeams      string `json:"AppLocalEnvironmentTeams"`
	AppSharePointEnvironment      string `json:"AppSharePointEnvironment"`
	AppTeamsTabEnvironment        string `json:"AppTeamsTabEnvironment"`
}

// Load reads the string table for the named locale (eg "en-us")
func Load(name string) (*Strings, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	data, err := stringTables.ReadFile("strings/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownLocale, name)
	}
	table := &Strings{}
	if err := json.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("couldn't parse string table %s - %w", name, err)
	}
	return table, nil
}

// LoadOrDefault falls back to DefaultLocale when the named table can't be loaded
func LoadOrDefault(name string) *Strings {
	if table, err := Load(name); err == nil {
		return table
	}
	table, err := Load(DefaultLocale)
	if err != nil {
		// The default table is embedded, so this is a build problem
		panic(err)
	}
	return table
}

// Available lists the embedded locale names
func Available() []string {
	entries, err := stringTables.ReadDir("strings")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names
}

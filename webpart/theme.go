package webpart

// SemanticColors are the theme slots the web part styles itself with
type SemanticColors struct {
	BodyText    string `json:"bodyText"`
	Link        string `json:"link"`
	LinkHovered string `json:"linkHovered"`
}

// Theme is what the host sends when its theme changes
type Theme struct {
	IsInverted     bool            `json:"isInverted"`
	SemanticColors *SemanticColors `json:"semanticColors,omitempty"`
}

// PageContext is the part of the host page the web part displays or calls into
type PageContext struct {
	WebAbsoluteURL  string
	UserDisplayName string
}

// Environment describes where the web part is hosted
type Environment struct {
	IsTeams               bool // Embedded in Microsoft Teams
	IsServedFromLocalhost bool // Served from a local development origin
}

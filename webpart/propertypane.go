package webpart

// DataVersion is the version of the stored web part properties
const DataVersion = "1.0"

type PropertyPaneConfiguration struct {
	Pages []PropertyPanePage `json:"pages"`
}

type PropertyPanePage struct {
	Header PropertyPaneHeader  `json:"header"`
	Groups []PropertyPaneGroup `json:"groups"`
}

type PropertyPaneHeader struct {
	Description string `json:"description"`
}

type PropertyPaneGroup struct {
	GroupName   string              `json:"groupName"`
	GroupFields []PropertyPaneField `json:"groupFields"`
}

type PropertyPaneField struct {
	Type           string                      `json:"type"`
	TargetProperty string                      `json:"targetProperty"`
	Properties     PropertyPaneFieldProperties `json:"properties"`
}

type PropertyPaneFieldProperties struct {
	Label string `json:"label"`
}

func PropertyPaneTextField(targetProperty, label string) PropertyPaneField {
	return PropertyPaneField{
		Type:           "TextField",
		TargetProperty: targetProperty,
		Properties:     PropertyPaneFieldProperties{Label: label},
	}
}

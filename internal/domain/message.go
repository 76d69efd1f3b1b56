package domain

// UpdateText identifies a controller-to-panel message
type UpdateText string

const (
	UpdateInitializeFlowNames   UpdateText = "initialize-flow-names"
	UpdateShowNoConnectorAlert  UpdateText = "show-no-connector-alert"
	UpdateShowSelectTags        UpdateText = "show-select-tags"
	UpdateShowVisibilityButtons UpdateText = "show-visibility-buttons"
)

// Update is a message posted by the controller to the panel
type Update struct {
	Text                  UpdateText `json:"text"`
	FlowArray             []string   `json:"flowArray,omitempty"`
	CurrentlySelectedFlow FlowState  `json:"currentlySelectedFlow,omitempty"`
}

// IntentType identifies a panel-to-controller message
type IntentType string

const (
	IntentShowAll            IntentType = "show-all"
	IntentHideAll            IntentType = "hide-all"
	IntentShowFlow           IntentType = "show-flow"
	IntentTagArrows          IntentType = "tag-arrows"
	IntentTagArrowsNull      IntentType = "tag-arrows-null"
	IntentIncludeLockedTrue  IntentType = "include-locked-true"
	IntentIncludeLockedFalse IntentType = "include-locked-false"
	IntentResizeExpand       IntentType = "resize-expand"
	IntentResizeCollapse     IntentType = "resize-collapse"
	IntentSaveFlowNames      IntentType = "save-flow-names"
)

// Intent is a message posted by the panel to the controller.
// Only the fields relevant to Type are populated.
type Intent struct {
	Type      IntentType `json:"type"`
	Show      bool       `json:"show,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	NameArray []string   `json:"nameArray,omitempty"`
}

// PanelSize is a fixed panel dimension in pixels (or cells for terminal panels)
type PanelSize struct {
	Width  int
	Height int
}

// Default panel geometry: a fixed width with a collapsed and an expanded height
const (
	DefaultPanelWidth      = 240
	DefaultCollapsedHeight = 256
	DefaultExpandedHeight  = DefaultCollapsedHeight + 160
)

// ResizeText marks a resize notice on transports that carry panel resizes
// in the update stream
const ResizeText UpdateText = "resize"

// ResizeNotice is a panel resize encoded next to updates
type ResizeNotice struct {
	Text   UpdateText `json:"text"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

// NewResizeNotice wraps a size for the update stream
func NewResizeNotice(width, height int) ResizeNotice {
	return ResizeNotice{Text: ResizeText, Width: width, Height: height}
}

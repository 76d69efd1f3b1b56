package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"flowshow/internal/adapters/tui/styles"
)

// newHelp returns a help model in the app's key/description colours
func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.HelpSeparator.UnsetString()
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	return h
}

var shortHelp = newHelp()

// HelpLine renders bindings on one line. Disabled bindings are skipped.
func HelpLine(bindings ...key.Binding) string {
	return shortHelp.ShortHelpView(bindings)
}

// ViewBuilder accumulates the lines of a view
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates an empty builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) styled(render func(...string) string, text, end string) *ViewBuilder {
	v.b.WriteString(render(text))
	v.b.WriteString(end)
	return v
}

// Title adds the view title
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.styled(styles.Title.Render, title, "\n")
}

// Subtitle adds a subtitle followed by a blank line
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.styled(styles.Subtitle.Render, subtitle, "\n\n")
}

// Section adds a group heading
func (v *ViewBuilder) Section(label string) *ViewBuilder {
	return v.styled(styles.SectionLabel.Render, label, "\n")
}

// Muted adds a dimmed line
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.styled(styles.MutedText.Render, text, "\n")
}

// Message adds a status line; nothing when message is empty
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	if isError {
		return v.styled(styles.ErrorMsg.Render, message, "\n")
	}
	return v.styled(styles.Success.Render, message, "\n")
}

// Line adds pre-rendered text and a newline
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// Blank adds an empty line
func (v *ViewBuilder) Blank() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Raw adds text as-is
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the view padded by the app style, for full-screen views
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

// Plain returns the view without padding, for panes framed by their parent
func (v *ViewBuilder) Plain() string {
	return v.b.String()
}

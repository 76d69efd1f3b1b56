package views

import "flowshow/internal/domain"

// ViewState holds the size and status line every view carries
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize records the space the view may draw in
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage shows msg on the status line, in red when isErr
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage empties the status line
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// IntentMsg carries a panel intent to the controller
type IntentMsg struct {
	Intent domain.Intent
}

// SelectionChangedMsg reports that the canvas replaced the selection
type SelectionChangedMsg struct{}

// DocumentChangedMsg reports a host edit that does not touch the selection
type DocumentChangedMsg struct {
	Message string
}

// ErrMsg reports a failed background command
type ErrMsg struct {
	Err error
}

// SwitchToRenameMsg opens the rename form prefilled with Names
type SwitchToRenameMsg struct {
	Names []string
}

type SwitchToHelpMsg struct{}

type SwitchToMainMsg struct{}

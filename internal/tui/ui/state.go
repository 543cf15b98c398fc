package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/repoforge/internal/plan"
)

// Mode represents the current UI state
type Mode int

const (
	ModeInput Mode = iota
	ModeThinking
	ModeReview
	ModeEdit
	ModeName
	ModeDir
	ModeConfirm
	ModeWriting
	ModeDone
)

// State contains all the data required to render the UI.
// This decouples the renderer from the main application logic.
type State struct {
	Mode         Mode
	Provider     string
	Model        string
	OutDir       string
	DryRun       bool
	Plan         *plan.Plan
	RepoIndex    int    // 0-based index of the repo under review
	RepoDir      string // resolved target dir for the repo under review
	ErrorText    string
	Report       string
	IsThinking   bool
	ThinkingText string

	// Bubble Tea models
	TextArea textarea.Model
	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model
}

// Package tui implements the interactive review flow: describe, generate,
// inspect the planned repos, adjust names and target dirs, then write.
package tui

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Protocol-Lattice/repoforge/internal/config"
	"github.com/Protocol-Lattice/repoforge/internal/plan"
	"github.com/Protocol-Lattice/repoforge/internal/tui/ui"
	"github.com/Protocol-Lattice/repoforge/internal/workspace"
)

type planMsg struct {
	plan *plan.Plan
	err  error
}

type repoDoneMsg struct {
	result RepoResult
}

// RepoResult records the outcome for one repo of the reviewed plan.
type RepoResult struct {
	Name    string
	Dir     string
	Wrote   int
	Failed  []workspace.FileResult
	Skipped bool
	DryRun  bool
}

type model struct {
	ctx     context.Context
	cfg     config.Config
	request string
	plan    *plan.Plan
	outDir  string
	dryRun  bool

	mode       ui.Mode
	repoIdx    int
	autoName   string // plan's original name for the repo under review
	dirDefault string
	results    []RepoResult
	errText    string
	report     string
	thinking   string

	textarea textarea.Model
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
	style    ui.Styles
}

// NewModel builds the review TUI. An empty request starts in the description
// editor; a non-empty one goes straight to generation.
func NewModel(ctx context.Context, cfg config.Config, request, outDir string, dryRun bool) *model {
	st := ui.NewStyles()

	ta := textarea.New()
	ta.Placeholder = "Describe the repos to create..."
	ta.Focus()
	ta.SetHeight(6)

	in := textinput.New()
	in.CharLimit = 256
	in.Width = 50

	vp := viewport.New(0, 0)

	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = st.Thinking

	m := &model{
		ctx:      ctx,
		cfg:      cfg,
		request:  strings.TrimSpace(request),
		outDir:   outDir,
		dryRun:   dryRun,
		mode:     ui.ModeInput,
		textarea: ta,
		input:    in,
		viewport: vp,
		spinner:  s,
		style:    st,
	}
	if m.request != "" {
		m.mode = ui.ModeThinking
		m.thinking = "calling the model"
	}
	return m
}

func (m *model) Init() tea.Cmd {
	if m.mode == ui.ModeThinking {
		return tea.Batch(m.generateCmd(), m.spinner.Tick)
	}
	return textarea.Blink
}

func (m *model) View() string {
	repoDir := ""
	if m.plan != nil && m.repoIdx < len(m.plan.Repos) {
		repoDir = m.targetDir(m.plan.Repos[m.repoIdx].Dir)
	}

	return ui.Render(ui.State{
		Mode:         m.mode,
		Provider:     string(m.cfg.Provider),
		Model:        m.cfg.Model,
		OutDir:       m.outDir,
		DryRun:       m.dryRun,
		Plan:         m.plan,
		RepoIndex:    m.repoIdx,
		RepoDir:      repoDir,
		ErrorText:    m.errText,
		Report:       m.report,
		IsThinking:   m.mode == ui.ModeThinking || m.mode == ui.ModeWriting,
		ThinkingText: m.thinking,
		TextArea:     m.textarea,
		Input:        m.input,
		Viewport:     m.viewport,
		Spinner:      m.spinner,
	}, m.style)
}

// Results returns the per-repo outcomes collected during the run.
func (m *model) Results() []RepoResult { return m.results }

// targetDir resolves a repo dir against the output dir. Absolute dirs are
// kept as typed.
func (m *model) targetDir(dir string) string {
	if filepath.IsAbs(dir) || m.outDir == "" || m.outDir == "." {
		return dir
	}
	return filepath.Join(m.outDir, dir)
}

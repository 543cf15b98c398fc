package tui

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Protocol-Lattice/repoforge/internal/generate"
	"github.com/Protocol-Lattice/repoforge/internal/plan"
	"github.com/Protocol-Lattice/repoforge/internal/tui/ui"
	"github.com/Protocol-Lattice/repoforge/internal/workspace"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textarea.SetWidth(m.width - 4)
		m.input.Width = m.width - 8
		m.viewport.Width = m.width - 2
		vh := m.height - 18
		if vh < 3 {
			vh = 3
		}
		m.viewport.Height = vh
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {

		case ui.ModeInput:
			if msg.String() == "enter" {
				raw := strings.TrimSpace(m.textarea.Value())
				if raw == "" {
					return m, nil
				}
				m.request = raw
				m.textarea.Blur()
				return m.startGenerate()
			}

		case ui.ModeReview:
			switch msg.String() {
			case "a", "enter":
				return m.startRepoReview()
			case "e":
				b, err := json.MarshalIndent(m.plan, "", "  ")
				if err != nil {
					m.errText = err.Error()
					return m, nil
				}
				m.errText = ""
				m.mode = ui.ModeEdit
				m.textarea.SetValue(string(b))
				m.textarea.Focus()
				return m, nil
			case "r":
				return m.startGenerate()
			case "q":
				return m, tea.Quit
			}

		case ui.ModeEdit:
			switch msg.String() {
			case "ctrl+s":
				p, err := plan.Decode([]byte(m.textarea.Value()))
				if err != nil {
					m.errText = err.Error()
					return m, nil
				}
				m.plan = p
				m.errText = ""
				m.textarea.Blur()
				m.enterReview()
				return m, nil
			case "esc":
				m.errText = ""
				m.textarea.Blur()
				m.mode = ui.ModeReview
				return m, nil
			}

		case ui.ModeName:
			switch msg.String() {
			case "enter":
				name := strings.TrimSpace(m.input.Value())
				if name == "" {
					name = m.autoName
				}
				r := &m.plan.Repos[m.repoIdx]
				planned := strings.TrimSpace(r.Dir)
				r.Name = name

				// A planned dir that was empty or just echoed the repo name
				// follows the (possibly edited) name.
				m.dirDefault = planned
				if planned == "" || planned == m.autoName {
					m.dirDefault = name
				}
				m.input.SetValue(m.dirDefault)
				m.input.CursorEnd()
				m.mode = ui.ModeDir
				return m, nil
			case "esc":
				m.input.Blur()
				m.enterReview()
				return m, nil
			}

		case ui.ModeDir:
			switch msg.String() {
			case "enter":
				dir := strings.TrimSpace(m.input.Value())
				if dir == "" {
					dir = m.dirDefault
				}
				m.plan.Repos[m.repoIdx].Dir = dir
				m.input.Blur()
				m.mode = ui.ModeConfirm
				return m, nil
			case "esc":
				m.input.Blur()
				m.enterReview()
				return m, nil
			}

		case ui.ModeConfirm:
			repo := m.plan.Repos[m.repoIdx]
			if m.dryRun {
				switch msg.String() {
				case "enter", "y":
					m.results = append(m.results, RepoResult{Name: repo.Name, Dir: m.targetDir(repo.Dir), DryRun: true})
					return m.advanceRepo()
				case "esc":
					m.enterReview()
				}
				return m, nil
			}
			switch msg.String() {
			case "y", "enter":
				return m.startWrite()
			case "n":
				m.results = append(m.results, RepoResult{Name: repo.Name, Dir: m.targetDir(repo.Dir), Skipped: true})
				return m.advanceRepo()
			case "esc":
				m.enterReview()
			}
			return m, nil

		case ui.ModeDone:
			switch msg.String() {
			case "enter", "q", "esc":
				return m, tea.Quit
			}
		}

	case planMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			if m.plan == nil {
				m.mode = ui.ModeInput
				m.textarea.Focus()
			} else {
				m.enterReview()
			}
			return m, nil
		}
		m.plan = msg.plan
		m.errText = ""
		m.results = m.results[:0]
		m.enterReview()
		return m, nil

	case repoDoneMsg:
		m.results = append(m.results, msg.result)
		return m.advanceRepo()
	}

	var cmd tea.Cmd
	switch m.mode {
	case ui.ModeInput, ui.ModeEdit:
		m.textarea, cmd = m.textarea.Update(msg)
	case ui.ModeName, ui.ModeDir:
		m.input, cmd = m.input.Update(msg)
	case ui.ModeReview:
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if m.mode == ui.ModeThinking || m.mode == ui.ModeWriting {
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmd = tea.Batch(cmd, spinnerCmd)
	}
	return m, cmd
}

func (m *model) startGenerate() (tea.Model, tea.Cmd) {
	m.mode = ui.ModeThinking
	m.thinking = "calling the model"
	m.errText = ""
	return m, tea.Batch(m.generateCmd(), m.spinner.Tick)
}

func (m *model) generateCmd() tea.Cmd {
	ctx, cfg, request := m.ctx, m.cfg, m.request
	return func() tea.Msg {
		p, err := generate.Generate(ctx, cfg, request)
		return planMsg{plan: p, err: err}
	}
}

func (m *model) enterReview() {
	m.mode = ui.ModeReview
	m.viewport.SetContent(ui.PlanPanels(m.plan, m.style))
	m.viewport.GotoTop()
}

func (m *model) startRepoReview() (tea.Model, tea.Cmd) {
	m.repoIdx = 0
	m.results = m.results[:0]
	m.errText = ""
	m.promptRepo()
	return m, textinput.Blink
}

func (m *model) promptRepo() {
	r := m.plan.Repos[m.repoIdx]
	m.autoName = r.Name
	m.input.SetValue(r.Name)
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = ui.ModeName
}

func (m *model) advanceRepo() (tea.Model, tea.Cmd) {
	m.repoIdx++
	if m.repoIdx >= len(m.plan.Repos) {
		m.input.Blur()
		m.buildReport()
		m.mode = ui.ModeDone
		return m, nil
	}
	m.promptRepo()
	return m, textinput.Blink
}

func (m *model) startWrite() (tea.Model, tea.Cmd) {
	repo := m.plan.Repos[m.repoIdx]
	target := m.targetDir(repo.Dir)
	m.mode = ui.ModeWriting
	m.thinking = fmt.Sprintf("writing %s", repo.Name)

	cmd := func() tea.Msg {
		wrote, fileResults := workspace.Write(target, repo.Files)
		var failed []workspace.FileResult
		for _, fr := range fileResults {
			if fr.Err != nil {
				failed = append(failed, fr)
			}
		}
		abs := target
		if a, err := filepath.Abs(target); err == nil {
			abs = a
		}
		return repoDoneMsg{result: RepoResult{Name: repo.Name, Dir: abs, Wrote: wrote, Failed: failed}}
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m *model) buildReport() {
	var b strings.Builder
	for i, res := range m.results {
		switch {
		case res.DryRun:
			b.WriteString(m.style.Warning.Render(fmt.Sprintf("dry-run: repo %d (%s) not written", i+1, res.Name)) + "\n")
		case res.Skipped:
			b.WriteString(m.style.Subtle.Render(fmt.Sprintf("repo %d (%s) skipped", i+1, res.Name)) + "\n")
		default:
			b.WriteString(m.style.Success.Render(fmt.Sprintf("✅ repo %d done: wrote %d files into %s", i+1, res.Wrote, res.Dir)) + "\n")
			for _, f := range res.Failed {
				b.WriteString(m.style.Error.Render(fmt.Sprintf("❌ %s: %v", f.Path, f.Err)) + "\n")
			}
		}
	}
	m.report = strings.TrimRight(b.String(), "\n")
}

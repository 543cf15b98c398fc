package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/Protocol-Lattice/repoforge/internal/plan"
)

const Logo = `
██████╗ ███████╗██████╗  ██████╗ ███████╗ ██████╗ ██████╗  ██████╗ ███████╗
██╔══██╗██╔════╝██╔══██╗██╔═══██╗██╔════╝██╔═══██╗██╔══██╗██╔════╝ ██╔════╝
██████╔╝█████╗  ██████╔╝██║   ██║█████╗  ██║   ██║██████╔╝██║  ███╗█████╗
██╔══██╗██╔══╝  ██╔═══╝ ██║   ██║██╔══╝  ██║   ██║██╔══██╗██║   ██║██╔══╝
██║  ██║███████╗██║     ╚██████╔╝██║     ╚██████╔╝██║  ██║╚██████╔╝███████╗
╚═╝  ╚═╝╚══════╝╚═╝      ╚═════╝ ╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝
              D E S C R I B E  ·  R E V I E W  ·  F O R G E
`

// Render generates the full UI string based on the provided state.
func Render(s State, styles Styles) string {
	header := renderHeader(styles)
	body := renderBody(s, styles)
	footer := renderFooter(s, styles)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderHeader(styles Styles) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AD8CFF")).Bold(true).
		Background(lipgloss.Color("#000000")).UnsetBackground()
	subtitle := styles.Header.Render("Protocol Lattice")
	styledLogo := logoStyle.Render(Logo)

	return lipgloss.JoinVertical(lipgloss.Left, styledLogo, subtitle)
}

func renderFooter(s State, styles Styles) string {
	help := "ctrl+c: quit"
	switch s.Mode {
	case ModeInput:
		help = "enter: generate | " + help
	case ModeReview:
		help = "↑/↓: scroll | " + help
	case ModeEdit:
		help = "ctrl+s: apply | esc: back | " + help
	case ModeName, ModeDir:
		help = "enter: confirm | esc: back to plan | " + help
	case ModeConfirm:
		if s.DryRun {
			help = "enter: continue | esc: back to plan | " + help
		} else {
			help = "y: write | n: skip | esc: back to plan | " + help
		}
	case ModeDone:
		help = "enter: exit"
	}
	return styles.Footer.Render(help)
}

func renderBody(s State, styles Styles) string {
	switch s.Mode {
	case ModeInput:
		return renderInput(s, styles)
	case ModeThinking, ModeWriting:
		return renderThinking(s, styles)
	case ModeReview:
		return renderReview(s, styles)
	case ModeEdit:
		return renderEdit(s, styles)
	case ModeName:
		return renderName(s, styles)
	case ModeDir:
		return renderDir(s, styles)
	case ModeConfirm:
		return renderConfirm(s, styles)
	case ModeDone:
		return renderDone(s, styles)
	default:
		return ""
	}
}

func renderInput(s State, styles Styles) string {
	lines := []string{
		styles.Title.Render("Describe what to build"),
		styles.Subtle.Render("The provider plans one or more small repos before anything touches disk."),
		s.TextArea.View(),
	}
	if s.ErrorText != "" {
		lines = append(lines, styles.Error.Render(fmt.Sprintf("❌ %s", s.ErrorText)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderThinking(s State, styles Styles) string {
	if !s.IsThinking {
		return ""
	}
	return styles.Thinking.Render(fmt.Sprintf("repoforge %s %s", s.Spinner.View(), s.ThinkingText))
}

func renderReview(s State, styles Styles) string {
	meta := styles.Panel.Render(fmt.Sprintf("provider: %s\nmodel: %s", s.Provider, s.Model))

	count := ""
	if s.Plan != nil {
		count = styles.Subtitle.Render(fmt.Sprintf("%d repos, %d files", len(s.Plan.Repos), s.Plan.FileCount()))
	}

	parts := []string{meta, count, s.Viewport.View()}
	if s.ErrorText != "" {
		parts = append(parts, styles.Error.Render(fmt.Sprintf("❌ %s", s.ErrorText)))
	}
	parts = append(parts, styles.Help.Render("a: accept | e: edit json | r: regenerate | q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderEdit(s State, styles Styles) string {
	lines := []string{
		styles.Title.Render("Edit plan JSON"),
		styles.Subtle.Render("The edited plan is validated again before it replaces the current one."),
		s.TextArea.View(),
	}
	if s.ErrorText != "" {
		lines = append(lines, styles.Error.Render(fmt.Sprintf("❌ %s", s.ErrorText)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderName(s State, styles Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(fmt.Sprintf("Repo %d name", s.RepoIndex+1)),
		styles.Subtle.Render("Edit the name or press enter to keep it."),
		s.Input.View(),
	)
}

func renderDir(s State, styles Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(fmt.Sprintf("Repo %d dir", s.RepoIndex+1)),
		styles.Subtle.Render("Target directory, relative paths land under the output dir."),
		s.Input.View(),
	)
}

func renderConfirm(s State, styles Styles) string {
	lines := []string{styles.Title.Render(fmt.Sprintf("Repo %d final plan", s.RepoIndex+1))}
	if s.Plan != nil && s.RepoIndex < len(s.Plan.Repos) {
		lines = append(lines, styles.Panel.Render(RepoTree(s.Plan.Repos[s.RepoIndex], styles)))
	}
	if s.DryRun {
		lines = append(lines, styles.Warning.Render("dry-run: no files will be written"))
	} else {
		lines = append(lines, styles.Accent.Render(fmt.Sprintf("Write files for repo %d into '%s'?", s.RepoIndex+1, s.RepoDir)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderDone(s State, styles Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("done"),
		s.Report,
	)
}

// PlanPanels renders one bordered panel per planned repo, each containing the
// repo's file tree.
func PlanPanels(p *plan.Plan, styles Styles) string {
	if p == nil {
		return ""
	}
	panels := make([]string, 0, len(p.Repos))
	for i, repo := range p.Repos {
		panels = append(panels, lipgloss.JoinVertical(lipgloss.Left,
			styles.Subtitle.Render(fmt.Sprintf("Repo %d", i+1)),
			styles.Panel.Render(RepoTree(repo, styles)),
		))
	}
	return strings.Join(panels, "\n")
}

// RepoTree renders the repo's planned files as a branch tree rooted at
// "name → dir", one node per path segment.
func RepoTree(repo plan.Repo, styles Styles) string {
	dir := strings.TrimSpace(repo.Dir)
	if dir == "" {
		dir = repo.Name
	}
	root := tree.Root(fmt.Sprintf("%s  →  %s", repo.Name, dir)).
		RootStyle(styles.TreeRoot).
		EnumeratorStyle(styles.TreeBranch)

	nodes := map[string]*tree.Tree{"": root}

	seen := make(map[string]bool, len(repo.Files))
	paths := make([]string, 0, len(repo.Files))
	for _, f := range repo.Files {
		p := strings.TrimSpace(strings.ReplaceAll(f.Path, "\\", "/"))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		var parts []string
		for _, part := range strings.Split(path, "/") {
			if part != "" {
				parts = append(parts, part)
			}
		}
		cur := ""
		for i, part := range parts {
			if i == len(parts)-1 {
				nodes[cur].Child(part)
				continue
			}
			next := part
			if cur != "" {
				next = cur + "/" + part
			}
			if _, ok := nodes[next]; !ok {
				sub := tree.Root(part)
				nodes[cur].Child(sub)
				nodes[next] = sub
			}
			cur = next
		}
	}

	return root.String()
}

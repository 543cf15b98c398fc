package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/repoforge/internal/plan"
)

func samplePlan() *plan.Plan {
	return &plan.Plan{Repos: []plan.Repo{
		{Name: "demo", Dir: "demo", Files: []plan.File{
			{Path: "README.md", Content: "# demo"},
			{Path: "src/main.go", Content: "package main"},
		}},
		{Name: "docs", Dir: "site", Files: []plan.File{
			{Path: "index.html", Content: "<html>"},
		}},
	}}
}

func TestRenderContainsHeader(t *testing.T) {
	styles := NewStyles()
	ta := textarea.New()
	ta.SetWidth(80)

	state := State{
		Mode:     ModeInput,
		TextArea: ta,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "Protocol Lattice") {
		t.Errorf("Expected output to contain 'Protocol Lattice', but it didn't")
	}
}

func TestRenderFooterContainsQuit(t *testing.T) {
	styles := NewStyles()
	ta := textarea.New()
	ta.SetWidth(80)

	state := State{
		Mode:     ModeInput,
		TextArea: ta,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "ctrl+c: quit") {
		t.Errorf("Expected footer to contain quit instruction")
	}
}

func TestRenderInputMode(t *testing.T) {
	styles := NewStyles()
	ta := textarea.New()
	ta.SetWidth(80)

	state := State{
		Mode:     ModeInput,
		TextArea: ta,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "Describe what to build") {
		t.Errorf("Expected input mode to show the description prompt")
	}
}

func TestRenderReviewShowsProviderAndActions(t *testing.T) {
	styles := NewStyles()
	p := samplePlan()
	vp := viewport.New(80, 20)
	vp.SetContent(PlanPanels(p, styles))

	state := State{
		Mode:     ModeReview,
		Provider: "openrouter",
		Model:    "openai/gpt-4o-mini",
		Plan:     p,
		Viewport: vp,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "provider: openrouter") {
		t.Errorf("Expected review to show the provider")
	}
	if !strings.Contains(output, "model: openai/gpt-4o-mini") {
		t.Errorf("Expected review to show the model")
	}
	if !strings.Contains(output, "a: accept") {
		t.Errorf("Expected review to list the accept action")
	}
	if !strings.Contains(output, "2 repos, 3 files") {
		t.Errorf("Expected review to show repo and file counts, got:\n%s", output)
	}
}

func TestRenderReviewShowsError(t *testing.T) {
	styles := NewStyles()
	vp := viewport.New(80, 20)

	state := State{
		Mode:      ModeReview,
		Plan:      samplePlan(),
		Viewport:  vp,
		ErrorText: "Anthropic API error 400: bad request",
	}

	output := Render(state, styles)

	if !strings.Contains(output, "Anthropic API error 400") {
		t.Errorf("Expected review to surface the error text")
	}
}

func TestRenderThinkingState(t *testing.T) {
	styles := NewStyles()
	sp := spinner.New()

	state := State{
		Mode:         ModeThinking,
		IsThinking:   true,
		ThinkingText: "calling the model",
		Spinner:      sp,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "repoforge") {
		t.Errorf("Expected thinking indicator to contain 'repoforge'")
	}
	if !strings.Contains(output, "calling the model") {
		t.Errorf("Expected thinking indicator to show the status text")
	}
}

func TestRenderNamePrompt(t *testing.T) {
	styles := NewStyles()
	in := textinput.New()
	in.SetValue("demo")

	state := State{
		Mode:      ModeName,
		RepoIndex: 0,
		Input:     in,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "Repo 1 name") {
		t.Errorf("Expected name prompt for repo 1")
	}
}

func TestRenderConfirmShowsTargetDir(t *testing.T) {
	styles := NewStyles()

	state := State{
		Mode:      ModeConfirm,
		Plan:      samplePlan(),
		RepoIndex: 1,
		RepoDir:   "site",
	}

	output := Render(state, styles)

	if !strings.Contains(output, "Write files for repo 2 into 'site'?") {
		t.Errorf("Expected confirm prompt with target dir, got:\n%s", output)
	}
	if !strings.Contains(output, "index.html") {
		t.Errorf("Expected confirm view to show the final tree")
	}
}

func TestRenderConfirmDryRun(t *testing.T) {
	styles := NewStyles()

	state := State{
		Mode:      ModeConfirm,
		Plan:      samplePlan(),
		RepoIndex: 0,
		RepoDir:   "demo",
		DryRun:    true,
	}

	output := Render(state, styles)

	if !strings.Contains(output, "dry-run") {
		t.Errorf("Expected dry-run notice in confirm view")
	}
	if strings.Contains(output, "Write files for repo 1") {
		t.Errorf("Dry-run confirm should not offer to write files")
	}
}

func TestRenderDoneShowsReport(t *testing.T) {
	styles := NewStyles()

	state := State{
		Mode:   ModeDone,
		Report: "✅ repo 1 done: wrote 2 files into /tmp/demo",
	}

	output := Render(state, styles)

	if !strings.Contains(output, "wrote 2 files into /tmp/demo") {
		t.Errorf("Expected done view to include the report")
	}
}

func TestRepoTreeNestsDirectories(t *testing.T) {
	styles := NewStyles()
	repo := plan.Repo{
		Name: "demo",
		Dir:  "out",
		Files: []plan.File{
			{Path: "src/util/helper.go"},
			{Path: "src/main.go"},
			{Path: "README.md"},
		},
	}

	output := RepoTree(repo, styles)

	for _, want := range []string{"demo", "out", "README.md", "src", "util", "helper.go", "main.go"} {
		if !strings.Contains(output, want) {
			t.Errorf("RepoTree output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "src/main.go") {
		t.Errorf("RepoTree should split paths into segments:\n%s", output)
	}
}

func TestRepoTreeNormalizesBackslashesAndDedups(t *testing.T) {
	styles := NewStyles()
	repo := plan.Repo{
		Name: "demo",
		Files: []plan.File{
			{Path: "docs\\guide.md"},
			{Path: "docs/guide.md"},
		},
	}

	output := RepoTree(repo, styles)

	if got := strings.Count(output, "guide.md"); got != 1 {
		t.Errorf("guide.md rendered %d times, want 1:\n%s", got, output)
	}
}

func TestRepoTreeEmptyDirFallsBackToName(t *testing.T) {
	styles := NewStyles()
	repo := plan.Repo{Name: "solo", Dir: "  "}

	output := RepoTree(repo, styles)

	if !strings.Contains(output, "solo  →  solo") {
		t.Errorf("Expected root label to fall back to the repo name:\n%s", output)
	}
}

func TestPlanPanelsNilPlan(t *testing.T) {
	if got := PlanPanels(nil, NewStyles()); got != "" {
		t.Errorf("PlanPanels(nil) = %q, want empty string", got)
	}
}

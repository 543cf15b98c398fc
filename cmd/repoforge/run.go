package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/Protocol-Lattice/repoforge/internal/config"
	"github.com/Protocol-Lattice/repoforge/internal/generate"
	"github.com/Protocol-Lattice/repoforge/internal/tui"
	"github.com/Protocol-Lattice/repoforge/internal/tui/ui"
	"github.com/Protocol-Lattice/repoforge/internal/workspace"
)

// resolveDescription joins the argument words, falling back to piped stdin.
// An empty result is fine for the TUI path, which opens the prompt screen.
func resolveDescription(args []string) (string, error) {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description != "" {
		return description, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// runTUI drives the interactive review flow and prints the summary table
// once the program exits the alt screen.
func runTUI(ctx context.Context, cfg config.Config, description, outDir string, dryRun bool) error {
	m := tui.NewModel(ctx, cfg, description, outDir, dryRun)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	printSummary(os.Stdout, m.Results())
	return nil
}

// runHeadless is the --yes path: generate, print each repo's tree, write
// everything without prompting. A dry run stops after the preview.
func runHeadless(ctx context.Context, cfg config.Config, description, outDir string, dryRun bool) error {
	if description == "" {
		return errors.New("no description provided; pass it as arguments or pipe it on stdin")
	}

	slog.Debug("generating plan", "provider", cfg.Provider, "model", cfg.Model)
	fmt.Printf("repoforge: asking %s (%s) for a plan...\n", cfg.Provider, cfg.Model)

	p, err := generate.Generate(ctx, cfg, description)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Tip: run `repoforge config` to configure provider/model/keys.")
		return err
	}
	fmt.Printf("planned %d repos, %d files\n\n", len(p.Repos), p.FileCount())

	styles := ui.NewStyles()
	results := make([]tui.RepoResult, 0, len(p.Repos))
	for i, repo := range p.Repos {
		fmt.Println(ui.RepoTree(repo, styles))

		target := repo.Dir
		if !filepath.IsAbs(target) && outDir != "" && outDir != "." {
			target = filepath.Join(outDir, target)
		}
		if dryRun {
			results = append(results, tui.RepoResult{Name: repo.Name, Dir: target, DryRun: true})
			continue
		}

		wrote, fileResults := workspace.Write(target, repo.Files)
		res := tui.RepoResult{Name: repo.Name, Dir: target, Wrote: wrote}
		for _, fr := range fileResults {
			if fr.Err != nil {
				fmt.Fprintf(os.Stderr, "repo %d: %v\n", i+1, fr.Err)
				res.Failed = append(res.Failed, fr)
			}
		}
		results = append(results, res)
	}

	printSummary(os.Stdout, results)
	return nil
}

// printSummary renders the per-repo outcome table.
func printSummary(w io.Writer, results []tui.RepoResult) {
	if len(results) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Repo", "Directory", "Written", "Status"})
	table.SetAutoWrapText(false)
	for i, r := range results {
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Dir,
			strconv.Itoa(r.Wrote),
			statusFor(r),
		})
	}
	table.Render()
}

func statusFor(r tui.RepoResult) string {
	switch {
	case r.DryRun:
		return "dry-run"
	case r.Skipped:
		return "skipped"
	case len(r.Failed) > 0:
		return fmt.Sprintf("%d failed", len(r.Failed))
	default:
		return "ok"
	}
}

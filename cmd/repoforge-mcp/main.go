// repoforge-mcp exposes the repoforge pipeline as MCP tools over stdio, so
// editors and agents can plan, validate and materialize repositories through
// the same validation path the CLI uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Protocol-Lattice/repoforge/internal/config"
	"github.com/Protocol-Lattice/repoforge/internal/generate"
	"github.com/Protocol-Lattice/repoforge/internal/logging"
	"github.com/Protocol-Lattice/repoforge/internal/plan"
	"github.com/Protocol-Lattice/repoforge/internal/workspace"
)

var version = "0.1.0-dev"

func main() {
	slog.SetDefault(logging.New())

	var (
		transport = flag.String("transport", "stdio", "stdio|http")
		addr      = flag.String("addr", ":8091", "addr for http")
		cfgPath   = flag.String("config", config.DefaultPath(), "config file path")
	)
	flag.Parse()

	s := newServer(*cfgPath)

	switch *transport {
	case "stdio":
		if err := server.ServeStdio(s); err != nil {
			log.Fatal(err)
		}
	case "http":
		h := server.NewStreamableHTTPServer(s)
		log.Printf("HTTP listening on %s", *addr)
		if err := h.Start(*addr); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("unknown transport: ", *transport)
	}
}

func newServer(cfgPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"repoforge-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	generateTool := mcp.NewTool("generate_plan",
		mcp.WithDescription("Ask the configured LLM provider to plan 1-3 repositories for a description. Returns the validated plan JSON; writes nothing."),
		mcp.WithString("description", mcp.Required(), mcp.Description("What the repositories should contain")),
		mcp.WithString("provider", mcp.Description("Override the configured provider: openrouter|openai|anthropic|google|openai_compat")),
		mcp.WithString("model", mcp.Description("Override the configured model identifier")),
	)
	s.AddTool(generateTool, handleGeneratePlan(cfgPath))

	validateTool := mcp.NewTool("validate_plan",
		mcp.WithDescription("Validate plan JSON against the repo-plan schema and path-safety rules. Returns the normalized plan."),
		mcp.WithString("plan_json", mcp.Required(), mcp.Description(`Plan JSON: {"repos":[{"name","dir","files":[{"path","content"}]}]}`)),
	)
	s.AddTool(validateTool, handleValidatePlan)

	writeTool := mcp.NewTool("write_repos",
		mcp.WithDescription("Validate plan JSON and write every repo under dest_dir. Planned dirs and file paths cannot escape dest_dir."),
		mcp.WithString("plan_json", mcp.Required(), mcp.Description("Plan JSON as produced by generate_plan")),
		mcp.WithString("dest_dir", mcp.Required(), mcp.Description("Directory the repos are created under")),
	)
	s.AddTool(writeTool, handleWriteRepos)

	return s
}

func handleGeneratePlan(cfgPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		description, err := req.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError("missing description"), nil
		}

		cfg := config.Load(cfgPath)
		if tag := req.GetString("provider", ""); tag != "" {
			cfg.Provider = config.Provider(strings.ToLower(strings.TrimSpace(tag)))
			cfg.Model = config.DefaultModel(cfg.Provider)
		}
		if model := req.GetString("model", ""); model != "" {
			cfg.Model = model
		}

		p, err := generate.Generate(ctx, cfg, description)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generate failed: %v", err)), nil
		}
		res, err := mcp.NewToolResultJSON(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal plan: %v", err)), nil
		}
		return res, nil
	}
}

func handleValidatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("plan_json")
	if err != nil {
		return mcp.NewToolResultError("missing plan_json"), nil
	}

	p, err := plan.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid plan: %v", err)), nil
	}
	res, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal plan: %v", err)), nil
	}
	return res, nil
}

func handleWriteRepos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("plan_json")
	if err != nil {
		return mcp.NewToolResultError("missing plan_json"), nil
	}
	destDir, err := req.RequireString("dest_dir")
	if err != nil {
		return mcp.NewToolResultError("missing dest_dir"), nil
	}

	// Validate the whole plan before the first write.
	p, err := plan.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid plan: %v", err)), nil
	}

	outcomes := writeRepos(p, destDir)
	written, failed := 0, 0
	for _, o := range outcomes {
		written += o.Written
		failed += len(o.Failed)
		if o.Error != "" {
			failed++
		}
	}

	res, err := mcp.NewToolResultJSON(map[string]any{
		"dest_dir": destDir,
		"repos":    outcomes,
		"written":  written,
		"failed":   failed,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return res, nil
}

type repoOutcome struct {
	Repo    string   `json:"repo"`
	Dir     string   `json:"dir"`
	Written int      `json:"written"`
	Failed  []string `json:"failed,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// writeRepos materializes each repo under destDir. Unlike the CLI, where the
// user approves every target dir, here planned dirs are confined to destDir:
// a dir that resolves outside it fails that repo and the remaining repos
// still proceed.
func writeRepos(p *plan.Plan, destDir string) []repoOutcome {
	outcomes := make([]repoOutcome, 0, len(p.Repos))
	for _, repo := range p.Repos {
		dir := strings.TrimSpace(repo.Dir)
		if dir == "" {
			dir = repo.Name
		}

		target, err := workspace.Resolve(destDir, dir)
		if err != nil {
			outcomes = append(outcomes, repoOutcome{Repo: repo.Name, Dir: dir, Error: err.Error()})
			continue
		}

		wrote, fileResults := workspace.Write(target, repo.Files)
		outcome := repoOutcome{Repo: repo.Name, Dir: target, Written: wrote}
		for _, fr := range fileResults {
			if fr.Err != nil {
				outcome.Failed = append(outcome.Failed, fmt.Sprintf("%s: %v", fr.Path, fr.Err))
			}
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

package generate

import "fmt"

// systemPrompt pins the model to the plan schema. Adapters send it through
// whatever system-instruction channel their protocol has.
const systemPrompt = `You are a repository generator.

Return ONLY valid JSON (no markdown, no extra text).
Schema:
{
  "repos": [
    {
      "name": "string",
      "dir": "string",
      "files": [
        {"path": "relative/path.ext", "content": "file content as plain text"}
      ]
    }
  ]
}

Rules:
- paths must be relative, no absolute paths, no parent traversal
- keep repo small but runnable
- include a README.md when appropriate
`

func userContent(request string) string {
	return fmt.Sprintf("User request:\n%s\n\nGenerate 1-3 repos if it makes sense.", request)
}

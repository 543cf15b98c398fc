package plan

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeValidPlan(t *testing.T) {
	data := []byte(`{
		"repos": [
			{"name": "api", "dir": "api", "files": [
				{"path": "main.go", "content": "package main\n"},
				{"path": "docs/README.md", "content": "# api\n"}
			]},
			{"name": "web", "dir": "sites/web", "files": []}
		]
	}`)

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	want := &Plan{Repos: []Repo{
		{Name: "api", Dir: "api", Files: []File{
			{Path: "main.go", Content: "package main\n"},
			{Path: "docs/README.md", Content: "# api\n"},
		}},
		{Name: "web", Dir: "sites/web", Files: []File{}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected plan:\n got %#v\nwant %#v", got, want)
	}
	if got.FileCount() != 2 {
		t.Fatalf("FileCount = %d, want 2", got.FileCount())
	}
}

func TestDecodeEmptyPlan(t *testing.T) {
	for _, input := range []string{`{}`, `{"repos":[]}`, `{"other":"keys"}`} {
		if _, err := Decode([]byte(input)); !errors.Is(err, ErrEmptyPlan) {
			t.Fatalf("Decode(%s): expected ErrEmptyPlan, got %v", input, err)
		}
	}
}

func TestDecodeRepoWithZeroFilesIsLegal(t *testing.T) {
	got, err := Decode([]byte(`{"repos":[{"name":"empty","dir":"empty","files":[]}]}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(got.Repos) != 1 || len(got.Repos[0].Files) != 0 {
		t.Fatalf("unexpected plan: %#v", got)
	}
}

func TestDecodeMissingRepoKeys(t *testing.T) {
	cases := []string{
		`{"repos":[{"dir":"a","files":[]}]}`,
		`{"repos":[{"name":"a","files":[]}]}`,
		`{"repos":[{"name":"a","dir":"a"}]}`,
		`{"repos":["not an object"]}`,
	}
	for _, input := range cases {
		var malformed *MalformedRepoError
		_, err := Decode([]byte(input))
		if !errors.As(err, &malformed) {
			t.Fatalf("Decode(%s): expected MalformedRepoError, got %v", input, err)
		}
	}
}

func TestDecodeFilesNotAList(t *testing.T) {
	var malformed *MalformedRepoError
	_, err := Decode([]byte(`{"repos":[{"name":"a","dir":"a","files":"nope"}]}`))
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRepoError, got %v", err)
	}
}

func TestDecodeRejectsUnsafePaths(t *testing.T) {
	cases := []string{
		`{"repos":[{"name":"a","dir":"a","files":[{"path":"../evil.txt","content":""}]}]}`,
		`{"repos":[{"name":"a","dir":"a","files":[{"path":"ok/../../evil.txt","content":""}]}]}`,
		`{"repos":[{"name":"a","dir":"a","files":[{"path":"/etc/passwd","content":""}]}]}`,
		`{"repos":[{"name":"a","dir":"a","files":[{"path":"C:\\windows\\system32","content":""}]}]}`,
		`{"repos":[{"name":"a","dir":"a","files":[{"path":"  ","content":""}]}]}`,
		`{"repos":[{"name":"a","dir":"a","files":[{"content":"no path"}]}]}`,
	}
	for _, input := range cases {
		var unsafe *UnsafePathError
		_, err := Decode([]byte(input))
		if !errors.As(err, &unsafe) {
			t.Fatalf("Decode(%s): expected UnsafePathError, got %v", input, err)
		}
	}
}

func TestDecodeBackslashPathStaysSafe(t *testing.T) {
	got, err := Decode([]byte(`{"repos":[{"name":"a","dir":"a","files":[{"path":"docs\\guide.md","content":"x"}]}]}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Repos[0].Files[0].Path != `docs\guide.md` {
		t.Fatalf("path = %q, want original backslash form preserved", got.Repos[0].Files[0].Path)
	}
}

func TestDecodeCoercesContent(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`{"repos":[{"name":"a","dir":"a","files":[{"path":"f","content":42}]}]}`, "42"},
		{`{"repos":[{"name":"a","dir":"a","files":[{"path":"f","content":1.5}]}]}`, "1.5"},
		{`{"repos":[{"name":"a","dir":"a","files":[{"path":"f","content":true}]}]}`, "true"},
		{`{"repos":[{"name":"a","dir":"a","files":[{"path":"f","content":{"a":1}}]}]}`, `{"a":1}`},
		{`{"repos":[{"name":"a","dir":"a","files":[{"path":"f","content":null}]}]}`, ""},
		{`{"repos":[{"name":"a","dir":"a","files":[{"path":"f"}]}]}`, ""},
	}
	for _, tc := range cases {
		got, err := Decode([]byte(tc.input))
		if err != nil {
			t.Fatalf("Decode(%s) returned error: %v", tc.input, err)
		}
		if c := got.Repos[0].Files[0].Content; c != tc.want {
			t.Fatalf("Decode(%s): content = %q, want %q", tc.input, c, tc.want)
		}
	}
}

func TestDecodeIgnoresExtraKeys(t *testing.T) {
	data := []byte(`{
		"repos": [{"name":"a","dir":"a","files":[],"license":"MIT"}],
		"reasoning": "because"
	}`)
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(got.Repos) != 1 || got.Repos[0].Name != "a" {
		t.Fatalf("unexpected plan: %#v", got)
	}
}

func TestDecodeNotJSON(t *testing.T) {
	if _, err := Decode([]byte(`{"repos": [`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

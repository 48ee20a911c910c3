package cfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const diamondYAML = `function_name: diamond
entry_block_id: entry
blocks:
  - id: entry
    type: entry
  - id: a
  - id: b
  - id: exit
    type: exit
edges:
  - source_id: entry
    target_id: a
  - source_id: entry
    target_id: b
  - source_id: a
    target_id: exit
  - source_id: b
    target_id: exit
`

func TestLoadDocumentYAML(t *testing.T) {
	path := writeTempFile(t, "diamond.yaml", diamondYAML)

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	if doc.FunctionName != "diamond" {
		t.Errorf("FunctionName = %q, want %q", doc.FunctionName, "diamond")
	}
	if len(doc.Blocks) != 4 {
		t.Errorf("len(Blocks) = %d, want 4", len(doc.Blocks))
	}
	if len(doc.Edges) != 4 {
		t.Errorf("len(Edges) = %d, want 4", len(doc.Edges))
	}
}

func TestLoadDocumentJSON(t *testing.T) {
	path := writeTempFile(t, "chain.json", `{
  "function_name": "chain",
  "entry_block_id": "e1",
  "blocks": [{"id": "e1"}, {"id": "e2"}],
  "edges": [{"source_id": "e1", "target_id": "e2"}]
}`)

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if doc.EntryID != "e1" {
		t.Errorf("EntryID = %q, want %q", doc.EntryID, "e1")
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadDocument() on missing file: expected error")
	}
}

func TestDocumentFunction(t *testing.T) {
	path := writeTempFile(t, "diamond.yaml", diamondYAML)
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	fn, err := doc.Function()
	if err != nil {
		t.Fatalf("Function() error = %v", err)
	}

	if fn.Entry == nil || fn.Entry.Name != "entry" {
		t.Fatalf("Entry = %v, want block %q", fn.Entry, "entry")
	}
	if len(fn.Blocks) != 4 {
		t.Fatalf("len(Blocks) = %d, want 4", len(fn.Blocks))
	}

	entry := fn.BlockByName("entry")
	if got := len(entry.Successors()); got != 2 {
		t.Errorf("entry successors = %d, want 2", got)
	}
	exit := fn.BlockByName("exit")
	if got := len(exit.Predecessors()); got != 2 {
		t.Errorf("exit predecessors = %d, want 2", got)
	}

	exits := fn.ExitBlocks()
	if len(exits) != 1 || exits[0] != exit {
		t.Errorf("ExitBlocks() = %v, want [exit]", exits)
	}
}

func TestDocumentFunctionValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "duplicate block id",
			doc: Document{
				FunctionName: "f",
				Blocks:       []BlockDoc{{ID: "a"}, {ID: "a"}},
			},
		},
		{
			name: "unknown entry",
			doc: Document{
				FunctionName: "f",
				Blocks:       []BlockDoc{{ID: "a"}},
				EntryID:      "missing",
			},
		},
		{
			name: "unknown edge source",
			doc: Document{
				FunctionName: "f",
				Blocks:       []BlockDoc{{ID: "a"}},
				Edges:        []EdgeDoc{{SourceID: "missing", TargetID: "a"}},
			},
		},
		{
			name: "unknown edge target",
			doc: Document{
				FunctionName: "f",
				Blocks:       []BlockDoc{{ID: "a"}},
				Edges:        []EdgeDoc{{SourceID: "a", TargetID: "missing"}},
			},
		},
		{
			name: "empty block id",
			doc: Document{
				FunctionName: "f",
				Blocks:       []BlockDoc{{ID: ""}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.doc.Function(); err == nil {
				t.Error("Function(): expected validation error")
			}
		})
	}
}

func TestFunctionDocumentRoundTrip(t *testing.T) {
	path := writeTempFile(t, "diamond.yaml", diamondYAML)
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	fn, err := doc.Function()
	if err != nil {
		t.Fatalf("Function() error = %v", err)
	}

	out := fn.Document()
	if out.FunctionName != doc.FunctionName {
		t.Errorf("FunctionName = %q, want %q", out.FunctionName, doc.FunctionName)
	}
	if out.EntryID != "entry" {
		t.Errorf("EntryID = %q, want %q", out.EntryID, "entry")
	}
	if len(out.Blocks) != len(doc.Blocks) {
		t.Errorf("len(Blocks) = %d, want %d", len(out.Blocks), len(doc.Blocks))
	}
	if len(out.Edges) != len(doc.Edges) {
		t.Errorf("len(Edges) = %d, want %d", len(out.Edges), len(doc.Edges))
	}
	if len(out.ExitIDs) != 1 || out.ExitIDs[0] != "exit" {
		t.Errorf("ExitIDs = %v, want [exit]", out.ExitIDs)
	}
}

package cfg

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads a graph document from a YAML or JSON file, chosen by
// extension (.json is JSON, everything else is parsed as YAML).
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph document %s: %w", path, err)
	}

	doc := &Document{}
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parsing graph document %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parsing graph document %s: %w", path, err)
		}
	}

	return doc, nil
}

// Function validates the document and links it into an in-memory graph.
// Validation errors: duplicate block id, unknown entry id, edge endpoint
// referencing an undeclared block.
func (d *Document) Function() (*Function, error) {
	fn := NewFunction(d.FunctionName)

	for _, bd := range d.Blocks {
		if bd.ID == "" {
			return nil, fmt.Errorf("function %s: block with empty id", d.FunctionName)
		}
		if fn.BlockByName(bd.ID) != nil {
			return nil, fmt.Errorf("function %s: duplicate block id %q", d.FunctionName, bd.ID)
		}
		b := fn.NewBlock(bd.ID, bd.Type)
		b.StartLine = bd.StartLine
		b.EndLine = bd.EndLine
		b.Statements = bd.Statements
	}

	if d.EntryID != "" {
		entry := fn.BlockByName(d.EntryID)
		if entry == nil {
			return nil, fmt.Errorf("function %s: entry block %q not declared", d.FunctionName, d.EntryID)
		}
		fn.SetEntry(entry)
	}

	for _, ed := range d.Edges {
		src := fn.BlockByName(ed.SourceID)
		if src == nil {
			return nil, fmt.Errorf("function %s: edge source %q not declared", d.FunctionName, ed.SourceID)
		}
		dst := fn.BlockByName(ed.TargetID)
		if dst == nil {
			return nil, fmt.Errorf("function %s: edge target %q not declared", d.FunctionName, ed.TargetID)
		}
		fn.AddEdge(src, dst)
	}

	return fn, nil
}

// Document converts a linked function graph back to its serializable form.
func (f *Function) Document() *Document {
	doc := &Document{FunctionName: f.Name}

	for _, b := range f.Blocks {
		doc.Blocks = append(doc.Blocks, BlockDoc{
			ID:         b.Name,
			Type:       b.Type,
			StartLine:  b.StartLine,
			EndLine:    b.EndLine,
			Statements: b.Statements,
		})
		for _, s := range b.Successors() {
			doc.Edges = append(doc.Edges, EdgeDoc{SourceID: b.Name, TargetID: s.Name})
		}
	}

	if f.Entry != nil {
		doc.EntryID = f.Entry.Name
	}
	for _, b := range f.ExitBlocks() {
		doc.ExitIDs = append(doc.ExitIDs, b.Name)
	}
	sort.Strings(doc.ExitIDs)

	return doc
}

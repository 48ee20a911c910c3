// Package cfg defines the control flow graph model consumed by the dominance
// analyses. It provides a serializable graph document, a linked in-memory
// function graph, and an extractor that builds graphs from Go source.
package cfg

// BlockType represents the type of a CFG block.
type BlockType string

const (
	BlockTypeEntry  BlockType = "entry"  // Function entry point
	BlockTypeBranch BlockType = "branch" // Conditional branch
	BlockTypeLoop   BlockType = "loop"   // Loop header
	BlockTypeReturn BlockType = "return" // Return statement
	BlockTypeExit   BlockType = "exit"   // Function exit point
	BlockTypePlain  BlockType = "plain"  // Regular statements
)

// EdgeType represents the type of a CFG edge.
type EdgeType string

const (
	EdgeTypeUnconditional EdgeType = "unconditional" // Unconditional jump
	EdgeTypeTrue          EdgeType = "true"          // True branch of conditional
	EdgeTypeFalse         EdgeType = "false"         // False branch of conditional
	EdgeTypeBackEdge      EdgeType = "back_edge"     // Back edge (loop continuation)
)

// BlockDoc is the serializable form of a basic block.
type BlockDoc struct {
	ID         string    `json:"id" yaml:"id"`
	Type       BlockType `json:"type,omitempty" yaml:"type,omitempty"`
	StartLine  int       `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	EndLine    int       `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	Statements []string  `json:"statements,omitempty" yaml:"statements,omitempty"`
}

// EdgeDoc is the serializable form of a directed edge between two blocks.
type EdgeDoc struct {
	SourceID  string   `json:"source_id" yaml:"source_id"`
	TargetID  string   `json:"target_id" yaml:"target_id"`
	EdgeType  EdgeType `json:"edge_type,omitempty" yaml:"edge_type,omitempty"`
	Condition string   `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Document is the serializable form of a complete per-function CFG.
// Block order is significant: it fixes the block iteration order of the
// in-memory graph built from the document.
type Document struct {
	FunctionName string     `json:"function_name" yaml:"function_name"`
	Blocks       []BlockDoc `json:"blocks" yaml:"blocks"`
	Edges        []EdgeDoc  `json:"edges" yaml:"edges"`
	EntryID      string     `json:"entry_block_id" yaml:"entry_block_id"`
	ExitIDs      []string   `json:"exit_block_ids,omitempty" yaml:"exit_block_ids,omitempty"`
}

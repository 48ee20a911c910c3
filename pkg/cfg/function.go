package cfg

// Block is a basic block in a linked function graph. Blocks compare by
// identity: two blocks are the same block only if they are the same pointer.
type Block struct {
	Name       string
	Type       BlockType
	StartLine  int
	EndLine    int
	Statements []string

	succs []*Block
	preds []*Block
}

// Successors returns the ordered successor list of the block.
// The returned slice must not be modified.
func (b *Block) Successors() []*Block { return b.succs }

// Predecessors returns the ordered predecessor list of the block.
// The returned slice must not be modified.
func (b *Block) Predecessors() []*Block { return b.preds }

// Function is a read-only per-function control flow graph: an ordered block
// list with a designated entry block.
type Function struct {
	Name   string
	Blocks []*Block
	Entry  *Block

	byName map[string]*Block
}

// NewFunction creates an empty function graph.
func NewFunction(name string) *Function {
	return &Function{
		Name:   name,
		byName: make(map[string]*Block),
	}
}

// NewBlock appends a new block to the function and returns it.
// The first block added becomes the entry unless SetEntry overrides it.
func (f *Function) NewBlock(name string, t BlockType) *Block {
	b := &Block{Name: name, Type: t}
	f.Blocks = append(f.Blocks, b)
	f.byName[name] = b
	if f.Entry == nil {
		f.Entry = b
	}
	return b
}

// SetEntry designates the entry block of the function.
func (f *Function) SetEntry(b *Block) { f.Entry = b }

// BlockByName returns the block with the given name, or nil.
func (f *Function) BlockByName(name string) *Block { return f.byName[name] }

// AddEdge links from→to, maintaining both successor and predecessor lists.
// Duplicate edges are ignored.
func (f *Function) AddEdge(from, to *Block) {
	for _, s := range from.succs {
		if s == to {
			return
		}
	}
	from.succs = append(from.succs, to)
	to.preds = append(to.preds, from)
}

// ExitBlocks returns the blocks with no successors, in block-list order.
func (f *Function) ExitBlocks() []*Block {
	var exits []*Block
	for _, b := range f.Blocks {
		if len(b.succs) == 0 {
			exits = append(exits, b)
		}
	}
	return exits
}

package cfg

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// goExtractor builds a function graph from Go source using tree-sitter.
type goExtractor struct {
	content []byte
	fn      *Function
	nblocks int
}

// ExtractGoFunction parses a Go file and builds the CFG of one named
// function or method. Return statements become terminal blocks, so a
// function can have several exit blocks.
func ExtractGoFunction(filePath, functionName string) (*Function, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filePath, err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree := parser.Parse(nil, content)
	defer tree.Close()

	e := &goExtractor{content: content, fn: NewFunction(functionName)}

	funcNode := e.findFunction(tree.RootNode(), functionName)
	if funcNode == nil {
		return nil, fmt.Errorf("function %q not found in %s", functionName, filePath)
	}
	body := funcNode.ChildByFieldName("body")
	if body == nil {
		return nil, fmt.Errorf("function body not found for %s", functionName)
	}

	entry := e.newBlock(BlockTypeEntry, funcNode)
	entry.Statements = []string{"entry"}
	end := e.processBlock(body, entry)
	if end != nil {
		exit := e.newBlock(BlockTypeExit, body)
		exit.Statements = []string{"exit"}
		e.fn.AddEdge(end, exit)
	}

	return e.fn, nil
}

// ListGoFunctions returns the names of all functions and methods declared in
// a Go file, in source order.
func ListGoFunctions(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filePath, err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree := parser.Parse(nil, content)
	defer tree.Close()

	var names []string
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == "function_declaration" || child.Type() == "method_declaration" {
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, string(content[name.StartByte():name.EndByte()]))
			}
		}
	}
	return names, nil
}

func (e *goExtractor) findFunction(node *sitter.Node, funcName string) *sitter.Node {
	if node == nil {
		return nil
	}

	if node.Type() == "function_declaration" || node.Type() == "method_declaration" {
		if name := node.ChildByFieldName("name"); name != nil && e.nodeText(name) == funcName {
			return node
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if found := e.findFunction(node.NamedChild(i), funcName); found != nil {
			return found
		}
	}
	return nil
}

// processBlock walks the statements of a block node, growing the graph from
// cur. It returns the block control falls out of, or nil when every path
// through the statements ends in a return.
func (e *goExtractor) processBlock(blockNode *sitter.Node, cur *Block) *Block {
	for i := 0; i < int(blockNode.NamedChildCount()); i++ {
		child := blockNode.NamedChild(i)
		if child == nil {
			continue
		}
		if cur == nil {
			// Statements after a return are unreachable; keep them as an
			// isolated block so the analysis can observe them.
			cur = e.newBlock(BlockTypePlain, child)
		}

		switch child.Type() {
		case "if_statement":
			cur = e.processIf(child, cur)
		case "for_statement":
			cur = e.processFor(child, cur)
		case "return_statement":
			e.processReturn(child, cur)
			cur = nil
		case "expression_switch_statement", "type_switch_statement", "select_statement":
			cur = e.processSwitch(child, cur)
		default:
			e.appendStatement(cur, child)
		}
	}
	return cur
}

func (e *goExtractor) processIf(node *sitter.Node, cur *Block) *Block {
	branch := e.newBlock(BlockTypeBranch, node)
	if cond := node.ChildByFieldName("condition"); cond != nil {
		branch.Statements = []string{"if " + e.nodeText(cond)}
	} else {
		branch.Statements = []string{"if"}
	}
	e.fn.AddEdge(cur, branch)

	then := e.newBlock(BlockTypePlain, node)
	e.fn.AddEdge(branch, then)
	thenEnd := then
	if cons := node.ChildByFieldName("consequence"); cons != nil {
		thenEnd = e.processBlock(cons, then)
	}

	join := e.newBlock(BlockTypePlain, node)
	if thenEnd != nil {
		e.fn.AddEdge(thenEnd, join)
	}

	alt := node.ChildByFieldName("alternative")
	switch {
	case alt == nil:
		e.fn.AddEdge(branch, join)
	case alt.Type() == "if_statement":
		// else-if chain: the nested if hangs off the false edge
		elsEnd := e.processIf(alt, branch)
		if elsEnd != nil {
			e.fn.AddEdge(elsEnd, join)
		}
	default:
		els := e.newBlock(BlockTypePlain, alt)
		e.fn.AddEdge(branch, els)
		if elsEnd := e.processBlock(alt, els); elsEnd != nil {
			e.fn.AddEdge(elsEnd, join)
		}
	}
	return join
}

func (e *goExtractor) processFor(node *sitter.Node, cur *Block) *Block {
	header := e.newBlock(BlockTypeLoop, node)
	header.Statements = []string{e.loopHeaderText(node)}
	e.fn.AddEdge(cur, header)

	body := e.newBlock(BlockTypePlain, node)
	e.fn.AddEdge(header, body)
	if b := node.ChildByFieldName("body"); b != nil {
		if bodyEnd := e.processBlock(b, body); bodyEnd != nil {
			e.fn.AddEdge(bodyEnd, header)
		}
	}

	after := e.newBlock(BlockTypePlain, node)
	e.fn.AddEdge(header, after)
	return after
}

func (e *goExtractor) processReturn(node *sitter.Node, cur *Block) {
	ret := e.newBlock(BlockTypeReturn, node)
	ret.Statements = []string{e.nodeText(node)}
	e.fn.AddEdge(cur, ret)
}

// processSwitch flattens switch and select statements into a branch block
// with one block per case, all rejoining afterwards. Control flow nested
// inside case bodies is not expanded further.
func (e *goExtractor) processSwitch(node *sitter.Node, cur *Block) *Block {
	head := e.newBlock(BlockTypeBranch, node)
	head.Statements = []string{strings.SplitN(e.nodeText(node), "{", 2)[0] + "{"}
	e.fn.AddEdge(cur, head)

	join := e.newBlock(BlockTypePlain, node)
	hasCase := false
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "expression_case", "default_case", "type_case", "communication_case":
			hasCase = true
			caseBlock := e.newBlock(BlockTypePlain, child)
			caseBlock.Statements = []string{e.nodeText(child)}
			e.fn.AddEdge(head, caseBlock)
			e.fn.AddEdge(caseBlock, join)
		}
	}
	if !hasCase {
		e.fn.AddEdge(head, join)
	}
	return join
}

func (e *goExtractor) appendStatement(cur *Block, node *sitter.Node) {
	stmt := strings.TrimSpace(e.nodeText(node))
	if stmt == "" || strings.HasPrefix(stmt, "//") || strings.HasPrefix(stmt, "/*") {
		return
	}
	cur.Statements = append(cur.Statements, stmt)
	cur.EndLine = int(node.EndPoint().Row) + 1
}

// loopHeaderText renders the for clause: the only named child that is not
// the loop body (a for_clause, range_clause or bare condition expression).
func (e *goExtractor) loopHeaderText(node *sitter.Node) string {
	body := node.ChildByFieldName("body")
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c == nil {
			continue
		}
		if body != nil && c.StartByte() == body.StartByte() && c.EndByte() == body.EndByte() {
			continue
		}
		return "for " + e.nodeText(c)
	}
	return "for {}"
}

func (e *goExtractor) newBlock(t BlockType, node *sitter.Node) *Block {
	e.nblocks++
	b := e.fn.NewBlock(fmt.Sprintf("block_%d", e.nblocks), t)
	if node != nil {
		b.StartLine = int(node.StartPoint().Row) + 1
		b.EndLine = int(node.EndPoint().Row) + 1
	}
	return b
}

func (e *goExtractor) nodeText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= uint32(len(e.content)) || end > uint32(len(e.content)) {
		return ""
	}
	return string(e.content[start:end])
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"py2cpp/internal/ast"
	"py2cpp/internal/types"
)

// TypeLookup supplies inferred node types for tree output; nil means none.
type TypeLookup interface {
	TypeOf(id ast.NodeID) types.Type
}

type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Value    string          `json:"value,omitempty"`
	Line     uint32          `json:"line"`
	Col      uint32          `json:"col"`
	Type     string          `json:"type,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty prints the tree one node per line:
//
//	Program
//	└─ Assign(x) @1:1
//	   └─ Literal(5) @1:5
func FormatASTPretty(w io.Writer, b *ast.Builder, root ast.NodeID, typesOf TypeLookup) error {
	if b.Nodes.Get(root) == nil {
		return fmt.Errorf("node %d not found", root)
	}
	var sb strings.Builder
	writeNode(&sb, b, root, "", "", typesOf)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeNode(sb *strings.Builder, b *ast.Builder, id ast.NodeID, lead, childLead string, typesOf TypeLookup) {
	sb.WriteString(lead)
	sb.WriteString(nodeLabel(b, id, typesOf))
	sb.WriteByte('\n')
	children := b.Children(id)
	for i, child := range children {
		last := i == len(children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		if !child.IsValid() {
			sb.WriteString(childLead + branch + "<missing>\n")
			continue
		}
		writeNode(sb, b, child, childLead+branch, childLead+next, typesOf)
	}
}

func nodeLabel(b *ast.Builder, id ast.NodeID, typesOf TypeLookup) string {
	node := b.Nodes.Get(id)
	if node == nil {
		return "<nil>"
	}
	label := node.Kind.String()
	if v := b.Value(id); v != "" {
		label += "(" + v + ")"
	}
	if node.Kind != ast.Program {
		label += " @" + node.Pos.String()
	}
	if typesOf != nil && node.Kind != ast.Program {
		label += " : " + typesOf.TypeOf(id).String()
	}
	return label
}

func buildASTOutput(b *ast.Builder, id ast.NodeID, typesOf TypeLookup) ASTNodeOutput {
	node := b.Nodes.Get(id)
	if node == nil {
		return ASTNodeOutput{Kind: "<missing>"}
	}
	out := ASTNodeOutput{
		Kind:  node.Kind.String(),
		Value: b.Value(id),
		Line:  node.Pos.Line,
		Col:   node.Pos.Col,
	}
	if typesOf != nil && node.Kind != ast.Program {
		out.Type = typesOf.TypeOf(id).String()
	}
	for _, child := range b.Children(id) {
		out.Children = append(out.Children, buildASTOutput(b, child, typesOf))
	}
	return out
}

func FormatASTJSON(w io.Writer, b *ast.Builder, root ast.NodeID, typesOf TypeLookup) error {
	if b.Nodes.Get(root) == nil {
		return fmt.Errorf("node %d not found", root)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildASTOutput(b, root, typesOf))
}

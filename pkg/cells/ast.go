package cells

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ASTBuilder is a CellHandler that builds a Shape AST:
//   - *ast.ArrayDataNode for the input (array of rows)
//   - *ast.ArrayDataNode for each row (array of cells)
//   - *ast.LiteralNode holding each decoded cell as a string
//
// Node positions carry the byte offset in the stream and the 1-indexed line
// and column where the cell starts.
type ASTBuilder struct {
	rows   []ast.SchemaNode
	cells  []ast.SchemaNode
	rowPos ast.Position
	root   ast.SchemaNode

	offset int
	line   int
	column int
}

// NewASTBuilder returns an ASTBuilder positioned at the start of a stream.
func NewASTBuilder() *ASTBuilder {
	return &ASTBuilder{line: 1, column: 1}
}

// NewCell implements CellHandler.
func (b *ASTBuilder) NewCell(buf []byte, offset, length int) error {
	raw := buf[offset : offset+length]
	pos := ast.NewPosition(b.offset, b.line, b.column)
	if len(b.cells) == 0 {
		b.rowPos = pos
	}
	b.cells = append(b.cells, ast.NewLiteralNode(string(Unquote(raw)), pos))

	// Quoted cells may span lines.
	if n := bytes.Count(raw, []byte{'\n'}); n > 0 {
		b.line += n
		b.column = length - bytes.LastIndexByte(raw, '\n')
	} else {
		b.column += length
	}
	b.offset += length + 1
	b.column++
	return nil
}

// EndOfRow implements CellHandler.
func (b *ASTBuilder) EndOfRow() error {
	b.rows = append(b.rows, ast.NewArrayDataNode(b.cells, b.rowPos))
	b.cells = nil
	b.line++
	b.column = 1
	return nil
}

// End implements CellHandler.
func (b *ASTBuilder) End() error {
	if len(b.cells) > 0 {
		b.rows = append(b.rows, ast.NewArrayDataNode(b.cells, b.rowPos))
		b.cells = nil
	}
	rows := b.rows
	if rows == nil {
		rows = []ast.SchemaNode{}
	}
	b.root = ast.NewArrayDataNode(rows, ast.ZeroPosition())
	return nil
}

// Node returns the built AST, or nil before End.
func (b *ASTBuilder) Node() ast.SchemaNode {
	return b.root
}

// ParseAST parses r into a Shape AST using a buffer of bufferSize bytes.
func ParseAST(r io.Reader, bufferSize int) (ast.SchemaNode, error) {
	builder := NewASTBuilder()
	if err := NewParser(bufferSize).Parse(r, builder); err != nil {
		return nil, err
	}
	return builder.Node(), nil
}

// NodeToRows converts an AST built by ASTBuilder back to string rows.
func NodeToRows(node ast.SchemaNode) ([][]string, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	elements := arrayNode.Elements()
	rows := make([][]string, 0, len(elements))
	for i, element := range elements {
		rowNode, ok := element.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("row %d: expected *ast.ArrayDataNode, got %T", i, element)
		}

		cellNodes := rowNode.Elements()
		row := make([]string, 0, len(cellNodes))
		for j, cellNode := range cellNodes {
			literal, ok := cellNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("row %d, cell %d: expected *ast.LiteralNode, got %T", i, j, cellNode)
			}
			value, ok := literal.Value().(string)
			if !ok {
				return nil, fmt.Errorf("row %d, cell %d: expected string value, got %T", i, j, literal.Value())
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

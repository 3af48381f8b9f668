package signpost

import (
	"errors"
	"fmt"
	"strings"
)

const (
	paramOpenChar  = '<'
	paramCloseChar = '>'
	groupOpenChar  = '('
	groupCloseChar = ')'
)

// Pattern is a parsed route pattern. Patterns are made of literal text,
// named parameters ('<id>'), and optional groups ('(/<page>)') which may nest
// to any depth. Use NewPattern to create patterns from strings.
type Pattern struct {
	str   string
	nodes []Node
}

// NodeKind identifies what a pattern Node represents.
type NodeKind int

const (
	// LiteralNode is text matched and emitted verbatim.
	LiteralNode NodeKind = iota
	// ParamNode is a named parameter.
	ParamNode
	// OptionalNode is a group that may be absent from a concrete path.
	OptionalNode
)

// Node is a single element of a parsed pattern tree.
//
// DependsOn holds the names of the parameters that are direct children of an
// optional group. Parameters inside a further nested group are not included;
// whether a group is rendered when building a path is decided by its own
// parameters only.
type Node struct {
	Kind      NodeKind `json:"kind" msgpack:"kind"`
	Text      string   `json:"text,omitempty" msgpack:"text,omitempty"`
	Name      string   `json:"name,omitempty" msgpack:"name,omitempty"`
	Children  []Node   `json:"children,omitempty" msgpack:"children,omitempty"`
	DependsOn []string `json:"dependsOn,omitempty" msgpack:"dependsOn,omitempty"`
}

// NewPattern parses a pattern string. Supported syntax: literal text
// ('/users'), named parameters ('<id>', names matching [A-Za-z_][\w-]*), and
// optional groups ('(/page/<page>)'). Examples: '/users/<id>',
// '/archive(/<year>(/<month>))'. A '<...>' that is not a well formed
// parameter is treated as literal text. Returns an error if the optional
// groups are unbalanced or a parameter name is used twice.
func NewPattern(patternStr string) (*Pattern, error) {
	nodes, err := parsePatternNodes(patternStr)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, name := range paramNames(nodes, nil) {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, name)
		}
		seen[name] = true
	}

	return &Pattern{
		str:   patternStr,
		nodes: nodes,
	}, nil
}

// Nodes returns a copy of the parsed pattern tree.
func (p *Pattern) Nodes() []Node {
	return cloneNodes(p.nodes)
}

// Params returns the names of every parameter in the pattern, including those
// inside optional groups, in the order they appear.
func (p *Pattern) Params() []string {
	return paramNames(p.nodes, nil)
}

// String returns the string representation of the pattern.
func (p *Pattern) String() string {
	return p.str
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	switch k {
	case LiteralNode:
		return []byte("literal"), nil
	case ParamNode:
		return []byte("param"), nil
	case OptionalNode:
		return []byte("optional"), nil
	}
	return nil, fmt.Errorf("unknown node kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "literal":
		*k = LiteralNode
	case "param":
		*k = ParamNode
	case "optional":
		*k = OptionalNode
	default:
		return errors.New("unknown node kind: " + string(text))
	}
	return nil
}

func parsePatternNodes(patternStr string) ([]Node, error) {
	nodes := make([]Node, 0)
	buffer := strings.Builder{}
	isSeekingClose := false
	depth := 0

	for i := 0; i < len(patternStr); i += 1 {
		currentChar := patternStr[i]

		switch {
		case currentChar == groupOpenChar && !isSeekingClose:
			nodes = appendTextNodes(nodes, buffer.String())
			buffer.Reset()
			isSeekingClose = true
			depth = 0

		case currentChar == groupOpenChar:
			depth += 1
			buffer.WriteByte(currentChar)

		case currentChar == groupCloseChar && isSeekingClose && depth == 0:
			children, err := parsePatternNodes(buffer.String())
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, newOptionalNode(children))
			buffer.Reset()
			isSeekingClose = false

		case currentChar == groupCloseChar && isSeekingClose:
			depth -= 1
			buffer.WriteByte(currentChar)

		case currentChar == groupCloseChar:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrUnbalancedGroup, groupCloseChar, patternStr)

		default:
			buffer.WriteByte(currentChar)
		}
	}

	if isSeekingClose {
		return nil, fmt.Errorf("%w: unclosed %q in %q", ErrUnbalancedGroup, groupOpenChar, patternStr)
	}

	return appendTextNodes(nodes, buffer.String()), nil
}

func newOptionalNode(children []Node) Node {
	dependsOn := make([]string, 0)
	for _, child := range children {
		if child.Kind == ParamNode {
			dependsOn = append(dependsOn, child.Name)
		}
	}
	return Node{
		Kind:      OptionalNode,
		Children:  children,
		DependsOn: dependsOn,
	}
}

// appendTextNodes splits text outside of any group into literal and parameter
// nodes. Neighbouring literal text is merged into a single node.
func appendTextNodes(nodes []Node, text string) []Node {
	literal := strings.Builder{}
	flushLiteral := func() {
		if literal.Len() != 0 {
			nodes = append(nodes, Node{Kind: LiteralNode, Text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(text); i += 1 {
		if text[i] == paramOpenChar {
			if name, end, ok := readParamName(text, i); ok {
				flushLiteral()
				nodes = append(nodes, Node{Kind: ParamNode, Name: name})
				i = end
				continue
			}
		}
		literal.WriteByte(text[i])
	}
	flushLiteral()

	return nodes
}

// readParamName reads a '<name>' placeholder starting at offset. It returns
// the name and the offset of the closing delimiter.
func readParamName(text string, offset int) (string, int, bool) {
	start := offset + 1
	for i := start; i < len(text); i += 1 {
		c := text[i]
		if c == paramCloseChar {
			return text[start:i], i, i > start
		}
		if i == start && !isParamNameStart(c) {
			return "", 0, false
		}
		if i != start && !isParamNameChar(c) {
			return "", 0, false
		}
	}
	return "", 0, false
}

func isParamNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isParamNameChar(c byte) bool {
	return isParamNameStart(c) || c == '-' || (c >= '0' && c <= '9')
}

func paramNames(nodes []Node, names []string) []string {
	if names == nil {
		names = make([]string, 0)
	}
	for _, node := range nodes {
		switch node.Kind {
		case ParamNode:
			names = append(names, node.Name)
		case OptionalNode:
			names = paramNames(node.Children, names)
		}
	}
	return names
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	cloned := make([]Node, len(nodes))
	for i, node := range nodes {
		cloned[i] = node
		cloned[i].Children = cloneNodes(node.Children)
		if node.DependsOn != nil {
			cloned[i].DependsOn = make([]string, len(node.DependsOn))
			copy(cloned[i].DependsOn, node.DependsOn)
		}
	}
	return cloned
}

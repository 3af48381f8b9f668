package signpost

import (
	"fmt"
	"strings"

	"github.com/grafana/regexp"
)

// defaultParamValueSource is used for parameters without a condition.
const defaultParamValueSource = `[\w\-]+`

// matcher is the compiled, anchored regular expression for a route along with
// the mapping from parameter names to their capture groups.
type matcher struct {
	regExp         *regexp.Regexp
	paramOrder     []string
	captureIndexes []int
}

type matcherCompiler struct {
	conditions     Conditions
	source         strings.Builder
	paramOrder     []string
	captureIndexes []int
	groupCount     int
}

// compileMatcher walks the pattern tree once and produces a matcher. Literal
// text is quoted, parameters become capture groups, and optional groups
// become non-capturing zero-or-one groups.
func compileMatcher(nodes []Node, conditions Conditions) (*matcher, error) {
	c := &matcherCompiler{
		conditions:     conditions,
		paramOrder:     make([]string, 0),
		captureIndexes: make([]int, 0),
	}

	c.source.WriteString("^")
	if err := c.writeNodes(nodes); err != nil {
		return nil, err
	}
	c.source.WriteString("$")

	regExp, err := regexp.Compile(c.source.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCondition, err.Error())
	}

	return &matcher{
		regExp:         regExp,
		paramOrder:     c.paramOrder,
		captureIndexes: c.captureIndexes,
	}, nil
}

// newMatcher rebuilds a matcher from an already compiled source, as carried
// by a RouteDescriptor.
func newMatcher(source string, paramOrder []string, captureIndexes []int) (*matcher, error) {
	if len(paramOrder) != len(captureIndexes) {
		return nil, fmt.Errorf("%w: %d parameters but %d capture indexes",
			ErrInvalidDescriptor, len(paramOrder), len(captureIndexes))
	}

	regExp, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescriptor, err.Error())
	}

	for _, index := range captureIndexes {
		if index < 1 || index > regExp.NumSubexp() {
			return nil, fmt.Errorf("%w: capture index %d out of range", ErrInvalidDescriptor, index)
		}
	}

	return &matcher{
		regExp:         regExp,
		paramOrder:     append([]string(nil), paramOrder...),
		captureIndexes: append([]int(nil), captureIndexes...),
	}, nil
}

func (c *matcherCompiler) writeNodes(nodes []Node) error {
	for _, node := range nodes {
		switch node.Kind {
		case LiteralNode:
			c.source.WriteString(regexp.QuoteMeta(node.Text))

		case ParamNode:
			valueSource, valueGroupCount, err := c.paramValueSource(node.Name)
			if err != nil {
				return err
			}
			c.groupCount += 1
			c.paramOrder = append(c.paramOrder, node.Name)
			c.captureIndexes = append(c.captureIndexes, c.groupCount)
			c.groupCount += valueGroupCount
			c.source.WriteString("(" + valueSource + ")")

		case OptionalNode:
			c.source.WriteString("(?:")
			if err := c.writeNodes(node.Children); err != nil {
				return err
			}
			c.source.WriteString(")?")
		}
	}
	return nil
}

// paramValueSource returns the expression a parameter's capture group wraps,
// and how many capture groups that expression itself contains.
func (c *matcherCompiler) paramValueSource(name string) (string, int, error) {
	condition, ok := c.conditions[name]
	if !ok || condition.isEmpty() {
		return defaultParamValueSource, 0, nil
	}

	if condition.Values != nil {
		if len(condition.Values) == 0 {
			return "", 0, fmt.Errorf("%w for %q: no allowed values", ErrInvalidCondition, name)
		}
		quoted := make([]string, 0, len(condition.Values))
		for _, value := range condition.Values {
			quoted = append(quoted, regexp.QuoteMeta(value))
		}
		return "(?:" + strings.Join(quoted, "|") + ")", 0, nil
	}

	conditionRegExp, err := regexp.Compile(condition.Pattern)
	if err != nil {
		return "", 0, fmt.Errorf("%w for %q: %s", ErrInvalidCondition, name, err.Error())
	}

	return condition.Pattern, conditionRegExp.NumSubexp(), nil
}

// match runs the matcher against path. Parameters whose capture group did not
// participate in the match are left out of the result.
func (m *matcher) match(path string) (RouteParams, bool) {
	matchIndices := m.regExp.FindStringSubmatchIndex(path)
	if matchIndices == nil {
		return nil, false
	}

	params := make(RouteParams, len(m.paramOrder))
	for i, name := range m.paramOrder {
		captureIndex := m.captureIndexes[i]
		startIdx := matchIndices[captureIndex*2]
		endIdx := matchIndices[captureIndex*2+1]
		if startIdx < 0 || endIdx < 0 {
			continue
		}
		params[name] = path[startIdx:endIdx]
	}

	return params, true
}

func (m *matcher) source() string {
	return m.regExp.String()
}

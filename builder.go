package signpost

import "strings"

// buildFunc renders part of a path for the given parameters.
type buildFunc func(params map[string]string, out *strings.Builder)

// compileBuilder walks the pattern tree once and composes the closures that
// render a concrete path.
//
// A parameter renders its supplied value, then its default, then nothing. An
// optional group renders only when at least one of its direct parameters was
// supplied with a value other than that parameter's default.
func compileBuilder(nodes []Node, defaults Defaults) buildFunc {
	parts := make([]buildFunc, 0, len(nodes))

	for _, node := range nodes {
		switch node.Kind {
		case LiteralNode:
			text := node.Text
			parts = append(parts, func(_ map[string]string, out *strings.Builder) {
				out.WriteString(text)
			})

		case ParamNode:
			name := node.Name
			defaultValue, hasDefault := defaults[name]
			parts = append(parts, func(params map[string]string, out *strings.Builder) {
				if value, ok := params[name]; ok {
					out.WriteString(value)
				} else if hasDefault {
					out.WriteString(defaultValue)
				}
			})

		case OptionalNode:
			buildChildren := compileBuilder(node.Children, defaults)
			isIncluded := compileInclusion(node.DependsOn, defaults)
			parts = append(parts, func(params map[string]string, out *strings.Builder) {
				if isIncluded(params) {
					buildChildren(params, out)
				}
			})
		}
	}

	return func(params map[string]string, out *strings.Builder) {
		for _, part := range parts {
			part(params, out)
		}
	}
}

type dependency struct {
	name         string
	defaultValue string
	hasDefault   bool
}

func compileInclusion(dependsOn []string, defaults Defaults) func(params map[string]string) bool {
	dependencies := make([]dependency, 0, len(dependsOn))
	for _, name := range dependsOn {
		defaultValue, hasDefault := defaults[name]
		dependencies = append(dependencies, dependency{
			name:         name,
			defaultValue: defaultValue,
			hasDefault:   hasDefault,
		})
	}

	return func(params map[string]string) bool {
		for _, d := range dependencies {
			value, ok := params[d.name]
			if !ok {
				continue
			}
			if d.hasDefault && value == d.defaultValue {
				continue
			}
			return true
		}
		return false
	}
}

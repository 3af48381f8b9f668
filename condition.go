package signpost

// Condition constrains the values a parameter accepts. A condition holds
// either a set of allowed literal values or a regular expression source. When
// both are set the values win.
type Condition struct {
	Pattern string   `json:"pattern,omitempty" msgpack:"pattern,omitempty"`
	Values  []string `json:"values,omitempty" msgpack:"values,omitempty"`
}

// Conditions maps parameter names to their conditions.
type Conditions map[string]Condition

// Defaults maps parameter names to their default values.
type Defaults map[string]string

// Matching creates a condition from a regular expression source. The source
// is trusted and used as is.
func Matching(source string) Condition {
	return Condition{Pattern: source}
}

// OneOf creates a condition that accepts only the given literal values. A
// condition with no values accepts nothing, and compiling a route with one
// fails with ErrInvalidCondition.
func OneOf(values ...string) Condition {
	return Condition{Values: append([]string{}, values...)}
}

func (c Condition) isEmpty() bool {
	return c.Pattern == "" && c.Values == nil
}

func (c Conditions) clone() Conditions {
	cloned := make(Conditions, len(c)+1)
	for name, condition := range c {
		if condition.Values != nil {
			condition.Values = append([]string{}, condition.Values...)
		}
		cloned[name] = condition
	}
	return cloned
}

func (d Defaults) clone() Defaults {
	cloned := make(Defaults, len(d))
	for name, value := range d {
		cloned[name] = value
	}
	return cloned
}

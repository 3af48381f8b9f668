// Package config loads route definition files.
//
// A route definition file is YAML:
//
//	routes:
//	  - name: article
//	    method: GET
//	    pattern: /articles/<id>(/<slug>)
//	    conditions:
//	      id: '\d+'
//	      format: [html, json]
//	    defaults:
//	      slug: index
//
// A condition given as a string is a regular expression. A condition given
// as a sequence is a list of allowed values.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/RobertWHurst/signpost"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRoutesFile is returned when a route definition file cannot be
// decoded.
var ErrInvalidRoutesFile = errors.New("invalid routes file")

// RoutesFile is a decoded route definition file.
type RoutesFile struct {
	Routes []RouteDefinition `yaml:"routes"`
}

// RouteDefinition defines a single route.
type RouteDefinition struct {
	Name       string               `yaml:"name"`
	Method     string               `yaml:"method"`
	Pattern    string               `yaml:"pattern"`
	Conditions map[string]Condition `yaml:"conditions"`
	Defaults   map[string]string    `yaml:"defaults"`
	Controller string               `yaml:"controller"`
}

// Condition is a route condition that can be decoded from either a YAML
// string or a YAML sequence.
type Condition struct {
	signpost.Condition
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Condition = signpost.Matching(node.Value)
		return nil
	case yaml.SequenceNode:
		values := []string{}
		if err := node.Decode(&values); err != nil {
			return err
		}
		c.Condition = signpost.OneOf(values...)
		return nil
	}
	return fmt.Errorf("line %d: condition must be a string or a list of strings", node.Line)
}

// LoadRoutes reads and decodes the route definition file at path.
func LoadRoutes(path string) (*RoutesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoutes(data)
}

// ParseRoutes decodes a route definition file.
func ParseRoutes(data []byte) (*RoutesFile, error) {
	file := &RoutesFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoutesFile, err)
	}
	return file, nil
}

// Router compiles every route of the file into a new router, in file order.
// Routes with a controller have it bound as their payload.
func (f *RoutesFile) Router(opts ...signpost.RouteOption) (*signpost.Router, error) {
	router := signpost.NewRouter(opts...)

	for _, definition := range f.Routes {
		route, err := router.AddRoute(
			definition.Method,
			definition.Name,
			definition.Pattern,
			definition.conditions(),
			definition.Defaults,
		)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", definition.Name, err)
		}
		if definition.Controller != "" {
			route.Bind(definition.Controller)
		}
	}

	return router, nil
}

func (d *RouteDefinition) conditions() signpost.Conditions {
	if len(d.Conditions) == 0 {
		return nil
	}
	conditions := make(signpost.Conditions, len(d.Conditions))
	for name, condition := range d.Conditions {
		conditions[name] = condition.Condition
	}
	return conditions
}

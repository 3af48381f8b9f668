package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RouteOutput represents a single route in JSON output
type RouteOutput struct {
	Name          string   `json:"name"`
	Method        string   `json:"method"`
	Pattern       string   `json:"pattern"`
	Params        []string `json:"params"`
	MatcherSource string   `json:"matcher_source"`
	Controller    string   `json:"controller,omitempty"`
}

// RoutesOutput represents the JSON output for the routes command
type RoutesOutput struct {
	Routes      []RouteOutput `json:"routes"`
	TotalRoutes int           `json:"total_routes"`
}

// MatchOutput represents the JSON output for the match command
type MatchOutput struct {
	Route      string            `json:"route"`
	Method     string            `json:"method"`
	Params     map[string]string `json:"params"`
	Controller string            `json:"controller,omitempty"`
}

// BuildOutput represents the JSON output for the build command
type BuildOutput struct {
	Route string `json:"route"`
	Path  string `json:"path"`
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

func printSuccess(w io.Writer, data any) {
	printJSON(w, JSONResponse{Success: true, Data: data})
}

func printJSONError(w io.Writer, err error) {
	printJSON(w, JSONResponse{Success: false, Error: err.Error()})
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RobertWHurst/signpost"
	"github.com/RobertWHurst/signpost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routesYAML = `
routes:
  - name: article
    method: get
    pattern: /articles/<id>(/<slug>)
    controller: articles
    conditions:
      id: '\d+'
    defaults:
      slug: index
  - name: paint
    method: POST
    pattern: /paint/<color>
    conditions:
      color: [red, blue]
`

func TestParseRoutes(t *testing.T) {
	file, err := config.ParseRoutes([]byte(routesYAML))
	require.NoError(t, err)
	require.Len(t, file.Routes, 2)

	assert.Equal(t, "article", file.Routes[0].Name)
	assert.Equal(t, signpost.Matching(`\d+`), file.Routes[0].Conditions["id"].Condition)
	assert.Equal(t, map[string]string{"slug": "index"}, file.Routes[0].Defaults)
	assert.Equal(t, signpost.OneOf("red", "blue"), file.Routes[1].Conditions["color"].Condition)
}

func TestParseRoutesInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "routes: [\n"},
		{name: "map condition", yaml: "routes:\n  - name: a\n    conditions:\n      id: {a: b}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseRoutes([]byte(tt.yaml))
			assert.ErrorIs(t, err, config.ErrInvalidRoutesFile)
		})
	}
}

func TestRoutesFileRouter(t *testing.T) {
	file, err := config.ParseRoutes([]byte(routesYAML))
	require.NoError(t, err)

	router, err := file.Router()
	require.NoError(t, err)

	route, params, ok := router.Find("/articles/7", "GET")
	require.True(t, ok)
	assert.Equal(t, "article", route.Name())
	assert.Equal(t, "articles", route.Data())
	assert.Equal(t, signpost.RouteParams{"id": "7", "slug": "index"}, params)

	_, _, ok = router.Find("/articles/abc", "GET")
	assert.False(t, ok)

	path, err := router.Build("paint", map[string]string{"color": "red"})
	require.NoError(t, err)
	assert.Equal(t, "/paint/red", path)
}

func TestRoutesFileRouterInvalidRoute(t *testing.T) {
	file, err := config.ParseRoutes([]byte("routes:\n  - name: broken\n    method: GET\n    pattern: /a(/<b>\n"))
	require.NoError(t, err)

	_, err = file.Router()
	assert.ErrorIs(t, err, signpost.ErrUnbalancedGroup)
}

func TestLoadRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(routesYAML), 0o644))

	file, err := config.LoadRoutes(path)
	require.NoError(t, err)
	assert.Len(t, file.Routes, 2)

	_, err = config.LoadRoutes(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

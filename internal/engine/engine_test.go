package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/projinit/internal/clock"
	"github.com/danieljhkim/projinit/internal/config"
	"github.com/danieljhkim/projinit/internal/fsops"
	"github.com/danieljhkim/projinit/internal/hash"
	"github.com/danieljhkim/projinit/internal/logger"
)

const baseEnv = `# shared configuration
DOCKER_DATABASE_URL=postgresql://app:app@db:5432/app
DOCKER_DATABASE_URL_PRISMA="postgresql://app:app@db:5432/app?schema=public"
DOCKER_DIRECT_URL=postgresql://app:app@db:5432/app
SUPABASE_DATABASE_URL=postgresql://pooler:6543/postgres
SUPABASE_DIRECT_DATABASE_URL=postgresql://direct:5432/postgres
SUPABASE_URL=https://abc.supabase.co
SUPABASE_PUBLISHABLE_KEY=sb_publishable_123
AUTH_TOKEN=secret-token
this line is malformed
`

// writeTree creates files (slash-separated relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// readTree returns every regular file under root keyed by slash-separated
// relative path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

// newTemplates lays out a templates directory with every layer for the
// fastapi variant and the token auth mode, plus the base env source.
func newTemplates(t *testing.T) string {
	t.Helper()
	tpl := t.TempDir()
	writeTree(t, tpl, map[string]string{
		".env":                                         baseEnv,
		"templates/docker-compose.yml":                 "services: {}\n",
		"templates/frontend/src/app.ts":                "base app\n",
		"templates/api/node_modules/x/index.js":        "skip me\n",
		"templates/api/.env":                           "SHOULD_NOT_COPY=1\n",
		"templates-api-fastapi/api/app/main.py":        "app = FastAPI()\n",
		"templates-api-fastapi/api/app/main.pyc":       "bytecode",
		"templates-api-nestjs/api/src/main.ts":         "bootstrap()\n",
		"templates-token-fastapi/api/app/main.py":      "app = FastAPI(dependencies=[auth])\n",
		"templates-token-frontend/frontend/src/app.ts": "token app\n",
	})
	return tpl
}

type testEnv struct {
	engine    *Engine
	templates string
	clock     *clock.FakeClock
}

func newTestEngine(t *testing.T, templates string) *testEnv {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	eng := New(
		fsops.NewRealFS(),
		hash.NewSHA256Hasher(),
		clk,
		config.NewPaths(templates, ""),
		logger.Nop(),
	)
	return &testEnv{engine: eng, templates: templates, clock: clk}
}

package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/projinit/internal/clock"
	"github.com/danieljhkim/projinit/internal/config"
	"github.com/danieljhkim/projinit/internal/fsops"
	"github.com/danieljhkim/projinit/internal/hash"
	"github.com/danieljhkim/projinit/internal/logger"
	"github.com/danieljhkim/projinit/internal/overlay"
	"github.com/danieljhkim/projinit/internal/project"
)

func TestInit_DefaultVariant(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	env.clock.SetStep(40 * time.Millisecond)
	cwd := t.TempDir()

	result, err := env.engine.Init(context.Background(), &InitRequest{
		CWD:     cwd,
		Name:    "my-app",
		Variant: project.VariantFastAPI,
	})
	require.NoError(t, err)

	dest := filepath.Join(cwd, "my-app")
	assert.Equal(t, dest, result.Destination)
	assert.Equal(t, []string{overlay.LayerBase, overlay.LayerAPI}, result.Layers)
	assert.Equal(t, project.AuthNone, result.Auth)
	assert.Equal(t, EnvFileRelPath, result.EnvFile)
	assert.Equal(t, 40*time.Millisecond, result.Duration)
	assert.False(t, result.DryRun)

	tree := readTree(t, dest)
	assert.Equal(t, "app = FastAPI()\n", tree["api/app/main.py"])
	assert.Equal(t, "base app\n", tree["frontend/src/app.ts"])
	assert.NotContains(t, tree, "api/node_modules/x/index.js")
	assert.NotContains(t, tree, "api/app/main.pyc")

	envDoc := tree["api/.env"]
	assert.Contains(t, envDoc, "# Database\nDATABASE_URL=postgresql://app:app@db:5432/app\n")
	assert.Contains(t, envDoc, "ENVIRONMENT=development\n")
	assert.NotContains(t, envDoc, "AUTH_TOKEN")
	assert.NotContains(t, envDoc, "SHOULD_NOT_COPY")

	hasher := hash.NewSHA256Hasher()
	for _, rel := range result.Written {
		want := hasher.HashBytes([]byte(tree[rel]))
		assert.Equal(t, want, result.Checksums[rel], rel)
	}
	assert.Equal(t, hasher.HashBytes([]byte(envDoc)), result.Checksums[EnvFileRelPath])
	assert.Contains(t, result.MissingEnvKeys, "OPENAI_API_KEY")
	assert.NotContains(t, result.MissingEnvKeys, "DOCKER_DATABASE_URL")
}

func TestInit_TokenAuthOverlays(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	dest := t.TempDir()

	result, err := env.engine.Init(context.Background(), &InitRequest{
		Name:    dest,
		Variant: project.VariantFastAPI,
		Auth:    project.AuthToken,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		overlay.LayerBase, overlay.LayerAPI, overlay.LayerAuthAPI, overlay.LayerAuthFrontend,
	}, result.Layers)

	tree := readTree(t, dest)
	assert.Equal(t, "app = FastAPI(dependencies=[auth])\n", tree["api/app/main.py"])
	assert.Equal(t, "token app\n", tree["frontend/src/app.ts"])
	assert.Contains(t, tree["api/.env"], "# Authentication\nAUTH_TOKEN=secret-token\n")
}

func TestInit_DestinationNotEmpty(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	dest := t.TempDir()
	writeTree(t, dest, map[string]string{"notes.txt": "keep me\n"})

	_, err := env.engine.Init(context.Background(), &InitRequest{
		Name:    dest,
		Variant: project.VariantFastAPI,
	})
	require.ErrorIs(t, err, ErrDestinationNotEmpty)
	assert.Equal(t, map[string]string{"notes.txt": "keep me\n"}, readTree(t, dest), "refusal must not write anything")

	_, err = env.engine.Init(context.Background(), &InitRequest{
		Name:    dest,
		Variant: project.VariantFastAPI,
		Force:   true,
	})
	require.NoError(t, err)

	tree := readTree(t, dest)
	assert.Equal(t, "keep me\n", tree["notes.txt"])
	assert.Contains(t, tree, "api/app/main.py")
}

func TestInit_EnvFileOverwrittenUnconditionally(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	dest := t.TempDir()
	writeTree(t, dest, map[string]string{"api/.env": "OLD=1\n"})

	_, err := env.engine.Init(context.Background(), &InitRequest{
		Name:    dest,
		Variant: project.VariantFastAPI,
		Force:   true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "api", ".env"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "OLD=1")
	assert.Contains(t, string(data), "# Database\n")
}

func TestInit_MissingLayer(t *testing.T) {
	// supabase overlays are absent from the fixture
	env := newTestEngine(t, newTemplates(t))
	dest := t.TempDir()

	_, err := env.engine.Init(context.Background(), &InitRequest{
		Name:    dest,
		Variant: project.VariantFastAPI,
		Auth:    project.AuthSupabase,
	})
	require.Error(t, err)

	var missing *overlay.MissingLayerError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, overlay.LayerAuthAPI, missing.Layer)
	assert.Equal(t, filepath.Join(env.templates, "templates-supabase-fastapi"), missing.Path)
	assert.ErrorIs(t, err, overlay.ErrMissingLayer)

	tree := readTree(t, dest)
	assert.Equal(t, "app = FastAPI()\n", tree["api/app/main.py"], "earlier layers stay on disk")
	assert.NotContains(t, tree, "api/.env", "env file is not written after a failed composition")
}

func TestInit_MissingEnvSourceUsesFallbacks(t *testing.T) {
	tpl := newTemplates(t)
	require.NoError(t, os.Remove(filepath.Join(tpl, ".env")))
	env := newTestEngine(t, tpl)
	dest := t.TempDir()

	result, err := env.engine.Init(context.Background(), &InitRequest{
		Name:    dest,
		Variant: project.VariantNestJS,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "api", ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DATABASE_URL=\"\"\n")
	assert.Contains(t, string(data), "LOG_LEVEL=INFO\n")
	assert.Contains(t, result.MissingEnvKeys, "DOCKER_DATABASE_URL_PRISMA")
}

func TestInit_DryRun(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	cwd := t.TempDir()

	result, err := env.engine.Init(context.Background(), &InitRequest{
		CWD:     cwd,
		Name:    "preview",
		Variant: project.VariantFastAPI,
		Auth:    project.AuthToken,
		DryRun:  true,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Contains(t, result.Written, "api/app/main.py")
	assert.Len(t, result.Checksums, 1, "only the env document is checksummed")
	assert.Contains(t, result.Checksums, EnvFileRelPath)

	_, err = os.Stat(filepath.Join(cwd, "preview"))
	assert.True(t, os.IsNotExist(err), "dry run must not create the destination")
}

func TestInit_Idempotent(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	dest := t.TempDir()
	req := &InitRequest{Name: dest, Variant: project.VariantFastAPI, Auth: project.AuthToken}

	first, err := env.engine.Init(context.Background(), req)
	require.NoError(t, err)
	firstTree := readTree(t, dest)

	req.Force = true
	second, err := env.engine.Init(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, firstTree, readTree(t, dest))
	assert.Equal(t, first.Checksums, second.Checksums)
	assert.Equal(t, first.Written, second.Written)
}

func TestInit_Validation(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))

	tests := []struct {
		name string
		req  *InitRequest
		want error
	}{
		{
			name: "unknown variant",
			req:  &InitRequest{Name: t.TempDir(), Variant: "django"},
			want: project.ErrInvalidVariant,
		},
		{
			name: "unknown auth mode",
			req:  &InitRequest{Name: t.TempDir(), Variant: project.VariantFastAPI, Auth: "oauth"},
			want: project.ErrInvalidAuthMode,
		},
		{
			name: "relative name without cwd",
			req:  &InitRequest{Name: "app", Variant: project.VariantFastAPI},
			want: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.engine.Init(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInit_Canceled(t *testing.T) {
	env := newTestEngine(t, newTemplates(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.engine.Init(ctx, &InitRequest{Name: t.TempDir(), Variant: project.VariantFastAPI})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInit_LogsDroppedEnvLines(t *testing.T) {
	tpl := newTemplates(t)
	var logs bytes.Buffer
	eng := New(
		fsops.NewRealFS(),
		hash.NewFakeHasher(),
		clock.NewFakeClock(time.Time{}),
		config.NewPaths(tpl, ""),
		logger.New(&logs, "debug"),
	)

	result, err := eng.Init(context.Background(), &InitRequest{
		Name:    t.TempDir(),
		Variant: project.VariantFastAPI,
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "dropped malformed env line")
	assert.Contains(t, logs.String(), "this line is malformed")
	assert.Contains(t, logs.String(), "applying layer")
	assert.Equal(t, "fakehash", result.Checksums[EnvFileRelPath])
}

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list/internal/api"
	"todo-list/internal/config"
	"todo-list/internal/decompose"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/services"
)

type fakeDecomposer struct {
	reply string
	err   error
}

func (f *fakeDecomposer) Decompose(ctx context.Context, task string) (*decompose.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	steps, rest := decompose.Split(f.reply)
	return &decompose.Result{Steps: steps, Clarification: rest}, nil
}

// testEnv shares one in-memory store across several CLI invocations
type testEnv struct {
	repo    sqlite.Repository
	dec     *fakeDecomposer
	lastCfg *config.Config
	builds  int
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.ConfigFileEnvVar, "")

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return &testEnv{repo: repo, dec: &fakeDecomposer{}}
}

func (e *testEnv) build(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	e.builds++
	e.lastCfg = cfg
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	board, err := services.NewBoardManager(ctx, e.repo, e.dec, services.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return NewApp(api.NewBusinessAPIWithConfig(board, cfg), cfg, logger), func() {}, nil
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(config.NewLoader(), e.build)
	var buf bytes.Buffer
	root.SetOutput(&buf)
	root.SetArgs(args)
	err := root.Execute(context.Background())
	return buf.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	env := setupTestEnv(t)

	env.mustRun(t, "list", "--app-timeout", "5s", "--mode", "debug", "--addr", "0.0.0.0:9000", "-v")
	require.NotNil(t, env.lastCfg)
	assert.Equal(t, 5*time.Second, env.lastCfg.Application.Timeout)
	assert.Equal(t, "debug", env.lastCfg.Server.Mode)
	assert.Equal(t, "0.0.0.0:9000", env.lastCfg.Server.Addr)
	assert.True(t, env.lastCfg.Application.Verbose)
}

func TestRootCommand_EnvironmentBeatsDefaults(t *testing.T) {
	env := setupTestEnv(t)
	t.Setenv("TODO_SERVER_ADDR", "127.0.0.1:7000")

	env.mustRun(t, "list")
	assert.Equal(t, "127.0.0.1:7000", env.lastCfg.Server.Addr)

	env.mustRun(t, "list", "--addr", "127.0.0.1:7001")
	assert.Equal(t, "127.0.0.1:7001", env.lastCfg.Server.Addr)
}

func TestRootCommand_InvalidConfiguration(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "list", "--mode", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Zero(t, env.builds)
}

func TestRootCommand_HelpSkipsSetup(t *testing.T) {
	env := setupTestEnv(t)

	out := env.mustRun(t, "--help")
	assert.Contains(t, out, "todo keeps a list")
	assert.Zero(t, env.builds)

	out = env.mustRun(t, "help", "move")
	assert.Contains(t, out, "project-item")
	assert.Zero(t, env.builds)
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "frobnicate")
	assert.Error(t, err)
}

func TestSkipsSetup(t *testing.T) {
	root := &cobra.Command{Use: "todo"}
	completion := &cobra.Command{Use: "completion"}
	bash := &cobra.Command{Use: "bash"}
	list := &cobra.Command{Use: "list"}
	completion.AddCommand(bash)
	root.AddCommand(completion, list)

	assert.True(t, skipsSetup(bash))
	assert.True(t, skipsSetup(completion))
	assert.False(t, skipsSetup(list))
	assert.False(t, skipsSetup(root))
}

func TestRootCommand_HelpListsEnvironment(t *testing.T) {
	root := NewRootCommand(config.NewLoader(), nil)
	for _, name := range config.EnvNames() {
		assert.Contains(t, root.cmd.Long, name)
	}
}

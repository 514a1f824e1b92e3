package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list/internal/api"
	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/services"
)

// board reads the persisted board through a fresh service
func (e *testEnv) board(t *testing.T) *domain.Board {
	t.Helper()
	board, err := services.NewBoardManager(context.Background(), e.repo, e.dec)
	require.NoError(t, err)
	return board.Board()
}

func TestAddAndListCommands(t *testing.T) {
	env := setupTestEnv(t)

	out := env.mustRun(t, "add", "Buy", "milk")
	assert.Contains(t, out, "Added task: Buy milk")

	b := env.board(t)
	require.Len(t, b.Items, 1)

	out = env.mustRun(t, "list")
	assert.Contains(t, out, "1. [ ] Buy milk  ("+shortID(b.Items[0].ID)+")")
	assert.Contains(t, out, "1 tasks, 0 done, 0 projects")

	out = env.mustRun(t, "list", "--json")
	var view api.BoardView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Buy milk", view.Board.Items[0].Text)
}

func TestAddCommand_Errors(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "add")
	assert.Error(t, err)

	_, err = env.run(t, "add", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add task")
}

func TestDoneCommand_MovesToDefault(t *testing.T) {
	env := setupTestEnv(t)
	env.mustRun(t, "add", "Walk dog")
	id := env.board(t).Items[0].ID

	out := env.mustRun(t, "done", id[:5])
	assert.Contains(t, out, "Completed: Walk dog")
	assert.Contains(t, out, `Moved to project "Default"`)

	b := env.board(t)
	assert.Empty(t, b.Items)
	require.Len(t, b.Projects, 1)
	assert.Equal(t, id, b.Projects[0].Items[0].ID)

	out = env.mustRun(t, "done", id)
	assert.Contains(t, out, "Reopened: Walk dog")
	assert.NotContains(t, out, "Moved")
}

func TestDoneCommand_UnknownID(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "done", "zzz")
	require.Error(t, err)
	assert.Equal(t, "failed to find task: task not found: zzz", err.Error())
}

func TestRemoveCommand(t *testing.T) {
	env := setupTestEnv(t)
	env.mustRun(t, "add", "a")
	env.mustRun(t, "add", "b")
	b := env.board(t)
	first, second := b.Items[0].ID, b.Items[1].ID

	env.mustRun(t, "done", second)
	out := env.mustRun(t, "rm", second)
	assert.Contains(t, out, "Removed task: b")

	out = env.mustRun(t, "rm", first)
	assert.Contains(t, out, "Removed task: a")
	assert.Zero(t, env.board(t).TaskCount())
}

func TestProjectCommands(t *testing.T) {
	env := setupTestEnv(t)

	out := env.mustRun(t, "project", "create", "Garden")
	assert.Contains(t, out, "Created project: Garden")

	out = env.mustRun(t, "project", "rename", "Garden", "Allotment", "plot")
	assert.Contains(t, out, "Renamed project to: Allotment plot")

	out = env.mustRun(t, "project", "toggle", "Allotment plot")
	assert.Contains(t, out, "is now expanded")

	for _, text := range []string{"x", "y", "z"} {
		env.mustRun(t, "add", text)
		id := env.board(t).Items[0].ID
		env.mustRun(t, "move", id, "--to", "project", "--project", "Allotment plot")
	}

	b := env.board(t)
	require.Len(t, b.Projects[0].Items, 3)

	out = env.mustRun(t, "list")
	assert.Contains(t, out, "▾ Allotment plot (3)")
	assert.Contains(t, out, "      3. [ ] z")

	out = env.mustRun(t, "project", "rm-task", "Allotment plot", b.Projects[0].Items[0].ID)
	assert.Contains(t, out, "Removed task")

	out = env.mustRun(t, "project", "delete", b.Projects[0].ID[:6])
	assert.Contains(t, out, "Deleted project: Allotment plot (2 tasks discarded)")

	b = env.board(t)
	assert.Empty(t, b.Projects)
	assert.Zero(t, b.TaskCount())
}

func TestMoveCommand(t *testing.T) {
	env := setupTestEnv(t)
	for _, text := range []string{"a", "b", "c"} {
		env.mustRun(t, "add", text)
	}
	env.mustRun(t, "project", "create", "P")
	env.mustRun(t, "project", "create", "Q")

	texts := func() []string {
		var out []string
		for _, t := range env.board(t).Items {
			out = append(out, t.Text)
		}
		return out
	}

	t.Run("raw positional payload", func(t *testing.T) {
		out := env.mustRun(t, "move", `{"source":"main","index":0}`, "--to", "main", "--index", "2")
		assert.Contains(t, out, "Applied reorder-main")
		assert.Equal(t, []string{"b", "c", "a"}, texts())
	})

	t.Run("dry run leaves board alone", func(t *testing.T) {
		id := env.board(t).Items[0].ID
		out := env.mustRun(t, "move", id, "--to", "project", "--project", "P", "--dry-run")
		assert.Contains(t, out, "Would apply main-to-project")
		assert.Equal(t, []string{"b", "c", "a"}, texts())
	})

	t.Run("project header reorder", func(t *testing.T) {
		out := env.mustRun(t, "move", "Q", "--to", "projects", "--index", "0")
		assert.Contains(t, out, "Applied reorder-projects")
		b := env.board(t)
		assert.Equal(t, "Q", b.Projects[0].Name)
		assert.Equal(t, "P", b.Projects[1].Name)
	})

	t.Run("unsupported pair does nothing", func(t *testing.T) {
		out := env.mustRun(t, "move", "P", "--to", "main")
		assert.Contains(t, out, "Nothing moved")
	})

	t.Run("garbage payload is ignored", func(t *testing.T) {
		out := env.mustRun(t, "move", "{not json")
		assert.Contains(t, out, "payload not recognised")
	})

	t.Run("unknown target kind", func(t *testing.T) {
		_, err := env.run(t, "move", "P", "--to", "sideways")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown drop target")
	})
}

func TestMoveCommand_PrefixMatchingTaskAndProject(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.repo.Put(ctx, services.ItemsKey,
		[]byte(`[{"id":"ab000000-0000-4000-8000-000000000001","text":"a","done":false}]`)))
	require.NoError(t, env.repo.Put(ctx, services.ProjectsKey,
		[]byte(`[{"id":"ab000000-0000-4000-8000-000000000002","name":"P","items":[],"expanded":true}]`)))

	_, err := env.run(t, "move", "ab", "--to", "projects", "--index", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches both a task and a project")

	out := env.mustRun(t, "move", "ab000000-0000-4000-8000-000000000001", "--to", "main", "--index", "0")
	assert.NotContains(t, out, "matches both")
}

func TestBreakdownCommand(t *testing.T) {
	t.Run("numbered steps become tasks", func(t *testing.T) {
		env := setupTestEnv(t)
		env.dec.reply = "Sure!\n1. Buy milk\n2. Walk dog\n"

		out := env.mustRun(t, "breakdown", "Plan", "weekend")
		assert.Contains(t, out, "Added task: Buy milk")
		assert.Contains(t, out, "Added task: Walk dog")
		assert.Contains(t, out, "Sure!")

		b := env.board(t)
		require.Len(t, b.Items, 2)
		assert.False(t, b.Items[0].Done)
	})

	t.Run("failure adds placeholder", func(t *testing.T) {
		env := setupTestEnv(t)
		env.dec.err = errors.NewUpstreamError("task breakdown endpoint", fmt.Errorf("refused"))

		out := env.mustRun(t, "breakdown", "Plan weekend")
		assert.Contains(t, out, services.FailureTaskText)
		require.Len(t, env.board(t).Items, 1)
	})
}

func TestExportCommand(t *testing.T) {
	env := setupTestEnv(t)
	env.mustRun(t, "add", "Buy milk")
	env.mustRun(t, "project", "create", "Garden")

	path := filepath.Join(t.TempDir(), "list.pdf")
	out := env.mustRun(t, "export", "-o", path, "--input", "Weekend")
	assert.Contains(t, out, `Exported "A to-do list" (1 tasks)`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))

	out = env.mustRun(t, "export", "--project", "Garden", "-o", "-")
	assert.True(t, strings.HasPrefix(out, "%PDF-"))

	_, err = env.run(t, "export", "--project", "Kitchen", "-o", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrqqqr/todoList/internal/util"
	"github.com/wrqqqr/todoList/store"
)

func addTask(t *testing.T, dir, text string) string {
	t.Helper()
	resp := mustRunJSON[taskResponse](t, dir, "add", text)
	require.Equal(t, statusCreated, resp.Status)
	require.NotNil(t, resp.Task)
	return resp.Task.ID
}

func listIDs(t *testing.T, dir string, args ...string) (active, completed []string) {
	t.Helper()
	resp := mustRunJSON[listResponse](t, dir, append([]string{"list"}, args...)...)
	for _, task := range resp.Active {
		active = append(active, task.ID)
	}
	for _, task := range resp.Completed {
		completed = append(completed, task.ID)
	}
	return active, completed
}

func TestAddCmd(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "add", "buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Added")
	assert.Contains(t, out, "buy milk")

	_, err = os.Stat(filepath.Join(dir, store.DefaultActiveKey+".json"))
	assert.NoError(t, err, "active tasks are written to the data dir")
	_, err = os.Stat(filepath.Join(dir, store.DefaultActiveKey+".json.checksum"))
	assert.NoError(t, err)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Active (1)")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "Completed (0)")
	assert.Contains(t, out, "(none)")
}

func TestAddCmd_KeepsTextVerbatim(t *testing.T) {
	dir := isolate(t)

	resp := mustRunJSON[taskResponse](t, dir, "add", "  padded  ")
	require.NotNil(t, resp.Task)
	assert.Equal(t, "  padded  ", resp.Task.Text)
	assert.False(t, resp.Task.Completed)
}

func TestAddCmd_BlankIsNoChange(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "add", "   ")
	require.NoError(t, err)
	assert.Equal(t, "No change: task text is empty\n", out)

	resp := mustRunJSON[taskResponse](t, dir, "add", "\t")
	assert.Equal(t, statusNoChange, resp.Status)
	assert.Nil(t, resp.Task)

	active, completed := listIDs(t, dir)
	assert.Empty(t, active)
	assert.Empty(t, completed)
}

func TestQuietSuppressesOutput(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "add", "quiet one", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestToggleCmd_ByPrefix(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "first")
	b := addTask(t, dir, "second")

	resp := mustRunJSON[taskResponse](t, dir, "toggle", util.ShortID(a, 0))
	require.NotNil(t, resp.Task)
	assert.True(t, resp.Task.Completed)

	active, completed := listIDs(t, dir)
	assert.Equal(t, []string{b}, active)
	assert.Equal(t, []string{a}, completed)

	out, err := run(t, dir, "done", a)
	require.NoError(t, err)
	assert.Contains(t, out, "is now active")

	active, completed = listIDs(t, dir)
	assert.Equal(t, []string{b, a}, active, "a reopened task goes to the end")
	assert.Empty(t, completed)
}

func TestToggleCmd_UnknownID(t *testing.T) {
	dir := isolate(t)
	addTask(t, dir, "only")

	_, err := run(t, dir, "toggle", "not-an-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestEditCmd(t *testing.T) {
	dir := isolate(t)
	id := addTask(t, dir, "buy milk")

	resp := mustRunJSON[taskResponse](t, dir, "edit", id, "buy", "oat", "milk")
	require.NotNil(t, resp.Task)
	assert.Equal(t, "buy oat milk", resp.Task.Text)

	resp = mustRunJSON[taskResponse](t, dir, "edit", id, "")
	require.NotNil(t, resp.Task)
	assert.Equal(t, "", resp.Task.Text, "empty text is allowed")

	out, err := run(t, dir, "edit", util.ShortID(id, 0), "")
	require.NoError(t, err)
	assert.Equal(t, "✓ Edited [ ] "+util.ShortID(id, 0)+"  (empty)\n", out)
}

func TestDeleteCmd(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "keep")
	b := addTask(t, dir, "drop")

	resp := mustRunJSON[taskResponse](t, dir, "rm", b)
	assert.Equal(t, statusDeleted, resp.Status)
	assert.Equal(t, b, resp.ID)

	active, _ := listIDs(t, dir)
	assert.Equal(t, []string{a}, active)
}

func TestMoveCmd(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "A")
	b := addTask(t, dir, "B")
	c := addTask(t, dir, "C")

	resp := mustRunJSON[moveResponse](t, dir, "move", c, "--to", "active", "--index", "0")
	assert.Equal(t, statusUpdated, resp.Status)
	assert.Equal(t, "applied", resp.Outcome)

	active, _ := listIDs(t, dir)
	assert.Equal(t, []string{c, a, b}, active)

	resp = mustRunJSON[moveResponse](t, dir, "move", a, "--to", "done")
	assert.Equal(t, "applied", resp.Outcome)
	require.NotNil(t, resp.Task)
	assert.True(t, resp.Task.Completed, "moving into completed marks the task done")

	active, completed := listIDs(t, dir)
	assert.Equal(t, []string{c, b}, active)
	assert.Equal(t, []string{a}, completed)

	// No --index on the same list keeps the task last.
	resp = mustRunJSON[moveResponse](t, dir, "move", c, "--to", "active")
	assert.Equal(t, "applied", resp.Outcome)
	active, _ = listIDs(t, dir)
	assert.Equal(t, []string{b, c}, active)
}

func TestMoveCmd_OutOfRangeIsNoChange(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "A")
	b := addTask(t, dir, "B")

	out, err := run(t, dir, "move", a, "--to", "active", "--index", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "No change")

	resp := mustRunJSON[moveResponse](t, dir, "move", a, "--to", "completed", "--index", "3")
	assert.Equal(t, statusNoChange, resp.Status)
	assert.Equal(t, "rejected", resp.Outcome)

	active, completed := listIDs(t, dir)
	assert.Equal(t, []string{a, b}, active)
	assert.Empty(t, completed)
}

func TestMoveCmd_NegativeIndexIsNoChange(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "A")
	b := addTask(t, dir, "B")
	c := addTask(t, dir, "C")

	out, err := run(t, dir, "move", a, "--to", "active", "--index", "-5")
	require.NoError(t, err)
	assert.Contains(t, out, "No change")

	resp := mustRunJSON[moveResponse](t, dir, "move", b, "--to", "completed", "--index", "-1")
	assert.Equal(t, statusNoChange, resp.Status)
	assert.Equal(t, "rejected", resp.Outcome)

	active, completed := listIDs(t, dir)
	assert.Equal(t, []string{a, b, c}, active)
	assert.Empty(t, completed)
}

func TestMoveCmd_BadCollection(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "A")

	_, err := run(t, dir, "move", a, "--to", "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")

	_, err = run(t, dir, "move", a)
	require.Error(t, err, "--to is required")
}

func TestSQLiteBackend(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODOLIST_DATA_BACKEND", "sqlite")

	a := addTask(t, dir, "stored in sqlite")
	_, err := os.Stat(filepath.Join(dir, store.SQLiteFileName))
	require.NoError(t, err)

	mustRunJSON[taskResponse](t, dir, "toggle", a)
	_, completed := listIDs(t, dir)
	assert.Equal(t, []string{a}, completed)
}

func TestYAMLFormat(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODOLIST_DATA_FORMAT", "yaml")

	addTask(t, dir, "stored as yaml")
	_, err := os.Stat(filepath.Join(dir, store.DefaultActiveKey+".yaml"))
	require.NoError(t, err)

	active, _ := listIDs(t, dir)
	assert.Len(t, active, 1)
}

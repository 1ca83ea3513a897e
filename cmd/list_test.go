package cmd

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrqqqr/todoList/store"
	"github.com/wrqqqr/todoList/types"
)

func TestListCmd_Empty(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "Active (0)\n  (none)\n\nCompleted (0)\n  (none)\n", out)
}

func TestListCmd_Search(t *testing.T) {
	dir := isolate(t)
	milk := addTask(t, dir, "Buy MILK")
	addTask(t, dir, "walk dog")
	shake := addTask(t, dir, "milkshake")
	mustRunJSON[taskResponse](t, dir, "toggle", shake)

	active, completed := listIDs(t, dir, "--search", "mil")
	assert.Equal(t, []string{milk}, active)
	assert.Equal(t, []string{shake}, completed)

	out, err := run(t, dir, "ls", "-s", "MIL")
	require.NoError(t, err)
	assert.Contains(t, out, `Filter: "MIL"`)
	assert.Contains(t, out, "Buy MILK")
	assert.NotContains(t, out, "walk dog")
}

func TestListCmd_OneCollection(t *testing.T) {
	dir := isolate(t)
	a := addTask(t, dir, "open")
	b := addTask(t, dir, "closed")
	mustRunJSON[taskResponse](t, dir, "toggle", b)

	active, completed := listIDs(t, dir, "--active")
	assert.Equal(t, []string{a}, active)
	assert.Empty(t, completed)

	out, err := run(t, dir, "list", "--completed")
	require.NoError(t, err)
	assert.NotContains(t, out, "Active")
	assert.Contains(t, out, "Completed (1)")

	_, err = run(t, dir, "list", "--active", "--completed")
	assert.Error(t, err)
}

func TestListCmd_WatchNeedsPersistentBackend(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODOLIST_DATA_BACKEND", "memory")

	_, err := run(t, dir, "list", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch")
}

// syncBuffer lets the watch loop and the test read and write concurrently.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchList_RedrawsAfterExternalSave(t *testing.T) {
	dir := isolate(t)

	saved := GlobalAppConfig
	t.Cleanup(func() { GlobalAppConfig = saved })
	GlobalAppConfig = types.AppConfig{
		Data: types.DataConfig{
			Dir:          dir,
			Backend:      string(store.BackendFile),
			Format:       string(store.FormatJSON),
			ActiveKey:    store.DefaultActiveKey,
			CompletedKey: store.DefaultCompletedKey,
		},
		Log: types.LogConfig{File: "todolist.log", Level: "info"},
	}
	resetFlags(rootCmd)

	reader, err := openSession(false)
	require.NoError(t, err)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- watchList(ctx, out, reader) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Active (0)")
	}, 2*time.Second, 10*time.Millisecond)

	writer, err := openSession(true)
	require.NoError(t, err)
	writer.eng.SetDraftText("from another process")
	writer.eng.AddTask()
	writer.Close()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "from another process")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}
}

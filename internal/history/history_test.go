package history

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

var (
	pokemonX = types.TitleInfo{ID: 0x0004000000055D00}
	pokemonY = types.TitleInfo{ID: 0x0004000000055E00}
	start    = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
)

func newLog(t *testing.T) (*Log, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(start)
	l, err := OpenMemory(clk)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, clk
}

func TestLog_RecordAndList(t *testing.T) {
	l, clk := newLog(t)

	e, err := l.Record(OpBackup, pokemonX, types.KindSave, "first", types.Succeeded("Save backup successful."))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, start, e.At)
	assert.Equal(t, "0004000000055D00", e.TitleID)
	assert.Equal(t, "save", e.Kind)
	assert.Equal(t, "success", e.Outcome)
	assert.Equal(t, "none", e.Reason)

	clk.Advance(500 * time.Millisecond)
	_, err = l.Record(OpRestore, pokemonY, types.KindExtdata, "ext",
		types.Failed(types.ReasonMount, -0x377FBB88, "Failed to mount extdata."))
	require.NoError(t, err)
	clk.Advance(time.Second)
	_, err = l.Record(OpDelete, pokemonX, types.KindSave, "first", types.Succeeded("Backup deletion successful."))
	require.NoError(t, err)

	all, err := l.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, OpDelete, all[0].Op)
	assert.Equal(t, OpRestore, all[1].Op)
	assert.Equal(t, OpBackup, all[2].Op)
	assert.Equal(t, "failure", all[1].Outcome)
	assert.Equal(t, "mount", all[1].Reason)
	assert.Equal(t, int32(-0x377FBB88), all[1].Code)
	assert.Equal(t, start.Add(500*time.Millisecond), all[1].At)

	two, err := l.List(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	forX, err := l.ForTitle(pokemonX.ID, 0)
	require.NoError(t, err)
	require.Len(t, forX, 2)
	assert.Equal(t, OpDelete, forX[0].Op)
}

func TestLog_Closed(t *testing.T) {
	l, _ := newLog(t)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	_, err := l.Record(OpBackup, pokemonX, types.KindSave, "a", types.Succeeded(""))
	assert.Error(t, err)
	_, err = l.List(0)
	assert.Error(t, err)
}

func TestOpen_File(t *testing.T) {
	dir := t.TempDir()
	clk := testclock.NewClock(start)

	l, err := Open(dir, clk)
	require.NoError(t, err)
	_, err = l.Record(OpBackup, pokemonX, types.KindSave, "a", types.Succeeded(""))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open(dir, clk)
	require.NoError(t, err)
	defer l.Close()
	all, err := l.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLog_ExportImport(t *testing.T) {
	src, clk := newLog(t)
	for i, folder := range []string{"a", "b", "c"} {
		clk.Advance(time.Duration(i+1) * time.Minute)
		_, err := src.Record(OpBackup, pokemonX, types.KindSave, folder, types.Succeeded("ok"))
		require.NoError(t, err)
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0o755))
	n, err := src.Export(fs, "/out/history.jsonl")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := afero.ReadFile(fs, "/out/history.jsonl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"folder":"a"`)
	assert.Contains(t, lines[2], `"folder":"c"`)

	// Append a malformed line; import skips it.
	require.NoError(t, afero.WriteFile(fs, "/out/history.jsonl", append(data, []byte("{not json\n")...), 0o644))

	dst, _ := newLog(t)
	n, err = dst.Import(fs, "/out/history.jsonl")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want, err := src.List(0)
	require.NoError(t, err)
	got, err := dst.List(0)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Importing twice adds nothing.
	_, err = dst.Import(fs, "/out/history.jsonl")
	require.NoError(t, err)
	got, err = dst.List(0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLog_ImportMissingFile(t *testing.T) {
	l, _ := newLog(t)
	_, err := l.Import(afero.NewMemMapFs(), "/nope.jsonl")
	assert.Error(t, err)
}

func TestIsBusy(t *testing.T) {
	assert.True(t, isBusy(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.False(t, isBusy(errors.New("UNIQUE constraint failed")))
}

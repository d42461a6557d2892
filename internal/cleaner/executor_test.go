package cleaner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTrash removes paths permanently and records them
type fakeTrash struct {
	trashed []string
	err     error
}

func (f *fakeTrash) Trash(path string) error {
	if f.err != nil {
		return f.err
	}
	f.trashed = append(f.trashed, path)
	return os.RemoveAll(path)
}

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

func TestDeleteMissingPath(t *testing.T) {
	trash := &fakeTrash{}
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	results := NewExecutor(Options{Trasher: trash}).Delete(context.Background(), []string{missing})

	assert.Equal(t, []model.DeleteResult{{
		Path:  missing,
		Error: ErrNotFound.Error(),
	}}, results)
	assert.Empty(t, trash.trashed)
}

func TestDeleteRefusesOtherDirectories(t *testing.T) {
	tmp := t.TempDir()
	src := mkdir(t, tmp, "app", "src")
	file := filepath.Join(tmp, "app", "node_modules.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	fileNamed := filepath.Join(tmp, "other", "node_modules")
	mkdir(t, tmp, "other")
	require.NoError(t, os.WriteFile(fileNamed, []byte("x"), 0o644))

	trash := &fakeTrash{}
	results := NewExecutor(Options{Trasher: trash}).Delete(context.Background(), []string{
		src, file, fileNamed, "relative/node_modules",
	})

	require.Len(t, results, 4)
	assert.Equal(t, ErrNotNodeModules.Error(), results[0].Error)
	assert.Equal(t, ErrNotDirectory.Error(), results[1].Error)
	assert.Equal(t, ErrNotDirectory.Error(), results[2].Error)
	assert.Equal(t, ErrNotAbsolute.Error(), results[3].Error)
	for _, r := range results {
		assert.False(t, r.Success)
	}
	assert.Empty(t, trash.trashed)
	assert.DirExists(t, src)
}

func TestDeleteRefusesSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	tmp := t.TempDir()
	target := mkdir(t, tmp, "real")
	mkdir(t, tmp, "app")
	link := filepath.Join(tmp, "app", "node_modules")
	require.NoError(t, os.Symlink(target, link))

	trash := &fakeTrash{}
	results := NewExecutor(Options{Trasher: trash}).Delete(context.Background(), []string{link})

	assert.Equal(t, ErrNotDirectory.Error(), results[0].Error)
	assert.DirExists(t, target)
}

func TestDeleteRequiresExactName(t *testing.T) {
	saved := model.CaseInsensitiveNames
	model.CaseInsensitiveNames = true
	t.Cleanup(func() { model.CaseInsensitiveNames = saved })

	tmp := t.TempDir()
	mixed := mkdir(t, tmp, "app", "Node_Modules")
	upper := mkdir(t, tmp, "web", "NODE_MODULES")

	trash := &fakeTrash{}
	results := NewExecutor(Options{Trasher: trash}).Delete(context.Background(), []string{mixed, upper})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, ErrNotNodeModules.Error(), r.Error)
	}
	assert.ErrorIs(t, NewExecutor(Options{Trasher: trash}).Check(mixed), ErrNotNodeModules)
	assert.Empty(t, trash.trashed)
	assert.DirExists(t, mixed)
	assert.DirExists(t, upper)
}

func TestDeleteIndependentResults(t *testing.T) {
	tmp := t.TempDir()
	first := mkdir(t, tmp, "a", "node_modules", "dep")
	first = filepath.Dir(first)
	second := filepath.Dir(mkdir(t, tmp, "b", "node_modules", "dep"))
	missing := filepath.Join(tmp, "c", "node_modules")

	trash := &fakeTrash{}
	results := NewExecutor(Options{Trasher: trash}).Delete(context.Background(), []string{
		first, missing, second, first,
	})

	require.Len(t, results, 4)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)
	assert.Equal(t, ErrDuplicate.Error(), results[3].Error)
	assert.Equal(t, []string{first, second}, trash.trashed)
	assert.NoDirExists(t, first)
	assert.NoDirExists(t, second)
}

func TestDeleteTrashFailure(t *testing.T) {
	dir := mkdir(t, t.TempDir(), "app", "node_modules")
	trash := &fakeTrash{err: errors.New("no trash available")}

	results := NewExecutor(Options{Trasher: trash}).Delete(context.Background(), []string{dir})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, ErrTrashFailed.Error())
	assert.Contains(t, results[0].Error, "no trash available")
	assert.DirExists(t, dir)
}

func TestDeleteStrict(t *testing.T) {
	tmp := t.TempDir()
	installed := mkdir(t, tmp, "a", "node_modules")
	mkdir(t, installed, ".bin")
	scoped := mkdir(t, tmp, "b", "node_modules")
	mkdir(t, scoped, "@types", "node")
	pkgDir := mkdir(t, tmp, "c", "node_modules")
	require.NoError(t, os.WriteFile(filepath.Join(mkdir(t, pkgDir, "lodash"), "package.json"), []byte("{}"), 0o644))
	bare := mkdir(t, tmp, "d", "node_modules")
	mkdir(t, bare, "photos")

	trash := &fakeTrash{}
	results := NewExecutor(Options{Strict: true, Trasher: trash}).Delete(context.Background(), []string{
		installed, scoped, pkgDir, bare,
	})

	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.True(t, results[2].Success)
	assert.Equal(t, ErrSuspicious.Error(), results[3].Error)
	assert.DirExists(t, bare)
}

func TestDeleteCancelled(t *testing.T) {
	dir := mkdir(t, t.TempDir(), "app", "node_modules")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trash := &fakeTrash{}
	results := NewExecutor(Options{Trasher: trash}).Delete(ctx, []string{dir})

	assert.Equal(t, context.Canceled.Error(), results[0].Error)
	assert.Empty(t, trash.trashed)
}

func TestCheckErrorsAreSentinels(t *testing.T) {
	e := NewExecutor(Options{Trasher: &fakeTrash{}})
	err := e.Check(filepath.Join(t.TempDir(), "node_modules"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTrashFunc(t *testing.T) {
	var got string
	var trasher Trasher = TrashFunc(func(path string) error {
		got = path
		return nil
	})
	require.NoError(t, trasher.Trash("/x/node_modules"))
	assert.Equal(t, "/x/node_modules", got)
}

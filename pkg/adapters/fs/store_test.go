package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardenbot/warden/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(Config{Path: filepath.Join(t.TempDir(), "notes.json")})
}

func strptr(s string) *string { return &s }

func TestAddMessage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddMessage(ctx, "100", "first warning", "mod-a"))
	require.NoError(t, s.AddMessage(ctx, "100", "second warning", "mod-b"))

	n, err := s.View(ctx, "100")
	require.NoError(t, err)

	assert.Equal(t, "first warning\n\nsecond warning", n.Message)
	assert.Equal(t, "mod-a", n.Creator, "creator is fixed at creation")
	assert.NotEmpty(t, n.CreatedAt)

	created, err := time.Parse(core.CreatedAtLayout, n.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), created, time.Minute)
}

func TestView_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.View(context.Background(), "nobody")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestChangeInfo_ReplacesMessage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddMessage(ctx, "100", "one", "mod-a"))
	require.NoError(t, s.AddMessage(ctx, "100", "two", "mod-a"))

	err := s.ChangeInfo(ctx, "100", core.Patch{Message: strptr("X")}, "mod-b")
	require.NoError(t, err)

	n, err := s.View(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "X", n.Message, "message is replaced, not appended")
	assert.Equal(t, "mod-a", n.Creator)
}

func TestChangeInfo_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.ChangeInfo(ctx, "200", core.Patch{
		Username: strptr("bob"),
		Age:      strptr("19"),
	}, "mod-a"))
	require.NoError(t, s.ChangeInfo(ctx, "200", core.Patch{Age: strptr("20")}, "mod-b"))

	n, err := s.View(ctx, "200")
	require.NoError(t, err)
	assert.Equal(t, "bob", n.Username, "unspecified fields stay untouched")
	assert.Equal(t, "20", n.Age)
	assert.Equal(t, "mod-a", n.Creator)
}

func TestChangeInfo_EmptyPatchIsNoop(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ChangeInfo(context.Background(), "300", core.Patch{}, "mod-a"))

	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err), "empty patch must not touch storage")
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddMessage(ctx, "100", "note", "mod-a"))

	existed, err := s.Remove(ctx, "100")
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = s.View(ctx, "100")
	assert.ErrorIs(t, err, core.ErrNotFound)

	existed, err = s.Remove(ctx, "100")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestListIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.ChangeInfo(ctx, "1", core.Patch{Username: strptr("bob")}, ""))
	require.NoError(t, s.AddMessage(ctx, "2", "no username here", ""))
	require.NoError(t, s.ChangeInfo(ctx, "3", core.Patch{Username: strptr("Ann")}, ""))

	ids, usernames, err := s.ListIndex(ctx)
	require.NoError(t, err)

	require.Len(t, ids, 3)
	require.Len(t, usernames, 3)

	// Case-insensitive by username, unnamed records last with a dash.
	assert.Equal(t, []string{"3", "1", "2"}, ids)
	assert.Equal(t, []string{"Ann", "bob", "-"}, usernames)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")

	s1 := NewStore(Config{Path: path})
	require.NoError(t, s1.AddMessage(ctx, "100", "body", "mod-a"))
	require.NoError(t, s1.ChangeInfo(ctx, "100", core.Patch{
		Username:             strptr("bob"),
		Age:                  strptr("19"),
		ProfilePictureRating: strptr("ok"),
	}, "mod-b"))

	want, err := s1.View(ctx, "100")
	require.NoError(t, err)

	// A second store over the same document sees identical data.
	s2 := NewStore(Config{Path: path})
	got, err := s2.View(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCorruptDocumentSelfHeals(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewStore(Config{Path: path})

	_, err := s.View(ctx, "100")
	assert.ErrorIs(t, err, core.ErrNotFound, "corrupt document reads as empty")

	require.NoError(t, s.AddMessage(ctx, "100", "fresh start", "mod-a"))

	n, err := s.View(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "fresh start", n.Message)
}

func TestReadFaultPropagates(t *testing.T) {
	ctx := context.Background()

	// Pointing the store at a directory makes every read fail with
	// something other than "does not exist". That must surface as a
	// fault, not read as an empty store: masking it would let the next
	// write discard every note still on disk.
	s := NewStore(Config{Path: t.TempDir()})

	_, err := s.View(ctx, "100")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)

	assert.Error(t, s.AddMessage(ctx, "100", "must not land", "mod-a"))
	assert.Error(t, s.ChangeInfo(ctx, "100", core.Patch{Username: strptr("bob")}, "mod-a"))

	_, err = s.Remove(ctx, "100")
	assert.Error(t, err)

	_, _, err = s.ListIndex(ctx)
	assert.Error(t, err)
}

func TestReplaceFile(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "notes.json")
		content := []byte(`{"100":{}}`)

		require.NoError(t, replaceFile(filename, content, 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "notes.json")
		require.NoError(t, os.WriteFile(filename, []byte("old"), 0644))

		require.NoError(t, replaceFile(filename, []byte("new"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("Leaves No Staging File Behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, replaceFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), tempFilePrefix),
				"stray staging file: %s", e.Name())
		}
	})

	t.Run("Fails If Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing", "notes.json")
		assert.Error(t, replaceFile(filename, []byte("{}"), 0644))
	})
}

func TestLockTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")

	s := NewStore(Config{Path: path, LockTimeout: 100 * time.Millisecond})

	// Hold the lock from the outside, as another process would.
	fl := flock.New(s.lockPath)
	locked, err := fl.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer fl.Unlock()

	err = s.AddMessage(context.Background(), "100", "blocked", "mod-a")
	assert.ErrorIs(t, err, core.ErrLockTimeout)
}

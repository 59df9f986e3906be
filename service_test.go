package warden

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardenbot/warden/pkg/core"
)

// stubStore records calls without touching disk.
type stubStore struct {
	added []string
}

func (s *stubStore) AddMessage(ctx context.Context, userid, message, creator string) error {
	s.added = append(s.added, userid)
	return nil
}

func (s *stubStore) View(ctx context.Context, userid string) (core.Note, error) {
	return core.Note{}, core.ErrNotFound
}

func (s *stubStore) ChangeInfo(ctx context.Context, userid string, p core.Patch, creator string) error {
	return nil
}

func (s *stubStore) Remove(ctx context.Context, userid string) (bool, error) {
	return false, nil
}

func (s *stubStore) ListIndex(ctx context.Context) ([]string, []string, error) {
	return nil, nil, nil
}

func TestNew_WithStoreInjection(t *testing.T) {
	stub := &stubStore{}
	svc := New(DefaultConfig(), WithStore(stub))

	require.NoError(t, svc.Notes().AddMessage(context.Background(), "100", "msg", "mod"))
	assert.Equal(t, []string{"100"}, stub.added)
}

func TestSnapshot_LoadsFreshPerCall(t *testing.T) {
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "data.json")
	catalogPath := filepath.Join(dir, "itemdetails.json")

	require.NoError(t, os.WriteFile(usersPath, []byte(`{"10": {"username": "ann", "id": 10}}`), 0644))
	require.NoError(t, os.WriteFile(catalogPath, []byte(`{"items": {}}`), 0644))

	cfg := DefaultConfig()
	cfg.UsersPath = usersPath
	cfg.CatalogPath = catalogPath
	svc := New(cfg)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	_, ok := snap.FindByUsername("ann")
	assert.True(t, ok)

	// The dataset was replaced on disk; a new snapshot must see it.
	require.NoError(t, os.WriteFile(usersPath, []byte(`{"20": {"username": "bob", "id": 20}}`), 0644))

	snap, err = svc.Snapshot()
	require.NoError(t, err)
	_, ok = snap.FindByUsername("ann")
	assert.False(t, ok)
	_, ok = snap.FindByUsername("bob")
	assert.True(t, ok)
}

func TestWatch_SeesExternalWrites(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.NotesPath = filepath.Join(dir, "notes.json")
	svc := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(cfg.NotesPath, []byte("{}"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the external write")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

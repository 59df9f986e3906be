package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/wardenbot/warden/pkg/core"
)

const (
	// DefaultLockTimeout bounds how long an operation waits for the
	// exclusive store lock before giving up with core.ErrLockTimeout.
	DefaultLockTimeout = 5 * time.Second

	// lockRetryDelay is the polling interval while waiting for the lock.
	lockRetryDelay = 50 * time.Millisecond

	// tempFilePrefix marks the staging files used during atomic replaces.
	tempFilePrefix = "warden-tmp-"

	filePerm = 0644
)

// Config holds the configuration for the JSON-backed note store.
type Config struct {
	// Path is the notes document. The lock marker lives next to it with a
	// .lock suffix, and a transient temp file is used during atomic writes.
	Path        string
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// Store implements core.NoteStore over a single JSON document guarded by a
// host-wide file lock. Every operation, reads included, runs a full
// lock -> load -> (modify -> save) -> unlock cycle so no caller can observe
// a torn write, even from another process sharing the file.
type Store struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
	logger      *slog.Logger
}

// NewStore creates a store over the given notes document.
func NewStore(cfg Config) *Store {
	timeout := cfg.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	base := strings.TrimSuffix(cfg.Path, filepath.Ext(cfg.Path))
	return &Store{
		path:        cfg.Path,
		lockPath:    base + ".lock",
		lockTimeout: timeout,
		logger:      cfg.Logger,
	}
}

// withLock runs fn while holding the exclusive file lock. The lock is
// scoped to this single call and released on every exit path.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	fl := flock.New(s.lockPath)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", core.ErrLockTimeout, s.lockPath)
		}
		return fmt.Errorf("failed to acquire store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", core.ErrLockTimeout, s.lockPath)
	}
	defer fl.Unlock()

	return fn()
}

// load reads the notes document. A document that does not exist yet or
// does not parse is treated as an empty store so a corrupt file self-heals
// on the next write. Any other read fault (permissions, I/O) is returned;
// masking it would let the next save overwrite notes that are still on disk.
func (s *Store) load() (map[string]core.Note, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes document: %w", err)
	}

	db := map[string]core.Note{}
	if err := json.Unmarshal(data, &db); err != nil {
		if s.logger != nil {
			s.logger.Warn("notes document is malformed, treating as empty", "path", s.path, "error", err)
		}
		return map[string]core.Note{}, nil
	}
	return db, nil
}

// save persists the whole document with an atomic replace.
// Write failures are fatal and surface to the caller unmasked.
func (s *Store) save(db map[string]core.Note) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notes document: %w", err)
	}
	if err := replaceFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write notes document: %w", err)
	}
	return nil
}

// replaceFile swaps the document at path for data in a single step. The
// bytes are staged in a sibling temp file, and only a fully written,
// fsynced temp file gets renamed over the target, so a crash at any point
// leaves either the old document or the new one, never a mix.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("stage temp file: %w", err)
	}
	tmpName := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("stage document bytes: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync staged document: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod staged document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close staged document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("swap in staged document: %w", err)
	}
	renamed = true
	return nil
}

// findOrCreate returns the record for userid, creating one (with creator
// attribution and a fresh timestamp) if none exists yet.
func findOrCreate(db map[string]core.Note, userid, creator string) core.Note {
	if n, ok := db[userid]; ok {
		return n
	}
	return core.NewNote(userid, creator)
}

// AddMessage appends a message to the note for userid, creating the record
// on first touch. Creator and CreatedAt are only set at creation.
func (s *Store) AddMessage(ctx context.Context, userid, message, creator string) error {
	return s.withLock(ctx, func() error {
		db, err := s.load()
		if err != nil {
			return err
		}
		n := findOrCreate(db, userid, creator)
		n.AppendMessage(message)
		db[userid] = n

		if s.logger != nil {
			s.logger.Debug("appended note message", "userid", userid, "creator", n.Creator)
		}
		return s.save(db)
	})
}

// View returns the stored record unmodified, or core.ErrNotFound.
func (s *Store) View(ctx context.Context, userid string) (core.Note, error) {
	var n core.Note
	err := s.withLock(ctx, func() error {
		db, err := s.load()
		if err != nil {
			return err
		}
		rec, ok := db[userid]
		if !ok {
			return fmt.Errorf("note for %s: %w", userid, core.ErrNotFound)
		}
		n = rec
		return nil
	})
	return n, err
}

// ChangeInfo merges the patch over the record for userid, creating one
// first if absent. An empty patch returns without touching storage.
// A Message supplied here replaces the body; contrast with AddMessage.
func (s *Store) ChangeInfo(ctx context.Context, userid string, p core.Patch, creator string) error {
	if p.IsZero() {
		return nil
	}

	return s.withLock(ctx, func() error {
		db, err := s.load()
		if err != nil {
			return err
		}
		n := findOrCreate(db, userid, creator)
		n.ApplyPatch(p)
		db[userid] = n

		if s.logger != nil {
			s.logger.Debug("changed note info", "userid", userid)
		}
		return s.save(db)
	})
}

// Remove deletes the record for userid and reports whether one existed.
// The document is only rewritten when a record was actually removed.
func (s *Store) Remove(ctx context.Context, userid string) (bool, error) {
	var existed bool
	err := s.withLock(ctx, func() error {
		db, err := s.load()
		if err != nil {
			return err
		}
		if _, ok := db[userid]; !ok {
			return nil
		}
		existed = true
		delete(db, userid)
		return s.save(db)
	})
	return existed, err
}

// ListIndex returns parallel id and username slices for every record,
// ordered case-insensitively by username with unnamed records last.
// An empty username renders as "-" in the username column.
func (s *Store) ListIndex(ctx context.Context) ([]string, []string, error) {
	var ids, usernames []string
	err := s.withLock(ctx, func() error {
		db, err := s.load()
		if err != nil {
			return err
		}

		toks := make([]string, 0, len(db))
		for id, n := range db {
			toks = append(toks, id+":"+n.Username)
		}

		sort.SliceStable(toks, func(i, j int) bool {
			ri, ki := indexSortKey(toks[i])
			rj, kj := indexSortKey(toks[j])
			if ri != rj {
				return ri < rj
			}
			return ki < kj
		})

		ids = make([]string, 0, len(toks))
		usernames = make([]string, 0, len(toks))
		for _, tok := range toks {
			id, name, _ := strings.Cut(tok, ":")
			ids = append(ids, id)
			if name == "" {
				name = "-"
			}
			usernames = append(usernames, name)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ids, usernames, nil
}

// indexSortKey ranks an "id:username" token: named records first, ordered
// by trimmed lowercase username; unnamed records last in arbitrary order.
func indexSortKey(tok string) (int, string) {
	_, name, _ := strings.Cut(tok, ":")
	if name == "" {
		return 1, ""
	}
	return 0, strings.ToLower(strings.TrimSpace(name))
}

var _ core.NoteStore = (*Store)(nil)

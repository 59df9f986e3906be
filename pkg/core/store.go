package core

import "context"

// NoteStore defines the contract for the durable notes mapping.
// Adhering to this interface keeps the command layer independent of the
// backing storage (JSON file today; anything serializable tomorrow).
//
// Every method takes a context because every operation, reads included,
// waits on the exclusive store lock.
type NoteStore interface {
	// AddMessage appends a message to the note for userid, creating the
	// record first if necessary. Creator is only recorded on creation.
	AddMessage(ctx context.Context, userid, message, creator string) error

	// View returns the stored record, or ErrNotFound.
	View(ctx context.Context, userid string) (Note, error)

	// ChangeInfo merges the patch over the record, creating it first if
	// necessary. An empty patch is a no-op and never touches storage.
	ChangeInfo(ctx context.Context, userid string, p Patch, creator string) error

	// Remove deletes the record and reports whether one existed.
	Remove(ctx context.Context, userid string) (bool, error)

	// ListIndex returns parallel slices of user ids and display usernames,
	// sorted case-insensitively by username with unnamed records last.
	ListIndex(ctx context.Context) (ids []string, usernames []string, err error)
}

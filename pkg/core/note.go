package core

import "time"

// CreatedAtLayout is the timestamp format stored in the notes document.
// UTC, second precision.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Note is a moderation record keyed by an external user id.
// Once created, every field key is present in the persisted document
// (possibly as an empty string) so rendering never branches on missing keys.
type Note struct {
	UserID               string `json:"userid"`
	Username             string `json:"username"`
	Age                  string `json:"age"`
	ProfilePictureRating string `json:"profilePictureRating"`
	Message              string `json:"message"`
	Creator              string `json:"creator"`
	CreatedAt            string `json:"createdAt"`
}

// NewNote creates a fresh record for the given user id.
// Creator and CreatedAt are fixed here and never overwritten afterwards.
func NewNote(userid, creator string) Note {
	return Note{
		UserID:    userid,
		Creator:   creator,
		CreatedAt: time.Now().UTC().Format(CreatedAtLayout),
	}
}

// AppendMessage adds a message to the note body, separated from any
// existing text by a blank line.
func (n *Note) AppendMessage(msg string) {
	if n.Message != "" {
		n.Message = n.Message + "\n\n" + msg
		return
	}
	n.Message = msg
}

// Patch describes a partial update to a note. Nil fields are left
// untouched; a non-nil Message REPLACES the whole body, unlike
// AppendMessage which concatenates.
type Patch struct {
	Username             *string
	Age                  *string
	ProfilePictureRating *string
	Message              *string
}

// IsZero reports whether the patch carries no fields at all.
func (p Patch) IsZero() bool {
	return p.Username == nil && p.Age == nil && p.ProfilePictureRating == nil && p.Message == nil
}

// ApplyPatch merges the supplied fields over the note.
func (n *Note) ApplyPatch(p Patch) {
	if p.Username != nil {
		n.Username = *p.Username
	}
	if p.Age != nil {
		n.Age = *p.Age
	}
	if p.ProfilePictureRating != nil {
		n.ProfilePictureRating = *p.ProfilePictureRating
	}
	if p.Message != nil {
		n.Message = *p.Message
	}
}

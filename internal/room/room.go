// Package room holds the typed records for live discussion rooms and
// the read-only repository interface the mind-map pipeline consumes.
package room

import "errors"

var (
	ErrNotFound        = errors.New("room not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Room is a discussion room snapshot. WorkspaceSlug caches the AI-side
// workspace identifier once one has been created for the room.
type Room struct {
	Code          string  `json:"code"`
	Title         string  `json:"title"`
	WorkspaceSlug string  `json:"workspace_slug,omitempty"`
	Topics        []Topic `json:"topics"`
}

// Topic is a named discussion thread inside a room.
type Topic struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Comments []Comment `json:"comments"`
}

// Comment is a single participant message.
type Comment struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
}

// VoteTally is the positive/negative vote count for one comment.
type VoteTally struct {
	Good int `json:"good"`
	Bad  int `json:"bad"`
}

// Repository is the read-mostly view of room state the pipeline works
// against. Implementations must return snapshots that are safe to read
// without further locking.
type Repository interface {
	// Room returns a snapshot of the room with the given code.
	Room(code string) (Room, bool)

	// Votes returns the tally for a comment id. Unknown ids tally zero.
	Votes(commentID string) VoteTally

	// SetWorkspaceSlug caches the AI workspace identifier for a room.
	// Unknown codes are ignored.
	SetWorkspaceSlug(code, slug string)
}

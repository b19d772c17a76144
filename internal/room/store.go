package room

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Vote directions accepted by Store.Vote.
const (
	VoteGood = "good"
	VoteBad  = "bad"
)

// voteSet tracks which voters voted each way on one comment. A voter
// holds at most one vote per comment; re-voting moves it.
type voteSet struct {
	good map[string]struct{}
	bad  map[string]struct{}
}

// Store is a mutex-guarded in-memory Repository with the write
// operations the rooms API needs. All reads return deep copies, so a
// snapshot stays stable while concurrent requests mutate the room.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	votes map[string]*voteSet
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
		votes: make(map[string]*voteSet),
	}
}

// CreateRoom registers a new room under a fresh 6-character code.
func (s *Store) CreateRoom(title string) Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newRoomCode()
	for s.rooms[code] != nil {
		code = newRoomCode()
	}
	rm := &Room{Code: code, Title: title}
	s.rooms[code] = rm
	return cloneRoom(rm)
}

// AddTopic appends a topic to a room.
func (s *Store) AddTopic(code, name string) (Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.rooms[code]
	if rm == nil {
		return Topic{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	t := Topic{ID: uuid.NewString(), Name: name}
	rm.Topics = append(rm.Topics, t)
	return t, nil
}

// AddComment appends a comment to a topic and opens its vote tally.
func (s *Store) AddComment(code, topicID, nickname, content string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.rooms[code]
	if rm == nil {
		return Comment{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	for i := range rm.Topics {
		if rm.Topics[i].ID != topicID {
			continue
		}
		c := Comment{ID: uuid.NewString(), Nickname: nickname, Content: content}
		rm.Topics[i].Comments = append(rm.Topics[i].Comments, c)
		s.votes[c.ID] = &voteSet{
			good: make(map[string]struct{}),
			bad:  make(map[string]struct{}),
		}
		return c, nil
	}
	return Comment{}, fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
}

// Vote records one voter's vote on a comment. Voting the opposite
// direction moves the existing vote rather than double-counting.
func (s *Store) Vote(commentID, voterID, direction string) (VoteTally, error) {
	if direction != VoteGood && direction != VoteBad {
		return VoteTally{}, fmt.Errorf("invalid vote direction %q", direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vs := s.votes[commentID]
	if vs == nil {
		return VoteTally{}, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
	}
	if direction == VoteGood {
		delete(vs.bad, voterID)
		vs.good[voterID] = struct{}{}
	} else {
		delete(vs.good, voterID)
		vs.bad[voterID] = struct{}{}
	}
	return VoteTally{Good: len(vs.good), Bad: len(vs.bad)}, nil
}

// Room implements Repository.
func (s *Store) Room(code string) (Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm := s.rooms[code]
	if rm == nil {
		return Room{}, false
	}
	return cloneRoom(rm), true
}

// Votes implements Repository.
func (s *Store) Votes(commentID string) VoteTally {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs := s.votes[commentID]
	if vs == nil {
		return VoteTally{}
	}
	return VoteTally{Good: len(vs.good), Bad: len(vs.bad)}
}

// SetWorkspaceSlug implements Repository.
func (s *Store) SetWorkspaceSlug(code, slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rm := s.rooms[code]; rm != nil {
		rm.WorkspaceSlug = slug
	}
}

func cloneRoom(rm *Room) Room {
	out := *rm
	out.Topics = make([]Topic, len(rm.Topics))
	for i, t := range rm.Topics {
		out.Topics[i] = t
		out.Topics[i].Comments = append([]Comment(nil), t.Comments...)
	}
	return out
}

func newRoomCode() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:])[:6])
}

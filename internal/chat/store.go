package chat

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Store is an append-only in-memory collection of messages. Insertion
// order is arrival order; queries walk it most-recent-first. All text
// comparison (rooms, topics) is case-insensitive while the stored text
// keeps the case it was typed with.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append stores a new message and returns its ID. The topics slice is
// copied; the caller keeps no aliases into the store.
func (s *Store) Append(user, room string, topics []string, body string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:        uuid.New(),
		User:      user,
		Room:      room,
		Topics:    slices.Clone(topics),
		Body:      body,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg.ID
}

// Len returns the number of stored messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Reset drops every stored message.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// RoomExists reports whether any stored message was added to the room.
func (s *Store) RoomExists(room string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.messages {
		if strings.EqualFold(s.messages[i].Room, room) {
			return true
		}
	}
	return false
}

// TopicKnown reports whether any stored message, in any room, carries
// the topic.
func (s *Store) TopicKnown(topic string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.messages {
		if containsFold(s.messages[i].Topics, topic) {
			return true
		}
	}
	return false
}

// Query returns up to count most-recent messages from the room whose
// topics contain every requested topic. An empty topic filter matches
// everything. Zero matches is an empty result, not an error.
func (s *Store) Query(room string, count int, topics []string) []View {
	if count <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []View
	for i := len(s.messages) - 1; i >= 0 && len(out) < count; i-- {
		m := &s.messages[i]
		if !strings.EqualFold(m.Room, room) {
			continue
		}
		if !matchesTopics(m.Topics, topics) {
			continue
		}
		out = append(out, viewOf(m))
	}
	return out
}

// matchesTopics reports whether every wanted topic is present, ignoring case.
func matchesTopics(have, want []string) bool {
	for _, w := range want {
		if !containsFold(have, w) {
			return false
		}
	}
	return true
}

func containsFold(list []string, s string) bool {
	return lo.ContainsBy(list, func(t string) bool {
		return strings.EqualFold(t, s)
	})
}

// viewOf renders a stored message for output: the '@' and '#' markers
// are dropped, text is folded to lower case, and duplicate topics keep
// only their first occurrence.
func viewOf(m *Message) View {
	topics := lo.Uniq(lo.Map(m.Topics, func(t string, _ int) string {
		return strings.ToLower(strings.TrimPrefix(t, "#"))
	}))
	return View{
		User:   strings.ToLower(strings.TrimPrefix(m.User, "@")),
		Room:   strings.ToLower(m.Room),
		Topics: topics,
		Body:   m.Body,
	}
}

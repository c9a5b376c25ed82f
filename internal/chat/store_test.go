package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndQueryLIFO(t *testing.T) {
	req := require.New(t)
	store := NewStore()

	for i := 1; i <= 5; i++ {
		store.Append("@alice", "general", nil, fmt.Sprintf("message %d", i))
	}
	req.Equal(5, store.Len())

	views := store.Query("general", 3, nil)
	req.Len(views, 3)
	assert.Equal(t, "message 5", views[0].Body)
	assert.Equal(t, "message 4", views[1].Body)
	assert.Equal(t, "message 3", views[2].Body)
}

func TestQueryFewerMatchesThanCount(t *testing.T) {
	store := NewStore()
	store.Append("@a", "room", nil, "only one")

	views := store.Query("room", 10, nil)
	require.Len(t, views, 1)
	assert.Equal(t, "only one", views[0].Body)
}

func TestQueryRoomIsolation(t *testing.T) {
	store := NewStore()
	store.Append("@a", "dogs", nil, "woof")
	store.Append("@a", "cats", nil, "meow")

	views := store.Query("dogs", 10, nil)
	require.Len(t, views, 1)
	assert.Equal(t, "woof", views[0].Body)
}

func TestQueryTopicFilterConjunctive(t *testing.T) {
	store := NewStore()
	store.Append("@a", "r", []string{"#x"}, "just x")
	store.Append("@a", "r", []string{"#x", "#y"}, "x and y")
	store.Append("@a", "r", []string{"#y"}, "just y")

	views := store.Query("r", 10, []string{"#x", "#y"})
	require.Len(t, views, 1)
	assert.Equal(t, "x and y", views[0].Body)
}

func TestQueryCaseInsensitive(t *testing.T) {
	store := NewStore()
	store.Append("@Bob", "General", []string{"#Go"}, "hi")

	views := store.Query("GENERAL", 1, []string{"#gO"})
	require.Len(t, views, 1)
	assert.Equal(t, "bob", views[0].User)
	assert.Equal(t, "general", views[0].Room)
	assert.Equal(t, []string{"go"}, views[0].Topics)
}

func TestViewDeduplicatesTopics(t *testing.T) {
	store := NewStore()
	store.Append("@a", "r", []string{"#x", "#Y", "#X", "#y"}, "dup")

	views := store.Query("r", 1, nil)
	require.Len(t, views, 1)
	assert.Equal(t, []string{"x", "y"}, views[0].Topics, "first occurrence order, folded, marker dropped")
}

func TestRoomExists(t *testing.T) {
	store := NewStore()
	assert.False(t, store.RoomExists("general"))

	store.Append("@a", "General", nil, "hi")
	assert.True(t, store.RoomExists("general"))
	assert.True(t, store.RoomExists("GENERAL"))
	assert.False(t, store.RoomExists("other"))
}

func TestTopicKnown(t *testing.T) {
	store := NewStore()
	store.Append("@a", "one", []string{"#Go"}, "hi")
	store.Append("@b", "two", nil, "no topics")

	assert.True(t, store.TopicKnown("#go"), "known across rooms")
	assert.False(t, store.TopicKnown("#rust"))
}

func TestQueryDoesNotMutate(t *testing.T) {
	store := NewStore()
	store.Append("@a", "r", []string{"#x"}, "hi")

	first := store.Query("r", 5, nil)
	second := store.Query("r", 5, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Len())
}

func TestAppendCopiesTopics(t *testing.T) {
	store := NewStore()
	topics := []string{"#x"}
	store.Append("@a", "r", topics, "hi")

	topics[0] = "#mutated"
	views := store.Query("r", 1, nil)
	require.Len(t, views, 1)
	assert.Equal(t, []string{"x"}, views[0].Topics)
}

func TestReset(t *testing.T) {
	store := NewStore()
	store.Append("@a", "r", nil, "hi")
	store.Reset()

	assert.Equal(t, 0, store.Len())
	assert.False(t, store.RoomExists("r"))
}

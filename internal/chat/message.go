package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is the domain model for a stored chat message. It is immutable
// once appended: the store owns its own copies of every field.
type Message struct {
	ID        uuid.UUID
	User      string
	Room      string
	Topics    []string
	Body      string
	CreatedAt time.Time
}

// View is a single query result. User, room and topics are folded to
// lower case and topics are deduplicated keeping first-occurrence order;
// the body is verbatim.
type View struct {
	User   string
	Room   string
	Topics []string
	Body   string
}

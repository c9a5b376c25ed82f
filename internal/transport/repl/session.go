package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"chatline/internal/chat"
	"chatline/internal/proto"
)

// Session drives the line protocol over a single sequential text
// stream: commands are read from in, responses go to out, one-line
// diagnostics for failed commands go to errw.
type Session struct {
	store  *chat.Store
	in     *bufio.Reader
	out    io.Writer
	errw   io.Writer
	prompt string
	log    *zerolog.Logger
}

// NewSession builds a session over the given streams. A non-empty
// prompt is written to out before every read.
func NewSession(store *chat.Store, in io.Reader, out, errw io.Writer, prompt string, logger *zerolog.Logger) *Session {
	return &Session{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		errw:   errw,
		prompt: prompt,
		log:    logger,
	}
}

// Run reads commands until end of input or context cancellation. A
// clean EOF returns nil; a read failure is a system error and aborts
// the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			s.log.Info().Msg("session cancelled")
			return nil
		}

		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		if err := s.dispatch(line); err != nil {
			return err
		}
	}
}

// dispatch classifies a line by its first word. Blank lines and stray
// terminators are skipped.
func (s *Session) dispatch(line string) error {
	words := proto.SplitWords(line)
	if len(words) == 0 {
		return nil
	}

	switch words[0] {
	case proto.WordAdd:
		return s.handleAdd(words[1:])
	case proto.WordQuery:
		s.handleQuery(words[1:])
		return nil
	case proto.WordTerminator:
		return nil
	default:
		s.userError(proto.Errorf(proto.CodeBadCommand, "unknown command %q", words[0]))
		return nil
	}
}

// handleAdd parses `+ @USER ROOM #TOPIC*`, collects the message body
// and appends it to the store.
func (s *Session) handleAdd(words []string) error {
	user, room, topics, perr := parseAddHeader(words)
	if perr != nil {
		// The body is not consumed after a bad header; the next line
		// starts a fresh command.
		s.userError(perr)
		return nil
	}

	lines, err := s.collectBody()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		s.userError(proto.Errorf(proto.CodeNoMessage, "message body is missing"))
		return nil
	}

	id := s.store.Append(string(user), string(room), topics, strings.Join(lines, "\n"))
	s.log.Debug().
		Stringer("id", id).
		Str("room", string(room)).
		Int("lines", len(lines)).
		Msg("message stored")

	s.endResponse()
	return nil
}

// handleQuery parses `? ROOM COUNT? #TOPIC*` and writes the matching
// messages most-recent-first.
func (s *Session) handleQuery(words []string) {
	room, count, topics, perr := parseQueryHeader(words)
	if perr != nil {
		s.userError(perr)
		return
	}

	if !s.store.RoomExists(string(room)) {
		s.userError(proto.Errorf(proto.CodeBadRoom, "room %q has no messages", room))
		return
	}

	views := s.store.Query(string(room), count, topics)
	if len(views) == 0 {
		// Unknown-topic diagnosis only applies when nothing matched.
		for _, topic := range topics {
			if !s.store.TopicKnown(topic) {
				s.userError(proto.Errorf(proto.CodeBadTopic, "topic %q is not used by any message", topic))
				return
			}
		}
	}

	for _, v := range views {
		s.writeView(v)
	}
	s.endResponse()
}

// trimTerminator drops a single trailing terminator word. A stray '.'
// at the end of a command line is tolerated, not read as a topic.
func trimTerminator(words []string) []string {
	if n := len(words); n > 0 && words[n-1] == proto.WordTerminator {
		return words[:n-1]
	}
	return words
}

func parseAddHeader(words []string) (proto.User, proto.Room, []string, *proto.Error) {
	words = trimTerminator(words)
	if len(words) == 0 {
		return "", "", nil, proto.Errorf(proto.CodeBadUser, "user is missing")
	}
	user, perr := proto.ParseUser(words[0])
	if perr != nil {
		return "", "", nil, perr
	}

	if len(words) == 1 {
		return "", "", nil, proto.Errorf(proto.CodeBadRoom, "room is missing")
	}
	room, perr := proto.ParseRoom(words[1])
	if perr != nil {
		return "", "", nil, perr
	}

	var topics []string
	for _, w := range words[2:] {
		topic, perr := proto.ParseTopic(w)
		if perr != nil {
			return "", "", nil, perr
		}
		topics = append(topics, string(topic))
	}
	return user, room, topics, nil
}

func parseQueryHeader(words []string) (proto.Room, int, []string, *proto.Error) {
	words = trimTerminator(words)
	if len(words) == 0 {
		return "", 0, nil, proto.Errorf(proto.CodeBadRoom, "room is missing")
	}
	room, perr := proto.ParseRoom(words[0])
	if perr != nil {
		return "", 0, nil, perr
	}

	rest := words[1:]
	count := 1
	if len(rest) > 0 && proto.LooksNumeric(rest[0]) {
		count, perr = proto.ParseCount(rest[0])
		if perr != nil {
			return "", 0, nil, perr
		}
		rest = rest[1:]
	}

	var topics []string
	for _, w := range rest {
		topic, perr := proto.ParseTopic(w)
		if perr != nil {
			return "", 0, nil, perr
		}
		topics = append(topics, string(topic))
	}
	return room, count, topics, nil
}

// collectBody reads message lines verbatim until a line containing only
// the terminator. End of input ends the body as if the terminator was
// read.
func (s *Session) collectBody() ([]string, error) {
	var lines []string
	for {
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read message body: %w", err)
		}
		if line == proto.WordTerminator {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// readLine flushes the prompt and reads a single line, without its
// trailing line break. There is no limit on line length.
func (s *Session) readLine() (string, error) {
	if s.prompt != "" {
		_, _ = io.WriteString(s.out, s.prompt)
	}

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) writeView(v chat.View) {
	header := append([]string{v.User, v.Room}, v.Topics...)
	_, _ = fmt.Fprintln(s.out, strings.Join(header, " "))
	_, _ = fmt.Fprintln(s.out, v.Body)
}

// endResponse writes the single blank line closing every successful
// command response.
func (s *Session) endResponse() {
	_, _ = fmt.Fprintln(s.out)
}

// userError emits the one-line diagnostic for a failed command. User
// errors never stop the session.
func (s *Session) userError(perr *proto.Error) {
	_, _ = fmt.Fprintln(s.errw, perr)
	s.log.Debug().Str("code", perr.Code).Str("detail", perr.Detail).Msg("command rejected")
}

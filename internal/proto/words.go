package proto

import (
	"strconv"
	"strings"
	"unicode"
)

// Command words of the line protocol.
const (
	WordAdd        = "+"
	WordQuery      = "?"
	WordTerminator = "."
)

// User is an author handle as typed, including the leading '@'.
type User string

// Room names a chat room. The typed case is kept; comparison happens
// case-insensitively in the store.
type Room string

// Topic is a message tag as typed, including the leading '#'.
type Topic string

// SplitWords breaks a line into words. A word is a maximal run of
// characters without spaces or tabs.
func SplitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}

// ParseUser validates a USER word: anything starting with '@'.
func ParseUser(word string) (User, *Error) {
	if !strings.HasPrefix(word, "@") {
		return "", Errorf(CodeBadUser, "user %q must start with '@'", word)
	}
	return User(word), nil
}

// ParseRoom validates a ROOM word: first character must be a letter.
func ParseRoom(word string) (Room, *Error) {
	runes := []rune(word)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return "", Errorf(CodeBadRoom, "room %q must start with a letter", word)
	}
	return Room(word), nil
}

// ParseTopic validates a TOPIC word: anything starting with '#'.
func ParseTopic(word string) (Topic, *Error) {
	if !strings.HasPrefix(word, "#") {
		return "", Errorf(CodeBadTopic, "topic %q must start with '#'", word)
	}
	return Topic(word), nil
}

// LooksNumeric reports whether a word can only be a COUNT candidate,
// meaning it starts with a decimal digit.
func LooksNumeric(word string) bool {
	return len(word) > 0 && word[0] >= '0' && word[0] <= '9'
}

// ParseCount validates a COUNT word: a positive integer literal. An
// empty word means the count was not given and defaults to 1.
func ParseCount(word string) (int, *Error) {
	if word == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(word)
	if err != nil || n <= 0 {
		return 0, Errorf(CodeBadCount, "count %q must be a positive integer", word)
	}
	return n, nil
}

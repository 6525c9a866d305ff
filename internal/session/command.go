package session

import "strings"

// Command is one tokenized input line.
type Command struct {
	Name string
	args []string
}

// Parse splits line on blanks. ok is false for a line with no tokens.
func Parse(line string) (cmd Command, ok bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, false
	}
	return Command{Name: tokens[0], args: tokens[1:]}, true
}

// Flag returns the token following the first occurrence of key, or "" if
// key is absent or is the last token.
func (c Command) Flag(key string) string {
	for i := 0; i+1 < len(c.args); i++ {
		if c.args[i] == key {
			return c.args[i+1]
		}
	}
	return ""
}

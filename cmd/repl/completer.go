package main

import "strings"

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand    completionContext = iota // start of line or partial command
	contextEngine                              // after engine
	contextColumnType                          // after the colon in a column declaration
)

var engineNames = []string{"mysql", "postgres", "sqlite"}
var columnTypeNames = []string{"bigint", "bool", "bytes", "float", "int", "text", "timestamp"}

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the prefix being completed.
// newLine contains the suffixes to append for each candidate.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = filterPrefix(c.sess.commandNames(), prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextColumnType:
		candidates = filterPrefix(columnTypeNames, prefix)
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		// Add trailing space for convenience.
		newLine = append(newLine, []rune(suffix+" "))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to cursor and determines what kind of
// completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) && cmd.completer != nil {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}

	// Default: command completion.
	return contextCommand, strings.TrimSpace(line)
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the last comma- or whitespace-separated token.
func lastToken(s string) string {
	lastSep := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' || s[i] == ',' || s[i] == '\t' {
			lastSep = i
			break
		}
	}
	if lastSep >= 0 {
		return s[lastSep+1:]
	}
	return s
}

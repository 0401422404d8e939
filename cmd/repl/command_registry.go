package main

import (
	"sort"
	"strings"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- CTE building ---
		{prefix: "name ", handler: func(a string) error { return s.cmdName(a) }},
		{prefix: "columns ", handler: func(a string) error { return s.cmdColumns(a) }, completer: completeColumnDecl},
		{prefix: "columns", handler: func(_ string) error { return s.cmdColumns("") }},
		{prefix: "body ", handler: func(a string) error { return s.cmdFragment("body", &s.body, a) }},
		{prefix: "seed ", handler: func(a string) error { return s.cmdFragment("seed", &s.seed, a) }},
		{prefix: "step ", handler: func(a string) error { return s.cmdFragment("step", &s.step, a) }},
		{prefix: "final ", handler: func(a string) error { return s.cmdFragment("final", &s.final, a) }},

		// --- output ---
		{prefix: "sql", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "tosql", handler: func(_ string) error { return s.cmdSQL() }, hidden: true},
		{prefix: "show", handler: func(_ string) error { return s.cmdShow() }},
		{prefix: "run", handler: func(_ string) error { return s.cmdRun() }},
		{prefix: "exec", handler: func(_ string) error { return s.cmdRun() }, hidden: true},

		// --- database connectivity ---
		{prefix: "connect ", handler: func(a string) error { return s.cmdConnect(a) }},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "raw ", handler: func(a string) error { return s.cmdRaw(a) }},

		// --- engine / session ---
		{prefix: "engine ", handler: func(a string) error { return s.cmdEngine(a) }, completer: completeEngineArgs},
		{prefix: "reset", handler: func(_ string) error { return s.cmdReset() }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.Slice(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// --- Shared completion helpers ---

// completeEngineArgs handles completion for the engine command.
func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

// completeColumnDecl completes the type half of a <name>:<type> declaration.
func completeColumnDecl(args string) (completionContext, string) {
	last := lastToken(args)
	if _, after, found := strings.Cut(last, ":"); found {
		return contextColumnType, after
	}
	return contextCommand, ""
}

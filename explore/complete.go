// Copyright © 2025 The declnav authors

package explore

import (
	"sort"
	"strings"
)

var commandNames = []string{"decls", "exit", "format", "help", "quit", "refs", "reload", "resolve"}

// commandCompleter implements readline.AutoCompleter for shell commands and
// declaration names from the loaded fixture.
type commandCompleter struct {
	session *session
}

func (c *commandCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collect(prefix, start == 0)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *commandCompleter) collect(prefix string, first bool) []string {
	seen := make(map[string]bool)
	var result []string
	if first {
		for _, name := range commandNames {
			if strings.HasPrefix(name, prefix) && !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	} else if c.session.tree != nil {
		for _, d := range c.session.tree.Decls {
			if strings.HasPrefix(d.Name, prefix) && !seen[d.Name] {
				seen[d.Name] = true
				result = append(result, d.Name)
			}
		}
	}
	sort.Strings(result)
	return result
}

// Package content serves the free-content commands (question, challenge,
// confession, mention) from embedded newline-delimited lists.
package content

import (
	"embed"
	"fmt"
	"math/rand"
	"strings"
)

//go:embed data/*.txt
var dataFS embed.FS

// Kinds of free content, keyed by their command token.
const (
	KindQuestion   = "question"
	KindChallenge  = "challenge"
	KindConfession = "confession"
	KindMention    = "mention"
)

var files = map[string]string{
	KindQuestion:   "data/questions.txt",
	KindChallenge:  "data/challenges.txt",
	KindConfession: "data/confessions.txt",
	KindMention:    "data/mentions.txt",
}

// Library holds the parsed lists.
type Library struct {
	lists map[string][]string
}

// Load parses every embedded list. Blank lines and lines starting with #
// are skipped.
func Load() (*Library, error) {
	lists := make(map[string][]string, len(files))
	for kind, path := range files {
		raw, err := dataFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content list %s: %w", path, err)
		}
		var lines []string
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("content list %s is empty", path)
		}
		lists[kind] = lines
	}
	return &Library{lists: lists}, nil
}

// Random returns a random line of the given kind, or false for an unknown
// kind.
func (l *Library) Random(kind string) (string, bool) {
	lines, ok := l.lists[kind]
	if !ok {
		return "", false
	}
	return lines[rand.Intn(len(lines))], true
}

package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level admits one more Scope.
type Level uint8

const (
	LevelOff   Level = iota
	LevelFile        // driver + per-file spans
	LevelStage       // + pipeline stages
	LevelDebug       // + recovery points
)

var levelNames = [...]string{"off", "file", "stage", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if l == LevelOff || int(l) >= len(levelNames) {
		return false
	}
	return l == LevelDebug || scope <= Scope(l)+1
}

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrInvalidCommand indicates a line that matches no command grammar.
var ErrInvalidCommand = errors.New("invalid command")

// maxSuggestDistance bounds how far a mistyped verb may be from a known one
// before no suggestion is offered.
const maxSuggestDistance = 2

// ParseError describes a line that could not be parsed.
// It wraps ErrInvalidCommand.
type ParseError struct {
	Input      string // Trimmed input line.
	Usage      string // Expected form when the verb was recognized, else empty.
	Suggestion string // Closest known verb when the verb was not recognized.
}

func (e *ParseError) Error() string {
	switch {
	case e.Usage != "":
		return fmt.Sprintf("%s (usage: %s)", ErrInvalidCommand, e.Usage)
	case e.Suggestion != "":
		return fmt.Sprintf("%s %q (did you mean %q?)", ErrInvalidCommand, e.Input, e.Suggestion)
	default:
		return ErrInvalidCommand.Error()
	}
}

func (e *ParseError) Unwrap() error { return ErrInvalidCommand }

// Parse converts a raw input line into a Command.
// The verb is matched case-insensitively; names and values keep their case.
// Unrecognized or malformed lines return a *ParseError.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	tokens := strings.Fields(trimmed)
	if len(tokens) == 0 {
		return nil, &ParseError{Input: trimmed}
	}

	verb := strings.ToLower(tokens[0])
	switch verb {
	case verbAdd:
		return parseAdd(trimmed, tokens)
	case verbShow:
		if len(tokens) < 2 {
			return nil, &ParseError{Input: trimmed, Usage: "show <name>"}
		}
		return Show{Name: tokens[1]}, nil
	case verbFind:
		if len(tokens) < 2 {
			return nil, &ParseError{Input: trimmed, Usage: "find <phone|email>"}
		}
		return Find{Value: tokens[1]}, nil
	case verbExport:
		if len(tokens) < 2 {
			return nil, &ParseError{Input: trimmed, Usage: "export <path>"}
		}
		return Export{Path: tokens[1]}, nil
	case verbExit:
		return Exit{}, nil
	case verbHelp:
		return Help{}, nil
	}

	return nil, &ParseError{Input: trimmed, Suggestion: suggest(verb)}
}

// parseAdd handles "add <name> phone|email <value...>".
// Values may contain spaces; they are rejoined with single spaces.
func parseAdd(trimmed string, tokens []string) (Command, error) {
	const usage = "add <name> phone|email <value>"
	if len(tokens) < 4 {
		return nil, &ParseError{Input: trimmed, Usage: usage}
	}

	name := tokens[1]
	value := strings.Join(tokens[3:], " ")
	switch strings.ToLower(tokens[2]) {
	case "phone":
		return AddPhone{Name: name, Phone: value}, nil
	case "email":
		return AddEmail{Name: name, Email: value}, nil
	default:
		return nil, &ParseError{Input: trimmed, Usage: usage}
	}
}

// suggest returns the known verb closest to verb, or "" if none is close enough.
func suggest(verb string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, known := range []string{verbAdd, verbShow, verbFind, verbExport, verbExit, verbHelp} {
		if d := levenshtein.ComputeDistance(verb, known); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}

package vm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Symbol is a single cell value on the tape.
type Symbol rune

// Blank fills every cell the tape grows into.
const Blank Symbol = '_'

func (s Symbol) String() string {
	return string(s)
}

// ParseSymbol converts a one-character string into a Symbol.
func ParseSymbol(s string) (Symbol, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol %q must be exactly one character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Symbol(r), nil
}

// Word splits text into one Symbol per character.
func Word(text string) []Symbol {
	out := make([]Symbol, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		out = append(out, Symbol(r))
	}
	return out
}

// Text joins symbols back into a string.
func Text(word []Symbol) string {
	var b strings.Builder
	for _, s := range word {
		b.WriteRune(rune(s))
	}
	return b.String()
}

type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts L, R, LEFT and RIGHT in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LEFT":
		return Left, nil
	case "R", "RIGHT":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

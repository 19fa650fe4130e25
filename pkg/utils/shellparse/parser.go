// Package shellparse splits a shell-style argument string into words.
//
// It is used for configuration documents that give a VM's trailing
// arguments as a single string (args = "-switch value -name 'two words'")
// instead of a list.
package shellparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnclosedQuote is returned when a quoted string is not properly closed
	ErrUnclosedQuote = errors.New("unclosed quote in argument string")

	// ErrTrailingEscape is returned when a backslash appears at the end of input
	ErrTrailingEscape = errors.New("trailing escape character at end of argument string")
)

type quoteState int

const (
	unquoted quoteState = iota
	inSingle
	inDouble
)

// splitter accumulates words while walking the input once.
type splitter struct {
	words   []string
	word    strings.Builder
	pending bool // a word has started, even if it is still empty ("")
}

func (s *splitter) add(r rune) {
	s.word.WriteRune(r)
	s.pending = true
}

func (s *splitter) flush() {
	if s.pending {
		s.words = append(s.words, s.word.String())
		s.word.Reset()
		s.pending = false
	}
}

// Split parses an argument string into words.
//
//   - Words are separated by unquoted whitespace
//   - Single quotes preserve everything literally
//   - Double quotes preserve everything except \" \\ \$ and \`
//   - Outside quotes a backslash escapes any character
//   - A quoted empty string ('' or "") yields an empty word
func Split(input string) ([]string, error) {
	s := &splitter{}
	state := unquoted
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch state {
		case inSingle:
			if r == '\'' {
				state = unquoted
				continue
			}
			s.add(r)

		case inDouble:
			switch r {
			case '"':
				state = unquoted
			case '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				i++
				next := runes[i]
				if !strings.ContainsRune("\"\\$`", next) {
					s.add('\\')
				}
				s.add(next)
			default:
				s.add(r)
			}

		default:
			switch {
			case r == '\'':
				state = inSingle
				s.pending = true
			case r == '"':
				state = inDouble
				s.pending = true
			case r == '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				i++
				s.add(runes[i])
			case unicode.IsSpace(r):
				s.flush()
			default:
				s.add(r)
			}
		}
	}

	switch state {
	case inSingle:
		return nil, fmt.Errorf("%w: unclosed single quote", ErrUnclosedQuote)
	case inDouble:
		return nil, fmt.Errorf("%w: unclosed double quote", ErrUnclosedQuote)
	}

	s.flush()
	if s.words == nil {
		return []string{}, nil
	}
	return s.words, nil
}

package osm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

var (
	ErrUnterminatedObject = errors.New("object is not terminated by ';'")
	ErrEmptyObjectType    = errors.New("object has no type name")
)

// ParseError. position of a malformed object in the source text.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse. reads IDF style text: "Type, field, field;" with '!' comments to end of line.
func Parse(r io.Reader) ([]*Object, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	objects := make([]*Object, 0)
	var (
		tokens    []string
		current   strings.Builder
		inObject  bool
		startLine int
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if idx := strings.IndexByte(line, '!'); idx >= 0 {
			line = line[:idx]
		}

		for _, c := range line {
			if !inObject && !unicode.IsSpace(c) {
				inObject = true
				startLine = lineNo
			}
			switch c {
			case ',':
				tokens = append(tokens, strings.TrimSpace(current.String()))
				current.Reset()
			case ';':
				tokens = append(tokens, strings.TrimSpace(current.String()))
				current.Reset()
				obj, err := newObjectFromTokens(tokens, startLine)
				if err != nil {
					return nil, err
				}
				objects = append(objects, obj)
				tokens = nil
				inObject = false
			default:
				current.WriteRune(c)
			}
		}
		if inObject {
			// fields never span lines, a line break inside a field acts as whitespace
			current.WriteRune(' ')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading model text: %w", err)
	}

	if inObject {
		return nil, &ParseError{Line: startLine, Err: ErrUnterminatedObject}
	}
	return objects, nil
}

func newObjectFromTokens(tokens []string, line int) (*Object, error) {
	if len(tokens) == 0 || tokens[0] == "" {
		return nil, &ParseError{Line: line, Err: ErrEmptyObjectType}
	}
	obj := NewObject(tokens[0], tokens[1:]...)
	obj.line = line
	return obj, nil
}

package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/reportctl/internal/report"
)

var ErrParse = errors.New("ingest: parse failed")

// ParseError pins a malformed token to its 1-based line and field.
type ParseError struct {
	Line  int
	Field int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ingest: line %d field %d: invalid integer %q: %v", e.Line, e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Parse reads one report per line. Blank lines are skipped. The first bad
// token aborts the whole read.
func Parse(r io.Reader) ([]report.Report, error) {
	var out []report.Report
	br := bufio.NewReader(r)
	line := 0
	for {
		text, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("ingest: read failed at line %d: %w", line+1, readErr)
		}
		if text == "" && readErr != nil {
			return out, nil
		}
		line++
		rep, err := parseLine(line, text)
		if err != nil {
			return nil, err
		}
		if rep != nil {
			out = append(out, rep)
		}
		if readErr != nil {
			return out, nil
		}
	}
}

// parseLine returns nil for a blank line. Line length is unbounded.
func parseLine(line int, text string) (report.Report, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	rep := make(report.Report, len(fields))
	for i, tok := range fields {
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return nil, &ParseError{Line: line, Field: i + 1, Token: tok, Err: err}
		}
		rep[i] = int32(v)
	}
	return rep, nil
}

// Load parses the file at path.
func Load(path string) ([]report.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open (%s): %w", path, err)
	}
	defer f.Close()

	reports, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("ingest: load (%s): %w", path, err)
	}
	return reports, nil
}

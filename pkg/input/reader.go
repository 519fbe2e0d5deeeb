// Package input reads task records of the form "<action> <amount>", one per line.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jzx17/parsum/pkg/types"
)

// Reader parses task records from an io.Reader
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a new Reader
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Line returns the number of the last line read
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next task, skipping blank lines. It returns io.EOF when
// the input is exhausted.
func (r *Reader) Next() (types.Task, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}
		task, err := ParseLine(text)
		if err != nil {
			return types.Task{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return task, nil
	}
	if err := r.scanner.Err(); err != nil {
		return types.Task{}, err
	}
	return types.Task{}, io.EOF
}

// ParseLine parses a single "<action> <amount>" record. The amount is
// validated before the action.
func ParseLine(line string) (types.Task, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || len(fields[0]) != 1 {
		return types.Task{}, fmt.Errorf("%w: %q", types.ErrInvalidInput, line)
	}

	amount, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return types.Task{}, fmt.Errorf("%w: %q", types.ErrInvalidInput, line)
	}
	if amount < 1 {
		return types.Task{}, fmt.Errorf("%w: %d", types.ErrInvalidAmount, amount)
	}

	kind, err := types.ParseKind(fields[0][0])
	if err != nil {
		return types.Task{}, err
	}
	return types.NewTask(kind, amount)
}

// ReadAll submits every task in r, in input order, stopping at the first
// parse or submit error. It returns the number of tasks submitted.
func ReadAll(r io.Reader, submit func(types.Task) error) (int, error) {
	reader := NewReader(r)
	n := 0
	for {
		task, err := reader.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := submit(task); err != nil {
			return n, fmt.Errorf("line %d: %w", reader.Line(), err)
		}
		n++
	}
}

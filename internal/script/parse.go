// Package script parses and replays line-oriented to-do intent scripts
// against an app.Controller on a virtual clock.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Op names one scripted intent.
type Op string

// Supported script operations.
const (
	OpDraft  Op = "draft"
	OpAdd    Op = "add"
	OpSubmit Op = "submit"
	OpToggle Op = "toggle"
	OpEdit   Op = "edit"
	OpSave   Op = "save"
	OpCancel Op = "cancel"
	OpDelete Op = "delete"
	OpWait   Op = "wait"
	OpSettle Op = "settle"
)

// Parse errors.
var (
	ErrUnknownOp     = errors.New("unknown operation")
	ErrMissingArg    = errors.New("missing argument")
	ErrUnexpectedArg = errors.New("unexpected argument")
	ErrBadDuration   = errors.New("invalid duration")
)

// argKind describes what follows an operation keyword.
type argKind int

const (
	argNone argKind = iota
	argText
	argOptionalText
	argRef
	argDuration
)

var opArgs = map[Op]argKind{
	OpDraft:  argOptionalText,
	OpAdd:    argText,
	OpSubmit: argNone,
	OpToggle: argRef,
	OpEdit:   argRef,
	OpSave:   argNone,
	OpCancel: argNone,
	OpDelete: argRef,
	OpWait:   argDuration,
	OpSettle: argNone,
}

// Step is one parsed script line.
type Step struct {
	Line int
	Op   Op
	Arg  string
	Wait time.Duration
}

// ParseError reports the script line that failed to parse.
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

// Parse reads a script. Blank lines and lines starting with # are skipped.
// Text arguments keep their inner whitespace; only the separator after
// the keyword is consumed.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		step, err := parseLine(strings.TrimLeft(line, " \t"))
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		step.Line = lineNo
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseLine(line string) (Step, error) {
	keyword, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		keyword, rest = line[:i], line[i+1:]
	}
	op := Op(strings.ToLower(strings.TrimSpace(keyword)))
	kind, ok := opArgs[op]
	if !ok {
		return Step{}, fmt.Errorf("%w %q", ErrUnknownOp, keyword)
	}
	arg := rest
	if kind != argText && kind != argOptionalText {
		arg = strings.TrimSpace(rest)
	}

	step := Step{Op: op, Arg: arg}
	switch kind {
	case argNone:
		if strings.TrimSpace(arg) != "" {
			return Step{}, fmt.Errorf("%w for %s: %q", ErrUnexpectedArg, op, arg)
		}
		step.Arg = ""
	case argText, argRef:
		if strings.TrimSpace(arg) == "" {
			return Step{}, fmt.Errorf("%w for %s", ErrMissingArg, op)
		}
	case argDuration:
		if arg == "" {
			return Step{}, fmt.Errorf("%w for %s", ErrMissingArg, op)
		}
		d, err := time.ParseDuration(arg)
		if err != nil || d < 0 {
			return Step{}, fmt.Errorf("%w %q", ErrBadDuration, arg)
		}
		step.Wait = d
	}
	return step, nil
}

// Package options declares the command-line surface of the application.
package options

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Background is the name of the "start in background" option.
const Background = "background"

// ErrUnexpectedValue is returned when a switch is given an explicit value.
var ErrUnexpectedValue = errors.New("--background does not take a value")

// Parsed is the result of parsing one process invocation.
type Parsed struct {
	fs   *flag.FlagSet
	args []string
}

// Contains reports whether the named option was given on the command line.
func (p Parsed) Contains(name string) bool {
	if p.fs == nil {
		return false
	}
	return p.fs.Changed(name)
}

// Args returns the raw arguments the result was parsed from.
func (p Parsed) Args() []string {
	return append([]string(nil), p.args...)
}

// Parser converts raw invocation arguments into a Parsed lookup.
type Parser struct {
	prog string
}

// NewParser creates a parser whose usage text names prog.
func NewParser(prog string) *Parser {
	return &Parser{prog: prog}
}

// flagSet builds a fresh flag set so each invocation is parsed independently.
func (p *Parser) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(p.prog, flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	fs.BoolP(Background, "b", false, "Start the application in background")
	return fs
}

// Parse parses args, which must not include the program name. A help
// request returns flag.ErrHelp.
func (p *Parser) Parse(args []string) (Parsed, error) {
	fs := p.flagSet()
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return Parsed{}, err
		}
		return Parsed{}, fmt.Errorf("parse arguments: %w", err)
	}
	if arg, ok := switchValue(args); ok {
		return Parsed{}, fmt.Errorf("parse arguments: %w (got %q)", ErrUnexpectedValue, arg)
	}
	if on, _ := fs.GetBool(Background); fs.Changed(Background) && !on {
		return Parsed{}, fmt.Errorf("parse arguments: %w", ErrUnexpectedValue)
	}
	return Parsed{fs: fs, args: append([]string(nil), args...)}, nil
}

// switchValue finds a "--background=..." or "-b=..." argument before the
// end-of-options marker.
func switchValue(args []string) (string, bool) {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "--"+Background+"=") || strings.HasPrefix(arg, "-b=") {
			return arg, true
		}
	}
	return "", false
}

// Usage renders the help text for the recognised options.
func (p *Parser) Usage() string {
	return fmt.Sprintf("Usage:\n  %s [OPTION...]\n\nApplication Options:\n%s", p.prog, p.flagSet().FlagUsages())
}

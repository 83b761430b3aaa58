package options

import (
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackground(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no flags", nil, false},
		{"long form", []string{"--background"}, true},
		{"short form", []string{"-b"}, true},
		{"positional only", []string{"file.txt"}, false},
	}

	p := NewParser("packet")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := p.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Contains(Background))
		})
	}
}

func TestParseIsIndependentPerInvocation(t *testing.T) {
	p := NewParser("packet")

	first, err := p.Parse([]string{"-b"})
	require.NoError(t, err)
	second, err := p.Parse(nil)
	require.NoError(t, err)

	assert.True(t, first.Contains(Background))
	assert.False(t, second.Contains(Background))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown flag", []string{"--no-such-flag"}, nil},
		{"long form with false", []string{"--background=false"}, ErrUnexpectedValue},
		{"long form with true", []string{"--background=true"}, ErrUnexpectedValue},
		{"short form with value", []string{"-b=false"}, ErrUnexpectedValue},
	}

	p := NewParser("packet")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.args)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}

	_, err := p.Parse([]string{"--help"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestValueAfterTerminatorIsPositional(t *testing.T) {
	parsed, err := NewParser("packet").Parse([]string{"--", "--background=false"})
	require.NoError(t, err)
	assert.False(t, parsed.Contains(Background))
}

func TestParsedArgsAndZeroValue(t *testing.T) {
	p := NewParser("packet")
	parsed, err := p.Parse([]string{"--background"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--background"}, parsed.Args())

	var zero Parsed
	assert.False(t, zero.Contains(Background))
}

func TestUsage(t *testing.T) {
	usage := NewParser("packet").Usage()
	assert.Contains(t, usage, "--background")
	assert.Contains(t, usage, "-b")
	assert.Contains(t, usage, "Start the application in background")
}

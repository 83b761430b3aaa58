package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterActivate(t *testing.T) {
	r := NewRouter()
	var calls []string
	r.Add(Quit, func() { calls = append(calls, "quit") })
	r.Add(About, func() { calls = append(calls, "about") })

	require.NoError(t, r.Activate("quit"))
	require.NoError(t, r.Activate("app.about"))
	assert.Equal(t, []string{"quit", "about"}, calls)
}

func TestRouterUnknownAction(t *testing.T) {
	r := NewRouter()
	r.Add(Quit, func() {})

	err := r.Activate("preferences")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), "preferences")
}

func TestRouterAddReplaces(t *testing.T) {
	r := NewRouter()
	first, second := 0, 0
	r.Add(Quit, func() { first++ })
	r.Add(About, func() {})
	r.Add(Quit, func() { second++ })

	require.NoError(t, r.Activate(string(Quit)))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []Name{Quit, About}, r.Names())
	assert.True(t, r.Has(About))
}

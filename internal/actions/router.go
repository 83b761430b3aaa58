// Package actions routes named application commands to their handlers.
package actions

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies one of the application-wide actions.
type Name string

const (
	Quit  Name = "quit"
	About Name = "about"
)

// Scope is the prefix the UI layer uses for application actions.
const Scope = "app."

// ErrUnknownAction is returned when activating a name with no handler.
var ErrUnknownAction = errors.New("unknown action")

// Handler runs an action.
type Handler func()

// Router is a fixed lookup table from action name to handler. It does not
// distinguish where an activation came from.
type Router struct {
	handlers map[Name]Handler
	order    []Name
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[Name]Handler)}
}

// Add registers h for name, replacing any earlier handler.
func (r *Router) Add(name Name, h Handler) {
	if _, ok := r.handlers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.handlers[name] = h
}

// Activate runs the handler registered for name. The "app." prefix is
// accepted so accelerator and menu identifiers can be passed through.
func (r *Router) Activate(name string) error {
	h, ok := r.handlers[Name(strings.TrimPrefix(name, Scope))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	h()
	return nil
}

// Has reports whether name is registered.
func (r *Router) Has(name Name) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Router) Names() []Name {
	return append([]Name(nil), r.order...)
}

// Len returns the number of registered actions.
func (r *Router) Len() int {
	return len(r.order)
}

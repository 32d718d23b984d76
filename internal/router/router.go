// Package router keeps the in-app location as a path with browser-style
// history. Views derive their state from the current path instead of
// holding it themselves.
package router

import (
	"strings"
)

// Root is the location the history starts at and never pops past
const Root = "/"

// Params holds the values of :name segments from a matched pattern
type Params map[string]string

// Get returns the value of a named parameter, or "" when absent
func (p Params) Get(name string) string {
	return p[name]
}

// Router manages the location history.
// Not safe for concurrent use; the update loop owns it.
type Router struct {
	stack *Stack
}

// New creates a Router positioned at Root
func New() *Router {
	r := &Router{stack: NewStack()}
	r.stack.Push(Root)
	return r
}

// Navigate pushes path onto the history. Navigating to the current
// location is a no-op.
func (r *Router) Navigate(path string) {
	path = clean(path)
	if path == r.Location() {
		return
	}
	r.stack.Push(path)
}

// Back pops one entry. Returns false when already at the first entry.
func (r *Router) Back() bool {
	if !r.CanGoBack() {
		return false
	}
	r.stack.Pop()
	return true
}

// CanGoBack reports whether Back would change the location
func (r *Router) CanGoBack() bool {
	return r.stack.Len() > 1
}

// Location returns the current path
func (r *Router) Location() string {
	if top, ok := r.stack.Peek(); ok {
		return top
	}
	return Root
}

// Reset clears the history back to Root
func (r *Router) Reset() {
	r.stack.Clear()
	r.stack.Push(Root)
}

// Match tests the current location against pattern
func (r *Router) Match(pattern string) (Params, bool) {
	return Match(pattern, r.Location())
}

// Match tests path against a pattern such as "/movies/:movieId".
// Literal segments must be equal; ":name" segments capture one non-empty
// segment. Segment counts must agree.
func Match(pattern, path string) (Params, bool) {
	pp := segments(pattern)
	sp := segments(path)
	if len(pp) != len(sp) {
		return nil, false
	}

	params := Params{}
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return nil, false
			}
			params[seg[1:]] = sp[i]
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return params, true
}

func clean(path string) string {
	if path == "" {
		return Root
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func segments(path string) []string {
	path = strings.Trim(clean(path), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

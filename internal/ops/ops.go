// Package ops enumerates the operation kinds the routing tree understands.
//
// The set of kinds is closed: every routable request carries exactly one
// Kind, and generic code dispatches over the enumeration with ForEach rather
// than hard-coding individual kinds.
package ops

import (
	"errors"
	"fmt"
)

// Kind identifies the operation a request performs.
type Kind int

const (
	// Get reads a value by key.
	Get Kind = iota
	// Set stores a value unconditionally.
	Set
	// Delete removes a key.
	Delete
	// Add stores a value only if the key is absent.
	Add
	// Replace stores a value only if the key is present.
	Replace
	// Incr increments a numeric value.
	Incr
	// Decr decrements a numeric value.
	Decr
	// LeaseGet reads a value, handing out a lease token on miss.
	LeaseGet
	// Metaget reads metadata about a key without its value.
	Metaget
	// FlushAll clears every destination reachable from the tree.
	FlushAll

	numKinds // must stay last
)

var kindNames = [numKinds]string{
	Get:      "get",
	Set:      "set",
	Delete:   "delete",
	Add:      "add",
	Replace:  "replace",
	Incr:     "incr",
	Decr:     "decr",
	LeaseGet: "lease-get",
	Metaget:  "metaget",
	FlushAll: "flushall",
}

// ErrUnknownOperation is returned when an operation name does not resolve to
// a registered Kind.
var ErrUnknownOperation = errors.New("unknown op")

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// String returns the canonical name of the kind, the inverse of FromName.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ForEach invokes fn once per registered kind, in declaration order, until
// fn returns false.
func ForEach(fn func(Kind) bool) {
	for k := Kind(0); k < numKinds; k++ {
		if !fn(k) {
			return
		}
	}
}

// FromName resolves an operation name to its Kind. Unknown names fail with
// ErrUnknownOperation.
func FromName(name string) (Kind, error) {
	found := Kind(-1)
	ForEach(func(k Kind) bool {
		if k.String() == name {
			found = k
			return false
		}
		return true
	})
	if found < 0 {
		return 0, fmt.Errorf("%w %s", ErrUnknownOperation, name)
	}
	return found, nil
}

// Kinds returns all registered kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	ForEach(func(k Kind) bool {
		out = append(out, k)
		return true
	})
	return out
}

package route

import "errors"

// ErrInvalidConfiguration is returned when a node or tree cannot be built
// from its configuration. No partial tree is ever published after this.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidKey is returned when a key violates the wire protocol's key
// syntax rules. During routing it surfaces as an error Reply, never as a
// hard failure.
var ErrInvalidKey = errors.New("invalid key")

package route

import (
	"context"

	"github.com/krouter-io/krouter/internal/ops"
)

// Node is one element of the routing tree.
//
// Implementations must be immutable after construction: the same node is
// shared read-only by every concurrent request routing through it.
type Node interface {
	// Route performs the real routing decision for the request and returns
	// the (possibly aggregated) reply. It may perform network I/O or
	// delegate to children.
	Route(ctx context.Context, req *Request, kind ops.Kind) Reply

	// PossibleTargets returns, in order, the children Route would delegate
	// to for the same inputs, without performing I/O or mutating state.
	// The recording walk relies on this being exactly consistent with Route.
	PossibleTargets(req *Request, kind ops.Kind) []Node

	// DisplayName is the stable human-readable identifier used when dumping
	// the tree.
	DisplayName() string
}

package route

import (
	"context"
	"fmt"

	"github.com/krouter-io/krouter/internal/ops"
)

// AllSyncNode delegates every request to all of its children, in order,
// waiting for each before moving to the next. The reply is the first error
// reply encountered, or the last child's reply when none failed. This is how
// the top-level route fans a flush across every backend, and it is the node
// that exercises multi-destination recording walks.
type AllSyncNode struct {
	children []Node
}

// NewAllSyncNode builds the fan-out node. At least one child is required.
func NewAllSyncNode(children []Node) (*AllSyncNode, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: all-sync: no children", ErrInvalidConfiguration)
	}
	owned := make([]Node, len(children))
	copy(owned, children)
	return &AllSyncNode{children: owned}, nil
}

// Route delegates to every child in order.
func (n *AllSyncNode) Route(ctx context.Context, req *Request, kind ops.Kind) Reply {
	var last Reply
	var firstErr *Reply
	for _, child := range n.children {
		last = child.Route(ctx, req, kind)
		if last.IsError() && firstErr == nil {
			errReply := last
			firstErr = &errReply
		}
	}
	if firstErr != nil {
		return *firstErr
	}
	return last
}

// PossibleTargets returns all children in delegation order.
func (n *AllSyncNode) PossibleTargets(req *Request, kind ops.Kind) []Node {
	return n.children
}

// DisplayName implements Node.
func (n *AllSyncNode) DisplayName() string { return "all-sync" }

var _ Node = (*AllSyncNode)(nil)

package route

import (
	"context"
	"fmt"

	"github.com/krouter-io/krouter/internal/ops"
)

// Transport performs the actual send to a backend. The concrete network
// transport lives outside this package; tests and dry-run trees use fakes or
// none at all.
type Transport interface {
	Send(ctx context.Context, req *Request, kind ops.Kind) Reply
}

// DestinationNode is the leaf of the routing tree: the point where a request
// would leave the proxy toward one backend. When the request carries a
// Recording, the node reports its destination identifier to the sink instead
// of sending and returns immediately with a synthetic reply.
type DestinationNode struct {
	address   string
	transport Transport
}

// NewDestinationNode creates a leaf for the backend at address (host:port).
// A nil transport is allowed; such a node can only serve recording walks.
func NewDestinationNode(address string, transport Transport) (*DestinationNode, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: destination: empty address", ErrInvalidConfiguration)
	}
	return &DestinationNode{address: address, transport: transport}, nil
}

// Address returns the destination identifier reported during dry-run walks.
func (d *DestinationNode) Address() string { return d.address }

// Route sends the request to the backend, or records the would-be send when
// the request carries a recording.
func (d *DestinationNode) Route(ctx context.Context, req *Request, kind ops.Kind) Reply {
	if rec := req.Recording(); rec != nil {
		rec.Report(d.address)
		return NotFoundReply()
	}
	if d.transport == nil {
		return ErrorReply(fmt.Sprintf("destination %s has no transport", d.address))
	}
	return d.transport.Send(ctx, req, kind)
}

// PossibleTargets returns nil: a destination delegates to no further nodes.
func (d *DestinationNode) PossibleTargets(req *Request, kind ops.Kind) []Node {
	return nil
}

// DisplayName identifies the leaf by its backend address.
func (d *DestinationNode) DisplayName() string {
	return "destination|" + d.address
}

var _ Node = (*DestinationNode)(nil)

package route

import (
	"context"
	"fmt"

	"github.com/krouter-io/krouter/internal/ops"
)

// ProxyNode is the topmost node of a published routing tree. It wraps the
// configured root so the tree always has a stable entry point with a known
// display name.
type ProxyNode struct {
	root Node
}

// NewProxyNode wraps root as the entry point of a tree.
func NewProxyNode(root Node) (*ProxyNode, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: proxy: no root", ErrInvalidConfiguration)
	}
	return &ProxyNode{root: root}, nil
}

// Route delegates to the wrapped root.
func (p *ProxyNode) Route(ctx context.Context, req *Request, kind ops.Kind) Reply {
	return p.root.Route(ctx, req, kind)
}

// PossibleTargets returns the wrapped root.
func (p *ProxyNode) PossibleTargets(req *Request, kind ops.Kind) []Node {
	return []Node{p.root}
}

// DisplayName implements Node.
func (p *ProxyNode) DisplayName() string { return "proxy" }

var _ Node = (*ProxyNode)(nil)

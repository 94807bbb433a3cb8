package route

import (
	"context"
	"fmt"
	"strings"

	"github.com/krouter-io/krouter/internal/ops"
)

// KeyRewriteNode rewrites the key of a request before delegating to its
// single child.
//
// With SetRoutingPrefix the routing prefix of the key is forced to that
// value (empty string strips the prefix entirely); with EnsureKeyPrefix the
// unprefixed key is forced to start with that fragment.
//
// Example, SetRoutingPrefix="/a/b/" and EnsureKeyPrefix="foo":
//
//	"/a/b/a" => "/a/b/fooa"
//	"foo"    => "/a/b/foo"
//	"/b/c/o" => "/a/b/fooo"
type KeyRewriteNode struct {
	target        Node
	routingPrefix *string // nil means keep the request's own prefix
	keyPrefix     string
}

// KeyRewriteConfig configures a KeyRewriteNode.
type KeyRewriteConfig struct {
	// Target is the child every request is delegated to. Required.
	Target Node

	// SetRoutingPrefix, when non-nil, overrides the routing prefix of every
	// key. The empty string strips the prefix.
	SetRoutingPrefix *string

	// EnsureKeyPrefix, when non-empty, is enforced as a prefix of the
	// unprefixed key. Must be a syntactically valid key fragment.
	EnsureKeyPrefix string
}

// NewKeyRewriteNode validates the configuration and builds the node.
func NewKeyRewriteNode(cfg KeyRewriteConfig) (*KeyRewriteNode, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("%w: key-rewrite: no target", ErrInvalidConfiguration)
	}
	n := &KeyRewriteNode{
		target:    cfg.Target,
		keyPrefix: cfg.EnsureKeyPrefix,
	}
	if cfg.SetRoutingPrefix != nil {
		rp := *cfg.SetRoutingPrefix
		if rp != "" {
			canonical, err := ParseRoutingPrefix(rp)
			if err != nil {
				return nil, fmt.Errorf("%w: key-rewrite: set routing prefix: %q", ErrInvalidConfiguration, rp)
			}
			rp = canonical
		}
		n.routingPrefix = &rp
	}
	if cfg.EnsureKeyPrefix != "" {
		if err := ValidateKey(cfg.EnsureKeyPrefix); err != nil {
			return nil, fmt.Errorf("%w: key-rewrite: key prefix %q: %v", ErrInvalidConfiguration, cfg.EnsureKeyPrefix, err)
		}
	}
	return n, nil
}

// Route rewrites the key when needed and delegates to the target.
func (n *KeyRewriteNode) Route(ctx context.Context, req *Request, kind ops.Kind) Reply {
	rp := req.RoutingPrefix()
	if n.routingPrefix != nil {
		rp = *n.routingPrefix
	}
	if !strings.HasPrefix(req.KeyWithoutRoute(), n.keyPrefix) {
		return n.routeWithKey(ctx, req, rp+n.keyPrefix+req.KeyWithoutRoute(), kind)
	}
	if n.routingPrefix != nil && rp != req.RoutingPrefix() {
		return n.routeWithKey(ctx, req, rp+req.KeyWithoutRoute(), kind)
	}
	return n.target.Route(ctx, req, kind)
}

// PossibleTargets always returns exactly the target: the rewrite never
// changes which child is used.
func (n *KeyRewriteNode) PossibleTargets(req *Request, kind ops.Kind) []Node {
	return []Node{n.target}
}

// DisplayName implements Node.
func (n *KeyRewriteNode) DisplayName() string { return "modify-key" }

func (n *KeyRewriteNode) routeWithKey(ctx context.Context, req *Request, key string, kind ops.Kind) Reply {
	clone := req.Clone()
	if err := clone.SetKey(key); err != nil {
		return ErrorReply(fmt.Sprintf("key-rewrite: %v", err))
	}
	return n.target.Route(ctx, clone, kind)
}

var _ Node = (*KeyRewriteNode)(nil)

package route

import (
	"context"
	"sync"

	"github.com/krouter-io/krouter/internal/ops"
)

// captureNode is a leaf fake that records the keys of every request routed
// into it.
type captureNode struct {
	name  string
	reply Reply

	mu   sync.Mutex
	keys []string
}

func (c *captureNode) Route(ctx context.Context, req *Request, kind ops.Kind) Reply {
	c.mu.Lock()
	c.keys = append(c.keys, req.Key())
	c.mu.Unlock()
	return c.reply
}

func (c *captureNode) PossibleTargets(req *Request, kind ops.Kind) []Node { return nil }

func (c *captureNode) DisplayName() string { return c.name }

func (c *captureNode) routedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func strPtr(s string) *string { return &s }

func mustRequest(key string) *Request {
	req, err := NewRequest(key)
	if err != nil {
		panic(err)
	}
	return req
}

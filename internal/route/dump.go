package route

import (
	"strings"

	"github.com/krouter-io/krouter/internal/ops"
)

// DumpTree renders the routing subtree the request would traverse as an
// indented, depth-first, pre-order listing of node display names, one space
// of indentation per depth level. It relies on PossibleTargets only, so it
// never performs I/O; the builder guarantees acyclicity, so no cycle
// detection happens here.
func DumpTree(root Node, req *Request, kind ops.Kind) string {
	var b strings.Builder
	dumpNode(&b, 0, root, req, kind)
	return b.String()
}

func dumpNode(b *strings.Builder, level int, n Node, req *Request, kind ops.Kind) {
	for i := 0; i < level; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(n.DisplayName())
	b.WriteByte('\n')
	for _, target := range n.PossibleTargets(req, kind) {
		dumpNode(b, level+1, target, req, kind)
	}
}

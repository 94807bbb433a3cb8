// Package route implements the composable routing tree of the proxy.
//
// A tree of Node values decides, for every incoming request, which backend
// destination(s) should receive it. Nodes are built once at configuration
// time, are immutable afterwards, and are shared read-only by arbitrarily
// many concurrent requests. The same child may be reachable through multiple
// parents, so the tree is really a DAG; the builder rejects cycles before a
// tree is ever published.
//
// Every node answers two questions about a request: Route performs the real
// routing decision (possibly delegating to children or performing I/O), and
// PossibleTargets returns the children Route would engage without touching
// the network. The second contract is what makes dry-run introspection work:
// a Recording attached to a request turns leaf sends into "would send to X"
// reports, so the exact production routing logic can be replayed without
// issuing traffic.
package route

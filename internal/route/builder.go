package route

import (
	"fmt"
	"sort"
)

// NodeSpec describes one named node in the routing section of the
// configuration file.
type NodeSpec struct {
	// Type selects the node kind: "modify-key", "all-sync" or "destination".
	Type string `yaml:"type"`

	// Target names the child node of a modify-key node.
	Target string `yaml:"target,omitempty"`

	// Children names the fan-out children of an all-sync node.
	Children []string `yaml:"children,omitempty"`

	// SetRoutingPrefix, when present, overrides the routing prefix of every
	// key passing through a modify-key node. Empty string strips the prefix.
	SetRoutingPrefix *string `yaml:"setRoutingPrefix,omitempty"`

	// EnsureKeyPrefix is enforced as a prefix of the unprefixed key by a
	// modify-key node.
	EnsureKeyPrefix string `yaml:"ensureKeyPrefix,omitempty"`

	// Address is the host:port of a destination node.
	Address string `yaml:"address,omitempty"`
}

// TreeSpec is the declarative form of a routing tree: a set of named node
// specs and the name of the root. Several specs may target the same child,
// which yields a shared node in the built DAG.
type TreeSpec struct {
	Root  string              `yaml:"root"`
	Nodes map[string]NodeSpec `yaml:"nodes"`
}

// TransportFactory supplies the transport for a destination address. A nil
// factory builds destinations without transports, which can still serve
// dry-run walks.
type TransportFactory func(address string) Transport

// BuildTree resolves a TreeSpec into a published routing tree topped by a
// ProxyNode. Nodes referenced from multiple parents are built once and
// shared. Unknown node names or types, invalid node configuration, and
// reference cycles all fail with ErrInvalidConfiguration; on failure no
// partial tree is returned.
func BuildTree(spec TreeSpec, newTransport TransportFactory) (*ProxyNode, error) {
	if spec.Root == "" {
		return nil, fmt.Errorf("%w: routing: no root node named", ErrInvalidConfiguration)
	}
	b := &treeBuilder{
		spec:         spec,
		newTransport: newTransport,
		built:        make(map[string]Node),
		building:     make(map[string]bool),
	}
	root, err := b.build(spec.Root)
	if err != nil {
		return nil, err
	}
	return NewProxyNode(root)
}

type treeBuilder struct {
	spec         TreeSpec
	newTransport TransportFactory
	built        map[string]Node
	building     map[string]bool // DFS in-progress marks for cycle detection
}

func (b *treeBuilder) build(name string) (Node, error) {
	if n, ok := b.built[name]; ok {
		return n, nil
	}
	if b.building[name] {
		return nil, fmt.Errorf("%w: routing: cycle through node %q", ErrInvalidConfiguration, name)
	}
	spec, ok := b.spec.Nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: routing: no node named %q (known: %v)",
			ErrInvalidConfiguration, name, b.knownNames())
	}
	b.building[name] = true
	defer delete(b.building, name)

	node, err := b.buildSpec(name, spec)
	if err != nil {
		return nil, err
	}
	b.built[name] = node
	return node, nil
}

func (b *treeBuilder) buildSpec(name string, spec NodeSpec) (Node, error) {
	switch spec.Type {
	case "modify-key":
		if spec.Target == "" {
			return nil, fmt.Errorf("%w: routing: node %q: modify-key needs a target", ErrInvalidConfiguration, name)
		}
		target, err := b.build(spec.Target)
		if err != nil {
			return nil, err
		}
		return NewKeyRewriteNode(KeyRewriteConfig{
			Target:           target,
			SetRoutingPrefix: spec.SetRoutingPrefix,
			EnsureKeyPrefix:  spec.EnsureKeyPrefix,
		})
	case "all-sync":
		if len(spec.Children) == 0 {
			return nil, fmt.Errorf("%w: routing: node %q: all-sync needs children", ErrInvalidConfiguration, name)
		}
		children := make([]Node, 0, len(spec.Children))
		for _, childName := range spec.Children {
			child, err := b.build(childName)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return NewAllSyncNode(children)
	case "destination":
		var transport Transport
		if b.newTransport != nil {
			transport = b.newTransport(spec.Address)
		}
		return NewDestinationNode(spec.Address, transport)
	default:
		return nil, fmt.Errorf("%w: routing: node %q: unknown type %q", ErrInvalidConfiguration, name, spec.Type)
	}
}

func (b *treeBuilder) knownNames() []string {
	names := make([]string, 0, len(b.spec.Nodes))
	for name := range b.spec.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

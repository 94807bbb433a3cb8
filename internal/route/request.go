package route

// Request is one routable request flowing through the node tree.
//
// The key splits into an optional routing prefix ("/region/cluster/") and
// the unprefixed application-level key. A Request is owned by its caller for
// the duration of a routing call; Clone produces an independently owned copy
// that nodes use when they need to mutate the key.
type Request struct {
	key             string
	routingPrefix   string
	keyWithoutRoute string
	recording       *Recording
}

// NewRequest builds a request for the given key. The key is validated
// against the wire protocol's key syntax rules.
func NewRequest(key string) (*Request, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	r := &Request{}
	r.setKey(key)
	return r, nil
}

// NewRecordingRequest builds a synthetic request that carries a Recording
// instead of a live connection. Leaf nodes that detect the recording report
// their destination instead of sending. The key is deliberately not
// validated: introspection must be able to replay the routing decision for
// any key an operator asks about, and key-rewriting nodes already handle
// invalid keys as error replies.
func NewRecordingRequest(rec *Recording, key string) *Request {
	r := &Request{recording: rec}
	r.setKey(key)
	return r
}

// Key returns the full key, routing prefix included.
func (r *Request) Key() string { return r.key }

// RoutingPrefix returns the request's routing prefix, or "" when the key
// carries none.
func (r *Request) RoutingPrefix() string { return r.routingPrefix }

// KeyWithoutRoute returns the application-level key with the routing prefix
// stripped.
func (r *Request) KeyWithoutRoute() string { return r.keyWithoutRoute }

// Recording returns the attached recording, or nil for live requests.
func (r *Request) Recording() *Recording { return r.recording }

// Clone returns an independently owned copy of the request. The copy shares
// the recording handle, so a cloned request still reports into the same
// dry-run walk.
func (r *Request) Clone() *Request {
	cp := *r
	return &cp
}

// SetKey replaces the key, revalidating it and re-deriving the routing
// prefix.
func (r *Request) SetKey(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	r.setKey(key)
	return nil
}

func (r *Request) setKey(key string) {
	r.key = key
	r.routingPrefix, r.keyWithoutRoute = splitRoutingPrefix(key)
}

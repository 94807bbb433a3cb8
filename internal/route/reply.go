package route

// Result is the outcome class of a routed request.
type Result int

const (
	// ResultFound indicates a successful reply carrying a value.
	ResultFound Result = iota
	// ResultNotFound indicates the key was not present downstream.
	ResultNotFound
	// ResultError indicates a recoverable per-request failure.
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultFound:
		return "found"
	case ResultNotFound:
		return "notfound"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is the value a routing call returns. Errors are ordinary reply
// values: a node that fails locally answers with an error reply instead of
// unwinding through concurrently routing siblings.
type Reply struct {
	Result Result
	Value  string
}

// FoundReply builds a successful reply carrying value.
func FoundReply(value string) Reply {
	return Reply{Result: ResultFound, Value: value}
}

// NotFoundReply builds a miss reply.
func NotFoundReply() Reply {
	return Reply{Result: ResultNotFound}
}

// ErrorReply builds a recoverable error reply with the given message.
func ErrorReply(msg string) Reply {
	return Reply{Result: ResultError, Value: msg}
}

// IsError reports whether the reply is an error reply.
func (r Reply) IsError() bool { return r.Result == ResultError }

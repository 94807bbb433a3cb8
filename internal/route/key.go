package route

import (
	"fmt"
	"strings"
)

// maxKeyLength is the longest key the wire protocol accepts, in bytes.
const maxKeyLength = 250

// ValidateKey checks a key, or a key fragment such as a configured prefix,
// against the wire protocol's key syntax rules: non-empty, at most 250
// bytes, no whitespace or control characters.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key longer than %d bytes", ErrInvalidKey, maxKeyLength)
	}
	for i := 0; i < len(key); i++ {
		if c := key[i]; c <= ' ' || c == 0x7f {
			return fmt.Errorf("%w: whitespace or control character at byte %d", ErrInvalidKey, i)
		}
	}
	return nil
}

// ParseRoutingPrefix validates a routing prefix of the form
// "/region/cluster/" and returns it in canonical form.
func ParseRoutingPrefix(s string) (string, error) {
	prefix, rest := splitRoutingPrefix(s)
	if prefix == "" || rest != "" {
		return "", fmt.Errorf("%w: routing prefix %q must have the form /region/cluster/", ErrInvalidConfiguration, s)
	}
	return prefix, nil
}

// splitRoutingPrefix splits a key into its routing prefix and the remaining
// application-level key. A key carries a prefix only when it starts with a
// full "/region/cluster/" segment with non-empty region and cluster;
// otherwise the whole key is treated as unprefixed.
func splitRoutingPrefix(key string) (prefix, rest string) {
	if !strings.HasPrefix(key, "/") {
		return "", key
	}
	second := strings.IndexByte(key[1:], '/')
	if second < 1 {
		return "", key
	}
	second++ // index into key
	third := strings.IndexByte(key[second+1:], '/')
	if third < 1 {
		return "", key
	}
	third += second + 1
	return key[:third+1], key[third+1:]
}

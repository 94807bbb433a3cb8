package route

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "simple", key: "widget:42"},
		{name: "prefixed", key: "/a/b/widget"},
		{name: "max length", key: strings.Repeat("k", 250)},
		{name: "empty", key: "", wantErr: true},
		{name: "too long", key: strings.Repeat("k", 251), wantErr: true},
		{name: "space", key: "foo bar", wantErr: true},
		{name: "control character", key: "foo\x01bar", wantErr: true},
		{name: "newline", key: "foo\nbar", wantErr: true},
		{name: "del", key: "foo\x7fbar", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidKey))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseRoutingPrefix(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "canonical", in: "/a/b/", want: "/a/b/"},
		{name: "longer names", in: "/east/cache-1/", want: "/east/cache-1/"},
		{name: "missing trailing slash", in: "/a/b", wantErr: true},
		{name: "missing leading slash", in: "a/b/", wantErr: true},
		{name: "empty region", in: "//b/", wantErr: true},
		{name: "empty cluster", in: "/a//", wantErr: true},
		{name: "trailing garbage", in: "/a/b/c", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRoutingPrefix(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestRoutingPrefixSplit(t *testing.T) {
	tests := []struct {
		key        string
		wantPrefix string
		wantRest   string
	}{
		{key: "/a/b/widget", wantPrefix: "/a/b/", wantRest: "widget"},
		{key: "/a/b/", wantPrefix: "/a/b/", wantRest: ""},
		{key: "widget", wantPrefix: "", wantRest: "widget"},
		{key: "/a/b", wantPrefix: "", wantRest: "/a/b"},
		{key: "/widget", wantPrefix: "", wantRest: "/widget"},
		{key: "/a/b/c/d", wantPrefix: "/a/b/", wantRest: "c/d"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rec := NewRecording()
			req := NewRecordingRequest(rec, tt.key)
			assert.Equal(t, tt.wantPrefix, req.RoutingPrefix())
			assert.Equal(t, tt.wantRest, req.KeyWithoutRoute())
			assert.Equal(t, tt.key, req.Key())
		})
	}
}

func TestNewRequestValidates(t *testing.T) {
	_, err := NewRequest("has space")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKey))

	req, err := NewRequest("/a/b/widget")
	require.NoError(t, err)
	assert.Nil(t, req.Recording())
}

func TestRequestCloneAndSetKey(t *testing.T) {
	req := mustRequest("/a/b/widget")
	clone := req.Clone()
	require.NoError(t, clone.SetKey("/c/d/other"))

	// The original is untouched by mutations of the clone.
	assert.Equal(t, "/a/b/widget", req.Key())
	assert.Equal(t, "/c/d/", clone.RoutingPrefix())
	assert.Equal(t, "other", clone.KeyWithoutRoute())

	err := clone.SetKey("bad key")
	require.Error(t, err)
	// Failed SetKey leaves the previous key in place.
	assert.Equal(t, "/c/d/other", clone.Key())
}

func TestCloneSharesRecording(t *testing.T) {
	rec := NewRecording()
	req := NewRecordingRequest(rec, "widget")
	clone := req.Clone()
	assert.Same(t, rec, clone.Recording())
}

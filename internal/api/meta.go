package api

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ServerMeta is the backend's self-description.
type ServerMeta struct {
	Version          string `json:"version"`
	MinClientVersion string `json:"min_client_version"`
}

// GetServerMeta fetches the backend's version metadata.
func (c *Client) GetServerMeta(ctx context.Context) (*ServerMeta, error) {
	var meta ServerMeta
	if err := c.getJSON(ctx, "/api/meta", &meta); err != nil {
		return nil, fmt.Errorf("fetch server meta: %w", err)
	}
	return &meta, nil
}

// ClientSupported reports whether a client at version is at or above
// the backend's minimum. Dev builds and servers that state no minimum
// are always accepted.
func (m *ServerMeta) ClientSupported(version string) bool {
	if m.MinClientVersion == "" || version == "" || version == "(devel)" {
		return true
	}
	return semver.Compare(canonical(version), canonical(m.MinClientVersion)) >= 0
}

// canonical normalizes a version string to the "vMAJOR.MINOR.PATCH"
// form x/mod/semver expects.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

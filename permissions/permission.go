// Package permissions holds the role table for every /v1 route, keyed by chi route pattern and method.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles admitted on one route. Skip opens the route to anonymous callers.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + strings.TrimSuffix(path, "/")
}

// Parse decodes a role table and rejects duplicate routes.
func Parse(data []byte) (*PermissionData, error) {
	var table PermissionData
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	table.index = make(map[string]Permission, len(table.Endpoints))

	for _, endpoint := range table.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := table.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		table.index[key] = endpoint
	}

	return &table, nil
}

// FindPermissions matches a chi route pattern. A trailing slash is ignored on both sides.
// Unknown routes yield the zero Permission, which requires a token but no specific role.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(method, path)]
}

// Get loads the embedded table. It returns nil when the table is unusable, which makes RBAC deny everything.
func Get() *PermissionData {
	table, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("Loaded embedded permissions")

	return table
}

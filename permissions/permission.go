package permissions

import (
	_ "embed"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one routing-table entry. Path holds the chi route
// pattern, so lookups must use the matched pattern rather than the raw
// request path.
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

func lookupKey(path, method string) string {
	return method + " " + path
}

// FindPermissions returns the entry for the given route pattern and
// method, or a zero Permission when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[lookupKey(path, method)]
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))
	for _, endpoint := range permissions.Endpoints {
		permissions.index[lookupKey(endpoint.Path, endpoint.Method)] = endpoint
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}

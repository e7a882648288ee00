package v1

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/hubreach/internal/domain"
)

// hubFromPath converts the {hubID} path segment. Unknown hubs are reported as
// missing resources.
func hubFromPath(id int) (domain.HubID, error) {
	hub := domain.HubID(id)
	if !hub.Valid() {
		return 0, huma.Error404NotFound("hub not found")
	}
	return hub, nil
}

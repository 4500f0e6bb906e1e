// Package module is the contract every API module satisfies and the
// registry the composition root resolves cross module ports through
package module

import (
	phttp "rolegate/internal/platform/net/http"
)

// Module is a mountable unit of the API
type Module interface {
	Name() string
	// Ports is the bundle other modules may depend on, nil when none
	Ports() any
	MountRoutes(r phttp.Router)
}

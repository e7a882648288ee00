package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/gosuda/hubreach/internal/api/v1"
)

func registerPublicRoutes(api huma.API, svcs Services) {
	v1.RegisterLeadRoutes(api, svcs.Subscribers)
}

func registerAPIRoutes(api huma.API, svcs Services) {
	v1.RegisterListRoutes(api, svcs.Subscribers)
	v1.RegisterSubscriberRoutes(api, svcs.Subscribers)
	v1.RegisterOnboardingRoutes(api, svcs.Onboarding)
}

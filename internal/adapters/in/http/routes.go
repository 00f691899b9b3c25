package http

import (
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

// RegisterHandlers wires every route. Per route the order is: authenticate,
// check the role, validate against the OpenAPI document, handle.
func RegisterHandlers(e *echo.Echo, s *Server, verifier TokenVerifier, doc *openapi3.T) {
	authn := Authenticate(verifier)
	validate := ValidateRequests(doc)
	admins := RequireRoles(kernel.RoleAdmin, kernel.RoleSuperAdmin)
	users := RequireRoles(kernel.RoleUser)
	riders := RequireRoles(kernel.RoleRider)

	api := e.Group("/api/v1")

	api.POST("/auth/login", s.Login, validate)
	api.POST("/auth/refresh-token", s.RefreshToken, validate)
	api.POST("/auth/logout", s.Logout)
	api.POST("/auth/reset-password", s.ResetPassword, authn, validate)

	api.GET("/users/all-users", s.ListUsers, authn, admins, validate)
	api.PATCH("/users/:id", s.UpdateUser, authn, validate)

	api.POST("/users/register", s.RegisterUser, AuthenticateOptional(verifier), validate)
	api.POST("/users/addresses", s.AddUserAddresses, authn, users, validate)

	api.POST("/parcels", s.CreateParcel, authn, users, validate)
	api.PATCH("/parcels/:id", s.UpdateParcel, authn, validate)
	api.GET("/parcels/track/:trackingId", s.TrackParcel, authn, validate)
	api.GET("/parcels/sent/me", s.ListSentParcels, authn, users, validate)
	api.GET("/parcels/received/me", s.ListIncomingParcels, authn, users, validate)
	api.GET("/parcels/rider/pickup/me", s.ListPickupParcels, authn, riders, validate)
	api.GET("/parcels/rider/delivery/me", s.ListDeliveryParcels, authn, riders, validate)

	api.GET("/hubs", s.ListHubs, authn, admins, validate)
	api.POST("/hubs", s.CreateHub, authn, admins, validate)
	api.PATCH("/hubs/:id", s.UpdateHub, authn, admins, validate)
	api.GET("/hubs/:id/riders", s.GetHubRiders, authn, admins, validate)

	api.GET("/fee-configs", s.ListFeeConfigs, authn, admins, validate)
	api.POST("/fee-configs", s.CreateFeeConfig, authn, admins, validate)

	e.GET("/ws/parcels/:trackingId", s.WatchParcel, AuthenticateStream(verifier))
}

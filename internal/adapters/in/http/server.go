package http

import (
	"context"
	"errors"
	"net/http"

	"parcelhub/internal/adapters/in/http/auth"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UseCase is the shape shared by every command and query handler.
type UseCase[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Command is a use case that only reports failure.
type Command[In any] interface {
	Handle(ctx context.Context, in In) error
}

type LoginStrategy interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (auth.Session, error)
}

// TrackingStream upgrades a request into a live feed of one parcel's events.
type TrackingStream interface {
	Serve(w http.ResponseWriter, r *http.Request, trackingID string) error
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateParcel     UseCase[commands.CreateParcelCommand, *parcel.Parcel]
	UpdateParcel     UseCase[commands.UpdateParcelCommand, *parcel.Parcel]
	TrackParcel      UseCase[queries.TrackParcelQuery, *parcel.Parcel]
	ListParcels      UseCase[queries.ListParcelsQuery, queries.ListParcelsQueryResponse]
	CreateUser       UseCase[commands.CreateUserCommand, *user.User]
	AddUserAddresses UseCase[commands.AddUserAddressesCommand, *user.User]
	UpdateUser       UseCase[commands.UpdateUserCommand, *user.User]
	ListUsers        UseCase[queries.ListUsersQuery, queries.ListUsersQueryResponse]
	ResetPassword    Command[commands.ResetPasswordCommand]
	CreateHub        UseCase[commands.CreateHubCommand, *hub.Hub]
	UpdateHub        UseCase[commands.UpdateHubCommand, *hub.Hub]
	ListHubs         UseCase[queries.ListHubsQuery, queries.ListHubsQueryResponse]
	GetHubRiders     UseCase[queries.GetHubRidersQuery, []queries.RiderView]
	CreateFeeConfig  UseCase[commands.CreateFeeConfigCommand, *fee.FeeConfig]
	ListFeeConfigs   UseCase[queries.ListFeeConfigsQuery, []queries.FeeConfigView]
}

// Server adapts HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
	login    LoginStrategy
	tracking TrackingStream
	cookies  CookieConfig
	logger   *zap.Logger
}

func NewServer(handlers Handlers, login LoginStrategy, tracking TrackingStream, cookies CookieConfig, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		login:    login,
		tracking: tracking,
		cookies:  cookies,
		logger:   logger,
	}
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	session, err := s.login.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	s.cookies.setSession(ctx, session)
	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "User logged in successfully", Data: toLoginResponse(session)})
}

// RefreshToken handles POST /api/v1/auth/refresh-token. The cookie wins over
// the body.
func (s *Server) RefreshToken(ctx echo.Context) error {
	token := cookieValue(ctx, refreshTokenCookie)
	if token == "" {
		var req RefreshTokenRequest
		if err := bind(ctx, &req); err != nil {
			return err
		}
		token = req.RefreshToken
	}

	session, err := s.login.Refresh(ctx.Request().Context(), token)
	if err != nil {
		return err
	}

	s.cookies.setSession(ctx, session)
	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "New access token generated successfully", Data: toLoginResponse(session)})
}

// Logout handles POST /api/v1/auth/logout.
func (s *Server) Logout(ctx echo.Context) error {
	s.cookies.clearSession(ctx)
	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "User logged out successfully"})
}

// ResetPassword handles POST /api/v1/auth/reset-password.
func (s *Server) ResetPassword(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req ResetPasswordRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	cmd, err := commands.NewResetPasswordCommand(actor, req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}

	if err = s.handlers.ResetPassword.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Password reset successfully"})
}

// RegisterUser handles POST /api/v1/users/register. The token is optional.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	reg, err := req.registration()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateUserCommand(optionalActor(ctx), reg)
	if err != nil {
		return err
	}

	u, err := s.handlers.CreateUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Envelope{Success: true, Message: "User created successfully", Data: toUserDTO(u)})
}

// AddUserAddresses handles POST /api/v1/users/addresses.
func (s *Server) AddUserAddresses(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req AddAddressesRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	batch, err := req.batch()
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddUserAddressesCommand(actor, batch)
	if err != nil {
		return err
	}

	u, err := s.handlers.AddUserAddresses.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Address added successfully", Data: toUserDTO(u)})
}

// ListUsers handles GET /api/v1/users/all-users.
func (s *Server) ListUsers(ctx echo.Context) error {
	search, searchErr := queryString(ctx, "searchTerm")
	role, roleErr := queryString(ctx, "role")
	page, pageErr := queryInt(ctx, "page")
	limit, limitErr := queryInt(ctx, "limit")
	if err := errors.Join(searchErr, roleErr, pageErr, limitErr); err != nil {
		return err
	}

	query, err := queries.NewListUsersQuery(search, role, page, limit)
	if err != nil {
		return err
	}

	res, err := s.handlers.ListUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	users := make([]UserDTO, 0, len(res.Data))
	for _, v := range res.Data {
		users = append(users, fromUserView(v))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "All users retrieved successfully", Data: users, Meta: toMeta(res.Meta)})
}

// UpdateUser handles PATCH /api/v1/users/{id}.
func (s *Server) UpdateUser(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	userID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	changes, err := req.changes()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateUserCommand(actor, userID, changes)
	if err != nil {
		return err
	}

	u, err := s.handlers.UpdateUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "User updated successfully", Data: toUserDTO(u)})
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req CreateParcelRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	parcelReq, err := req.parcelRequest()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateParcelCommand(actor, parcelReq)
	if err != nil {
		return err
	}

	p, err := s.handlers.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Envelope{Success: true, Message: "Parcel requested successfully", Data: toParcelDTO(p)})
}

// UpdateParcel handles PATCH /api/v1/parcels/{id}.
func (s *Server) UpdateParcel(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req UpdateParcelRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	changes, err := req.changes()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateParcelCommand(actor, parcelID, changes)
	if err != nil {
		return err
	}

	p, err := s.handlers.UpdateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Parcel updated successfully", Data: toParcelDTO(p)})
}

// TrackParcel handles GET /api/v1/parcels/track/{trackingId}.
func (s *Server) TrackParcel(ctx echo.Context) error {
	p, err := s.trackedParcel(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Parcel tracking done successfully", Data: toParcelDTO(p)})
}

// WatchParcel handles GET /ws/parcels/{trackingId}. Access is checked the
// same way as for tracking before the connection is upgraded.
func (s *Server) WatchParcel(ctx echo.Context) error {
	p, err := s.trackedParcel(ctx)
	if err != nil {
		return err
	}

	if err = s.tracking.Serve(ctx.Response(), ctx.Request(), p.TrackingID().String()); err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err), zap.String("tracking_id", p.TrackingID().String()))
	}
	return nil
}

func (s *Server) trackedParcel(ctx echo.Context) (*parcel.Parcel, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	trackingID, err := pathString(ctx, "trackingId")
	if err != nil {
		return nil, err
	}
	query, err := queries.NewTrackParcelQuery(actor, trackingID)
	if err != nil {
		return nil, err
	}

	return s.handlers.TrackParcel.Handle(ctx.Request().Context(), query)
}

// ListSentParcels handles GET /api/v1/parcels/sent/me.
func (s *Server) ListSentParcels(ctx echo.Context) error {
	return s.listParcels(ctx, queries.ScopeSent, "My sent parcels retrieved successfully")
}

// ListIncomingParcels handles GET /api/v1/parcels/received/me.
func (s *Server) ListIncomingParcels(ctx echo.Context) error {
	return s.listParcels(ctx, queries.ScopeIncoming, "My incoming parcels retrieved successfully")
}

// ListPickupParcels handles GET /api/v1/parcels/rider/pickup/me.
func (s *Server) ListPickupParcels(ctx echo.Context) error {
	return s.listParcels(ctx, queries.ScopePickup, "My pickup parcels retrieved successfully")
}

// ListDeliveryParcels handles GET /api/v1/parcels/rider/delivery/me.
func (s *Server) ListDeliveryParcels(ctx echo.Context) error {
	return s.listParcels(ctx, queries.ScopeDelivery, "My delivery parcels retrieved successfully")
}

func (s *Server) listParcels(ctx echo.Context, scope queries.Scope, message string) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	opts, err := listOptions(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListParcelsQuery(actor, scope, opts)
	if err != nil {
		return err
	}

	res, err := s.handlers.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	data := make([]map[string]any, 0, len(res.Data))
	for _, v := range res.Data {
		data = append(data, toParcelSummary(v, res.Fields))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: toMeta(res.Meta)})
}

func listOptions(ctx echo.Context) (queries.ListOptions, error) {
	search, searchErr := queryString(ctx, "searchTerm")
	status, statusErr := queryString(ctx, "status")
	priority, priorityErr := queryString(ctx, "priority")
	sort, sortErr := queryString(ctx, "sort")
	fields, fieldsErr := queryList(ctx, "fields")
	page, pageErr := queryInt(ctx, "page")
	limit, limitErr := queryInt(ctx, "limit")

	if err := errors.Join(searchErr, statusErr, priorityErr, sortErr, fieldsErr, pageErr, limitErr); err != nil {
		return queries.ListOptions{}, err
	}

	return queries.ListOptions{
		Search:   search,
		Status:   status,
		Priority: priority,
		Sort:     sort,
		Fields:   fields,
		Page:     page,
		Limit:    limit,
	}, nil
}

// CreateHub handles POST /api/v1/hubs.
func (s *Server) CreateHub(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req CreateHubRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateHubCommand(actor, req.Name, req.Location, req.ContactNumber, req.CoveredArea)
	if err != nil {
		return err
	}

	h, err := s.handlers.CreateHub.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Envelope{Success: true, Message: "Hub created successfully", Data: toHubDTO(h)})
}

// UpdateHub handles PATCH /api/v1/hubs/{id}.
func (s *Server) UpdateHub(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	hubID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req UpdateHubRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateHubCommand(actor, hubID, req.changes())
	if err != nil {
		return err
	}

	h, err := s.handlers.UpdateHub.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Hub updated successfully", Data: toHubDTO(h)})
}

// ListHubs handles GET /api/v1/hubs.
func (s *Server) ListHubs(ctx echo.Context) error {
	search, searchErr := queryString(ctx, "searchTerm")
	page, pageErr := queryInt(ctx, "page")
	limit, limitErr := queryInt(ctx, "limit")
	if err := errors.Join(searchErr, pageErr, limitErr); err != nil {
		return err
	}

	query, err := queries.NewListHubsQuery(search, page, limit)
	if err != nil {
		return err
	}

	res, err := s.handlers.ListHubs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	hubs := make([]HubDTO, 0, len(res.Data))
	for _, v := range res.Data {
		hubs = append(hubs, fromHubView(v))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Hubs retrieved successfully", Data: hubs, Meta: toMeta(res.Meta)})
}

// GetHubRiders handles GET /api/v1/hubs/{id}/riders.
func (s *Server) GetHubRiders(ctx echo.Context) error {
	hubID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetHubRidersQuery(hubID)
	if err != nil {
		return err
	}

	riders, err := s.handlers.GetHubRiders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	data := make([]RiderDTO, 0, len(riders))
	for _, v := range riders {
		data = append(data, fromRiderView(v))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Hub riders retrieved successfully", Data: data})
}

// CreateFeeConfig handles POST /api/v1/fee-configs.
func (s *Server) CreateFeeConfig(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req CreateFeeConfigRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateFeeConfigCommand(actor, fee.ParcelType(req.ParcelType), fee.Type(req.FeeType), req.BaseFee, req.WeightRate)
	if err != nil {
		return err
	}

	c, err := s.handlers.CreateFeeConfig.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Envelope{Success: true, Message: "Fee config created successfully", Data: toFeeConfigDTO(c)})
}

// ListFeeConfigs handles GET /api/v1/fee-configs.
func (s *Server) ListFeeConfigs(ctx echo.Context) error {
	configs, err := s.handlers.ListFeeConfigs.Handle(ctx.Request().Context(), queries.NewListFeeConfigsQuery())
	if err != nil {
		return err
	}

	data := make([]FeeConfigDTO, 0, len(configs))
	for _, v := range configs {
		data = append(data, fromFeeConfigView(v))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "Fee configs retrieved successfully", Data: data})
}

func bind(ctx echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

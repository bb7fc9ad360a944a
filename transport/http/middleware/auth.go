package middleware

import (
	"context"
	"errors"
	"net/http"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/permissions"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/transport/http/response"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SkipAuthKey marks a request already authenticated by the internal API key.
type SkipAuthKey string

const skipAuth SkipAuthKey = "skip"

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole is the chain mounted on /v1: APIKey, then Auth, then RBAC.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuth).(bool)

	return skip
}

// public reports whether the matched route is open to anonymous callers.
func (m *authRoleImpl) public(request *http.Request) bool {
	if m.permission == nil {
		return false
	}

	return m.permission.Skip || m.permission.FindPermissions(routePattern(request), request.Method).Skip
}

// Auth resolves the bearer token into the caller identity carried on the context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		if skipped(ctx) || m.public(request) {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       routePattern(request),
			"http.method":     request.Method,
		})

		claims, err := m.authenticate(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) authenticate(header string) (*jwt.Claims, error) {
	if header == "" {
		return nil, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(token)

	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return nil, failure.Unauthorized("Invalid token claims")
	case err != nil:
		return nil, failure.Unauthorized("Invalid token")
	}

	if claims.Role == "" {
		log.Warn().Str("user_id", claims.UserID).Msg("Token carries no role")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	return claims, nil
}

// RBAC admits the caller when its role is listed for the matched route. Routes without a role list
// only need a valid token.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		if skipped(ctx) || m.public(request) {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.permission == nil {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		allowed := m.permission.FindPermissions(routePattern(request), request.Method).Permissions
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if len(allowed) > 0 && !slices.Contains(allowed, role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": allowed,
			})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers presenting the shared key bypass token checks. A wrong key is rejected
// rather than falling back to bearer auth.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		if m.cfg.App.APIKey == "" || key != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		scope.SetAttribute("http.source", "internal")

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuth, true)))
	})
}

// routePattern resolves the chi pattern the request will match, such as /v1/bookings/{id}/status.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

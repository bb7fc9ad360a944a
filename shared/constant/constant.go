package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleAdmin        = "admin"
	RoleBarber       = "barber"
	RoleReceptionist = "receptionist"
	RoleCustomer     = "customer"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamSearch  = "search"
)

const (
	RequestParamID        = "id"
	RequestParamDay       = "day"
	RequestParamDate      = "date"
	RequestParamServiceID = "service_id"
	RequestParamStaffID   = "staff_id"
	RequestParamStatus    = "status"
	RequestParamActive    = "active"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	MaxValueLimit       = 100
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat    = time.RFC3339
	DayFormat     = "2006-01-02"
	MinutesPerDay = 24 * 60
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRateLimitReset     = "X-RateLimit-Reset"
	RequestHeaderRetryAfter         = "Retry-After"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	RequestMaxMemory = 10 << 20 // 10 MB
	FormFilePhoto    = "photo"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)

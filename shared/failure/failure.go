package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Reason is a stable machine-readable tag clients can branch on.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

const (
	ReasonValidation                 = "validation"
	ReasonInvalidInterval            = "invalid_interval"
	ReasonStaffNotFound              = "staff_not_found"
	ReasonServiceNotFound            = "service_not_found"
	ReasonReservationNotFound        = "reservation_not_found"
	ReasonStaffInactive              = "staff_inactive"
	ReasonServiceInactive            = "service_inactive"
	ReasonStaffNotAssignedToService  = "staff_not_assigned_to_service"
	ReasonSlotNoLongerAvailable      = "slot_no_longer_available"
	ReasonForbidden                  = "forbidden"
	ReasonAlreadyTerminal            = "already_terminal"
	ReasonInvalidTransition          = "invalid_transition"
	ReasonUnauthorized               = "unauthorized"
	ReasonInternal                   = "internal"
	ReasonUnimplemented              = "unimplemented"
	ReasonPaymentTransitionForbidden = "payment_transition_forbidden"
)

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Reason: ReasonForbidden}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource", Reason: ReasonForbidden}
var SlotNoLongerAvailable = &Failure{Code: http.StatusConflict, Message: "the requested slot is no longer available", Reason: ReasonSlotNoLongerAvailable}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Reason:  ReasonValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonValidation,
	}
}

// InvalidInterval returns a validation Failure for a malformed or unbookable time window.
func InvalidInterval(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonInvalidInterval,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
		Reason:  ReasonUnauthorized,
	}
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
		Reason:  ReasonUnimplemented,
	}
}

// NotFoundWithReason returns a not found Failure tagged with a specific reason.
func NotFoundWithReason(msg, reason string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
		Reason:  reason,
	}
}

// Inactive returns a new Failure for an entity that exists but is deactivated.
func Inactive(msg, reason string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Reason:  reason,
	}
}

func Forbidden(msg string) error {
	return ForbiddenWithReason(msg, ReasonForbidden)
}

// ForbiddenWithReason returns a forbidden Failure tagged with a specific reason.
func ForbiddenWithReason(msg, reason string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Reason:  reason,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason tag of an error interface, or ReasonInternal when it carries none.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Reason != "" {
		return fail.Reason
	}

	return ReasonInternal
}

// IsConflict reports whether err means the chosen slot was taken and availability must be re-fetched.
func IsConflict(err error) bool {
	return GetCode(err) == http.StatusConflict
}

package model

import (
	"context"
	"fmt"
	"salon/shared/constant"
	"salon/shared/failure"
	"slices"
)

// Actor is the authenticated caller changing a reservation.
type Actor struct {
	UserID string
	Role   string
}

// ActorFromContext reads the actor placed in the request context by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{UserID: userID, Role: role}
}

var roles = []string{constant.RoleAdmin, constant.RoleReceptionist, constant.RoleBarber, constant.RoleCustomer}

func KnownRole(role string) bool {
	return slices.Contains(roles, role)
}

// IsStaffRole reports whether role works at the salon, as opposed to booking there.
func IsStaffRole(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleReceptionist || role == constant.RoleBarber
}

// statusPermissions lists who may move a confirmed reservation into each terminal status.
var statusPermissions = map[Status][]string{
	StatusCancelled: {constant.RoleAdmin, constant.RoleReceptionist, constant.RoleBarber, constant.RoleCustomer},
	StatusCompleted: {constant.RoleAdmin, constant.RoleReceptionist, constant.RoleBarber},
	StatusNoShow:    {constant.RoleAdmin, constant.RoleReceptionist, constant.RoleBarber},
}

var paymentPermissions = []string{constant.RoleAdmin, constant.RoleReceptionist}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentRefunded},
	PaymentPaid:    {PaymentRefunded},
}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}

	return false
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}

	return false
}

// CheckTransition decides whether actor may move r to target.
func CheckTransition(r Reservation, target Status, actor Actor) error {
	if !target.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown reservation status %q", target)) //nolint:wrapcheck
	}

	if !KnownRole(actor.Role) {
		return failure.Forbidden(fmt.Sprintf("role %q may not change reservations", actor.Role)) //nolint:wrapcheck
	}

	if r.Status.IsTerminal() {
		return failure.ForbiddenWithReason(fmt.Sprintf("reservation is already %s", r.Status), failure.ReasonAlreadyTerminal) //nolint:wrapcheck
	}

	allowed, ok := statusPermissions[target]
	if !ok {
		return failure.ForbiddenWithReason(fmt.Sprintf("cannot move a reservation from %s to %s", r.Status, target), failure.ReasonInvalidTransition) //nolint:wrapcheck
	}

	if !slices.Contains(allowed, actor.Role) {
		return failure.Forbidden(fmt.Sprintf("role %s may not mark a reservation %s", actor.Role, target)) //nolint:wrapcheck
	}

	if actor.Role == constant.RoleCustomer && actor.UserID != r.CustomerID {
		return failure.Forbidden("customers may only cancel their own reservations") //nolint:wrapcheck
	}

	return nil
}

// CheckPaymentTransition decides whether actor may move the payment status of r to target.
func CheckPaymentTransition(r Reservation, target PaymentStatus, actor Actor) error {
	if !target.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown payment status %q", target)) //nolint:wrapcheck
	}

	if !slices.Contains(paymentPermissions, actor.Role) {
		return failure.Forbidden(fmt.Sprintf("role %q may not change payments", actor.Role)) //nolint:wrapcheck
	}

	if !slices.Contains(paymentTransitions[r.PaymentStatus], target) {
		return failure.ForbiddenWithReason( //nolint:wrapcheck
			fmt.Sprintf("cannot move payment from %s to %s", r.PaymentStatus, target),
			failure.ReasonPaymentTransitionForbidden,
		)
	}

	return nil
}

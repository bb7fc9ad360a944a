package model_test

import (
	"context"
	"salon/internal/domains/reservation/model"
	"salon/shared/constant"
	"salon/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	confirmed := model.Reservation{ID: "r-1", CustomerID: "cust-1", Status: model.StatusConfirmed}

	admin := model.Actor{UserID: "adm", Role: constant.RoleAdmin}
	barber := model.Actor{UserID: "bar", Role: constant.RoleBarber}
	owner := model.Actor{UserID: "cust-1", Role: constant.RoleCustomer}
	stranger := model.Actor{UserID: "cust-2", Role: constant.RoleCustomer}

	tests := []struct {
		name       string
		current    model.Status
		target     model.Status
		actor      model.Actor
		wantReason string
	}{
		{name: "admin completes", current: model.StatusConfirmed, target: model.StatusCompleted, actor: admin},
		{name: "barber marks no show", current: model.StatusConfirmed, target: model.StatusNoShow, actor: barber},
		{name: "receptionist cancels", current: model.StatusConfirmed, target: model.StatusCancelled, actor: model.Actor{Role: constant.RoleReceptionist}},
		{name: "customer cancels own", current: model.StatusConfirmed, target: model.StatusCancelled, actor: owner},
		{name: "customer cancels someone else's", current: model.StatusConfirmed, target: model.StatusCancelled, actor: stranger, wantReason: failure.ReasonForbidden},
		{name: "customer cannot complete", current: model.StatusConfirmed, target: model.StatusCompleted, actor: owner, wantReason: failure.ReasonForbidden},
		{name: "customer cannot mark no show", current: model.StatusConfirmed, target: model.StatusNoShow, actor: owner, wantReason: failure.ReasonForbidden},
		{name: "unknown role", current: model.StatusConfirmed, target: model.StatusCancelled, actor: model.Actor{Role: "janitor"}, wantReason: failure.ReasonForbidden},
		{name: "empty role", current: model.StatusConfirmed, target: model.StatusCancelled, actor: model.Actor{}, wantReason: failure.ReasonForbidden},
		{name: "unknown target", current: model.StatusConfirmed, target: "rescheduled", actor: admin, wantReason: failure.ReasonValidation},
		{name: "back to confirmed", current: model.StatusConfirmed, target: model.StatusConfirmed, actor: admin, wantReason: failure.ReasonInvalidTransition},
		{name: "cancel twice", current: model.StatusCancelled, target: model.StatusCancelled, actor: admin, wantReason: failure.ReasonAlreadyTerminal},
		{name: "complete after cancel", current: model.StatusCancelled, target: model.StatusCompleted, actor: admin, wantReason: failure.ReasonAlreadyTerminal},
		{name: "cancel after completion", current: model.StatusCompleted, target: model.StatusCancelled, actor: owner, wantReason: failure.ReasonAlreadyTerminal},
		{name: "revive no show", current: model.StatusNoShow, target: model.StatusConfirmed, actor: admin, wantReason: failure.ReasonAlreadyTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := confirmed
			r.Status = tt.current

			err := model.CheckTransition(r, tt.target, tt.actor)

			if tt.wantReason == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantReason, failure.GetReason(err))
		})
	}
}

func TestCheckPaymentTransition(t *testing.T) {
	receptionist := model.Actor{Role: constant.RoleReceptionist}

	tests := []struct {
		name       string
		current    model.PaymentStatus
		target     model.PaymentStatus
		actor      model.Actor
		wantReason string
	}{
		{name: "pending to paid", current: model.PaymentPending, target: model.PaymentPaid, actor: receptionist},
		{name: "pending to refunded", current: model.PaymentPending, target: model.PaymentRefunded, actor: receptionist},
		{name: "paid to refunded", current: model.PaymentPaid, target: model.PaymentRefunded, actor: model.Actor{Role: constant.RoleAdmin}},
		{name: "refunded to paid", current: model.PaymentRefunded, target: model.PaymentPaid, actor: receptionist, wantReason: failure.ReasonPaymentTransitionForbidden},
		{name: "paid to pending", current: model.PaymentPaid, target: model.PaymentPending, actor: receptionist, wantReason: failure.ReasonPaymentTransitionForbidden},
		{name: "paid twice", current: model.PaymentPaid, target: model.PaymentPaid, actor: receptionist, wantReason: failure.ReasonPaymentTransitionForbidden},
		{name: "barber may not take payment", current: model.PaymentPending, target: model.PaymentPaid, actor: model.Actor{Role: constant.RoleBarber}, wantReason: failure.ReasonForbidden},
		{name: "customer may not take payment", current: model.PaymentPending, target: model.PaymentPaid, actor: model.Actor{Role: constant.RoleCustomer}, wantReason: failure.ReasonForbidden},
		{name: "unknown status", current: model.PaymentPending, target: "void", actor: receptionist, wantReason: failure.ReasonValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.CheckPaymentTransition(model.Reservation{PaymentStatus: tt.current}, tt.target, tt.actor)

			if tt.wantReason == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantReason, failure.GetReason(err))
		})
	}
}

func TestActorFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleBarber)

	assert.Equal(t, model.Actor{UserID: "u-1", Role: constant.RoleBarber}, model.ActorFromContext(ctx))
	assert.Equal(t, model.Actor{}, model.ActorFromContext(context.Background()))
}

func TestStatus(t *testing.T) {
	assert.False(t, model.StatusConfirmed.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.True(t, model.StatusNoShow.IsTerminal())
	assert.False(t, model.Status("rescheduled").Valid())

	busy := model.Reservation{Status: model.StatusCompleted}
	assert.True(t, busy.IsBusy())

	busy.Status = model.StatusNoShow
	assert.False(t, busy.IsBusy())
}

func TestLockKey(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "staff-1|2026-03-02", model.LockKey("staff-1", date))
}

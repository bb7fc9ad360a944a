// Package response writes the JSON envelopes of the /v1 API: {"data": ...} on success,
// {"error": ..., "reason": ...} on failure and {"message": ...} for server state notices.
package response

import (
	"encoding/json"
	"net/http"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/logger"

	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error  *string `json:"error,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

const internalErrorMessage = "internal server error"

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	write(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends the failure code, message and reason of err. Server errors are logged and answered
// with a generic message so driver and broker details stay out of responses; 501 keeps its message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	reason := failure.GetReason(err)
	message := err.Error()

	if code >= http.StatusInternalServerError && code != http.StatusNotImplemented {
		log.Error().Err(err).Int("code", code).Msg("request failed")

		message = internalErrorMessage
	}

	write(writer, code, Error{Error: &message, Reason: &reason})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response body")
	}
}

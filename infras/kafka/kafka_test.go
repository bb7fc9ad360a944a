package kafka_test

import (
	"salon/infras/kafka"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusChanged struct {
	ReservationID string `json:"reservationId"`
	OldStatus     string `json:"oldStatus"`
	NewStatus     string `json:"newStatus"`
}

func TestMessageRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	message := kafka.Message{
		Key:     "res-1",
		Type:    "booking.reservation.status_changed.v1",
		Value:   statusChanged{ReservationID: "res-1", OldStatus: "confirmed", NewStatus: "cancelled"},
		Created: created,
	}

	encoded, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("res-1"), encoded.Key)
	assert.JSONEq(t, `{"reservationId":"res-1","oldStatus":"confirmed","newStatus":"cancelled"}`, string(encoded.Value))
	require.Len(t, encoded.Headers, 1)
	assert.Equal(t, kafka.HeaderEventType, encoded.Headers[0].Key)

	decoded, err := kafka.DecodeKafkaMessage[statusChanged](encoded)
	require.NoError(t, err)

	assert.Equal(t, "res-1", decoded.Key)
	assert.Equal(t, "booking.reservation.status_changed.v1", decoded.Type)
	assert.Equal(t, created, decoded.Created)
	assert.Equal(t, statusChanged{ReservationID: "res-1", OldStatus: "confirmed", NewStatus: "cancelled"}, decoded.Value)
}

func TestToKafkaMessage_UnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

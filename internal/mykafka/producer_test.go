package mykafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TopicVehicleEvents, "7", map[string]any{
		"type":      "vehicle_created",
		"vehicleID": 7,
	})
	require.NoError(t, err)
	assert.Equal(t, TopicVehicleEvents, msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)
	assert.False(t, msg.Time.IsZero())

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "vehicle_created", body["type"])
	assert.EqualValues(t, 7, body["vehicleID"])
}

func TestNewMessage_Unencodable(t *testing.T) {
	_, err := NewMessage(TopicAdminEvents, "1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestNewProducer_NoBrokers(t *testing.T) {
	p, err := NewProducer(nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.NoError(t, p.PublishEvent(context.Background(), TopicAdminEvents, "1", map[string]any{"type": "x"}))
	require.NoError(t, p.Close())
}

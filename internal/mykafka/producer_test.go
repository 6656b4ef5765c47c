package mykafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	p, err := NewProducer(nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestEncode(t *testing.T) {
	msg, err := encode("product_events", "7", map[string]any{"type": "product_created", "productID": 7})
	require.NoError(t, err)

	assert.Equal(t, "product_events", msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "product_created", event["type"])
	assert.EqualValues(t, 7, event["productID"])
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode("t", "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestNewProducer_Close(t *testing.T) {
	p, err := NewProducer([]string{"127.0.0.1:1"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Channels the booking workflow publishes on.
const (
	ChannelBookingConfirmed = "booking.confirmed"
	ChannelBookingRejected  = "booking.rejected"
)

// Message is the envelope written to a channel.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

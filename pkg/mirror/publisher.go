package mirror

import (
	"strconv"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robolink/serlink/pkg/wire"
)

// Sink is the publishing surface Publisher needs from a Queue.
type Sink interface {
	PubRetained(topic string, payload []byte) paho.Token
}

// Publisher republishes every device-reported frame to one topic per
// command name. Wire it as the host connection's FrameHandler.
type Publisher struct {
	Sink Sink
}

// NewPublisher creates a Publisher over sink.
func NewPublisher(sink Sink) *Publisher {
	return &Publisher{Sink: sink}
}

// HandleFrame implements host.FrameHandler.
func (p *Publisher) HandleFrame(f wire.Frame) {
	p.Sink.PubRetained(f.Name, []byte(strconv.Itoa(f.Value)))
}

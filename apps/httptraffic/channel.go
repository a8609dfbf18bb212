package httptraffic

import (
	"github.com/netsimlab/vns/sim"
)

// A Receiver consumes messages delivered by a Channel.
type Receiver interface {
	Receive(msg any)
}

// Channel connects a client and a server with a fixed one-way delay.
type Channel struct {
	scheduler sim.Scheduler
	delay     sim.VTimeInNano
}

// NewChannel creates a channel with the given one-way delay.
func NewChannel(scheduler sim.Scheduler, delay sim.VTimeInNano) *Channel {
	return &Channel{scheduler: scheduler, delay: delay}
}

// Delay returns the one-way delay of the channel.
func (c *Channel) Delay() sim.VTimeInNano {
	return c.delay
}

// Send delivers msg to dst after the channel delay.
func (c *Channel) Send(msg any, dst Receiver) {
	_, err := c.scheduler.ScheduleAfter(c.delay, func() {
		dst.Receive(msg)
	})
	if err != nil {
		panic(err)
	}
}

// mainObjectRequest asks the server for the main object of a new page.
type mainObjectRequest struct {
	client *Client
}

// embeddedObjectRequest asks the server for one embedded object.
type embeddedObjectRequest struct {
	client *Client
}

// objectKind tags a server response.
type objectKind int

const (
	kindMainObject objectKind = iota
	kindEmbeddedObject
)

// objectResponse carries one object back to the client.
type objectResponse struct {
	kind        objectKind
	sizeBytes   uint32
	numEmbedded uint32 // only meaningful for main objects
}

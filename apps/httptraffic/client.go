package httptraffic

import (
	"fmt"

	"github.com/netsimlab/vns/sim"
	"github.com/netsimlab/vns/tracing"
)

// clientState tracks where the client is in its browsing cycle.
type clientState int

const (
	clientIdle clientState = iota
	clientAwaitingMainObject
	clientParsing
	clientAwaitingEmbeddedObjects
	clientReading
)

// Client loads pages from a server: it requests a main object, parses it,
// fetches every embedded object the page references, reads the page, and
// starts over. Each full page load is reported as one tracing task.
type Client struct {
	sim.HookableBase

	name      string
	scheduler sim.Scheduler
	variables *Variables
	channel   *Channel
	server    *Server

	state             clientState
	remainingEmbedded uint32
	pageBudget        uint64
	currentTaskID     string

	// PagesLoaded and ObjectsReceived count completed pages and received
	// objects of any kind.
	PagesLoaded     uint64
	ObjectsReceived uint64
	BytesReceived   uint64
}

// NewClient creates a browsing client. The client stays idle until Start
// is called.
func NewClient(
	name string,
	scheduler sim.Scheduler,
	variables *Variables,
	channel *Channel,
	server *Server,
) *Client {
	return &Client{
		name:      name,
		scheduler: scheduler,
		variables: variables,
		channel:   channel,
		server:    server,
	}
}

// Name returns the name of the client.
func (c *Client) Name() string {
	return c.name
}

// WithPageBudget limits the client to loading n pages. Zero, the default,
// means no limit; the run is then bounded by the engine's stop time.
func (c *Client) WithPageBudget(n uint64) *Client {
	c.pageBudget = n
	return c
}

// Start schedules the first page request at the current virtual time.
func (c *Client) Start() {
	if c.state != clientIdle {
		panic("client already started")
	}

	_, err := c.scheduler.ScheduleAfter(0, c.requestPage)
	if err != nil {
		panic(err)
	}
}

func (c *Client) requestPage() {
	if c.pageBudget > 0 && c.PagesLoaded >= c.pageBudget {
		c.state = clientIdle
		return
	}

	c.state = clientAwaitingMainObject
	c.currentTaskID = fmt.Sprintf("%s.page.%d", c.name, c.PagesLoaded)

	tracing.StartTask(c.currentTaskID, "", c, "page_load", "load page", nil)

	c.channel.Send(mainObjectRequest{client: c}, c.server)
}

// Receive handles one object arriving from the server.
func (c *Client) Receive(msg any) {
	rsp, ok := msg.(objectResponse)
	if !ok {
		panic("unknown response type")
	}

	c.ObjectsReceived++
	c.BytesReceived += uint64(rsp.sizeBytes)

	switch rsp.kind {
	case kindMainObject:
		c.mustBeInState(clientAwaitingMainObject)
		c.parseMainObject(rsp)
	case kindEmbeddedObject:
		c.mustBeInState(clientAwaitingEmbeddedObjects)
		c.receiveEmbeddedObject()
	}
}

func (c *Client) parseMainObject(rsp objectResponse) {
	c.state = clientParsing
	c.remainingEmbedded = rsp.numEmbedded

	tracing.AddTaskStep(c.currentTaskID, c, "main object received")

	_, err := c.scheduler.ScheduleAfter(
		c.variables.ParsingTime(), c.finishParsing)
	if err != nil {
		panic(err)
	}
}

func (c *Client) finishParsing() {
	if c.remainingEmbedded == 0 {
		c.finishPage()
		return
	}

	c.state = clientAwaitingEmbeddedObjects
	for i := uint32(0); i < c.remainingEmbedded; i++ {
		c.channel.Send(embeddedObjectRequest{client: c}, c.server)
	}
}

func (c *Client) receiveEmbeddedObject() {
	c.remainingEmbedded--
	if c.remainingEmbedded == 0 {
		c.finishPage()
	}
}

func (c *Client) finishPage() {
	c.PagesLoaded++
	c.state = clientReading

	tracing.EndTask(c.currentTaskID, c)
	c.currentTaskID = ""

	_, err := c.scheduler.ScheduleAfter(
		c.variables.ReadingTime(), c.requestPage)
	if err != nil {
		panic(err)
	}
}

func (c *Client) mustBeInState(want clientState) {
	if c.state != want {
		panic(fmt.Sprintf("client %s in unexpected state %d", c.name,
			c.state))
	}
}

package httptraffic

import (
	"github.com/netsimlab/vns/sim"
)

// Server answers object requests. Main object responses announce how many
// embedded objects the page references.
type Server struct {
	sim.HookableBase

	name      string
	variables *Variables
	channel   *Channel

	// MainObjectsServed and EmbeddedObjectsServed count the responses
	// sent so far.
	MainObjectsServed     uint64
	EmbeddedObjectsServed uint64
}

// NewServer creates a server drawing object sizes from variables and
// responding over channel.
func NewServer(name string, variables *Variables, channel *Channel) *Server {
	return &Server{
		name:      name,
		variables: variables,
		channel:   channel,
	}
}

// Name returns the name of the server.
func (s *Server) Name() string {
	return s.name
}

// Receive handles one request from a client.
func (s *Server) Receive(msg any) {
	switch req := msg.(type) {
	case mainObjectRequest:
		s.MainObjectsServed++
		s.channel.Send(objectResponse{
			kind:        kindMainObject,
			sizeBytes:   s.variables.MainObjectSize(),
			numEmbedded: s.variables.NumEmbeddedObjects(),
		}, req.client)
	case embeddedObjectRequest:
		s.EmbeddedObjectsServed++
		s.channel.Send(objectResponse{
			kind:      kindEmbeddedObject,
			sizeBytes: s.variables.EmbeddedObjectSize(),
		}, req.client)
	default:
		panic("unknown request type")
	}
}

// Package simulation bundles the pieces that almost every experiment needs:
// an event engine, a data recorder, and an optional monitoring server.
package simulation

import (
	"fmt"

	"github.com/netsimlab/vns/datarecording"
	"github.com/netsimlab/vns/monitoring"
	"github.com/netsimlab/vns/sim"
)

// Simulation houses the shared infrastructure of one simulation run.
type Simulation struct {
	id string

	engine       *sim.Engine
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor

	models map[string]sim.Named
}

// ID returns the unique identifier of the simulation run.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the event engine that drives the simulation.
func (s *Simulation) GetEngine() *sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder of the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor of the simulation. It returns nil if
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterModel adds a model to the simulation so that it can be retrieved
// by name and inspected through the monitoring server.
func (s *Simulation) RegisterModel(model sim.Named) {
	name := model.Name()
	if name == "" {
		panic("model must have a name")
	}

	if _, ok := s.models[name]; ok {
		panic(fmt.Sprintf("model %s already registered", name))
	}

	s.models[name] = model

	if s.monitor != nil {
		s.monitor.RegisterModel(model)
	}
}

// GetModelByName retrieves a registered model. It panics if no model carries
// the given name.
func (s *Simulation) GetModelByName(name string) sim.Named {
	model, ok := s.models[name]
	if !ok {
		panic(fmt.Sprintf("model %s not found", name))
	}

	return model
}

// Terminate flushes and closes the simulation's supporting services. The
// simulation must not be used afterwards.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}

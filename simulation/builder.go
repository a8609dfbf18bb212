package simulation

import (
	"github.com/rs/xid"

	"github.com/netsimlab/vns/datarecording"
	"github.com/netsimlab/vns/monitoring"
	"github.com/netsimlab/vns/sim"
)

// Builder configures and creates simulations.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	openBrowser    bool
	outputFileName string
}

// MakeBuilder creates a Builder with default configurations.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithoutMonitoring disables the monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port of the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page in the default browser once the
// server is up.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithOutputFileName sets the name of the database file that records the
// simulation results. The default is a generated, run-unique name.
func (b Builder) WithOutputFileName(name string) Builder {
	b.outputFileName = name
	return b
}

// Build creates a simulation according to the configuration.
func (b Builder) Build() *Simulation {
	s := &Simulation{
		id:     xid.New().String(),
		models: make(map[string]sim.Named),
	}

	s.engine = sim.NewEngine()
	s.dataRecorder = datarecording.New(b.outputFileName)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort != 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}

		if b.openBrowser {
			s.monitor.WithBrowser()
		}

		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}

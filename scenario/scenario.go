// Package scenario loads experiment descriptions from YAML files and builds
// runnable simulations out of them.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netsimlab/vns/apps/httptraffic"
	"github.com/netsimlab/vns/sim"
	"github.com/netsimlab/vns/simulation"
)

// Scenario describes one experiment: how long to run, how the channel
// behaves, and how many clients browse.
type Scenario struct {
	// Name labels the run in the output database.
	Name string `yaml:"name"`

	// DurationSecs bounds the run in virtual seconds. Zero means the run
	// ends when no events remain.
	DurationSecs float64 `yaml:"duration_secs"`

	// Seed makes the run reproducible.
	Seed uint64 `yaml:"seed"`

	// ChannelDelayMs is the one-way client-server delay in milliseconds.
	ChannelDelayMs float64 `yaml:"channel_delay_ms"`

	// NumClients is the number of browsing clients.
	NumClients int `yaml:"num_clients"`

	// MeanParsingSecs and MeanReadingSecs override the think-time means.
	// Zero keeps the model defaults.
	MeanParsingSecs float64 `yaml:"mean_parsing_secs"`
	MeanReadingSecs float64 `yaml:"mean_reading_secs"`

	// PageBudget limits each client to that many pages. Zero means
	// unlimited.
	PageBudget uint64 `yaml:"page_budget"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the scenario for inconsistencies.
func (s *Scenario) Validate() error {
	if s.NumClients <= 0 {
		return fmt.Errorf("scenario must have at least one client, got %d",
			s.NumClients)
	}

	if s.ChannelDelayMs < 0 {
		return fmt.Errorf("channel delay must not be negative, got %f",
			s.ChannelDelayMs)
	}

	if s.DurationSecs < 0 {
		return fmt.Errorf("duration must not be negative, got %f",
			s.DurationSecs)
	}

	if s.MeanParsingSecs < 0 || s.MeanReadingSecs < 0 {
		return fmt.Errorf("think time means must not be negative")
	}

	if s.DurationSecs == 0 && s.PageBudget == 0 {
		return fmt.Errorf(
			"scenario needs a duration or a page budget to terminate")
	}

	return nil
}

// Build wires the scenario into the simulation: one client-server pair per
// configured client, all on a shared channel, plus the stop deadline. Each
// pair draws from its own random stream, so adding clients does not disturb
// the others. Build returns the clients so callers can inspect them after
// the run.
func (s *Scenario) Build(sm *simulation.Simulation) ([]*httptraffic.Client, error) {
	engine := sm.GetEngine()

	channel := httptraffic.NewChannel(engine,
		sim.Milliseconds(s.ChannelDelayMs))

	clients := make([]*httptraffic.Client, 0, s.NumClients)
	for i := 0; i < s.NumClients; i++ {
		variables := s.variables(s.Seed + uint64(i))

		server := httptraffic.NewServer(
			fmt.Sprintf("Server%d", i+1), variables, channel)
		client := httptraffic.NewClient(
			fmt.Sprintf("Client%d", i+1),
			engine, variables, channel, server).
			WithPageBudget(s.PageBudget)

		sm.RegisterModel(server)
		sm.RegisterModel(client)

		client.Start()
		clients = append(clients, client)
	}

	if s.DurationSecs > 0 {
		if err := engine.StopAt(sim.Seconds(s.DurationSecs)); err != nil {
			return nil, err
		}
	}

	return clients, nil
}

func (s *Scenario) variables(seed uint64) *httptraffic.Variables {
	v := httptraffic.NewVariables(seed)

	if s.MeanParsingSecs > 0 {
		v.WithMeanParsingTime(s.MeanParsingSecs)
	}
	if s.MeanReadingSecs > 0 {
		v.WithMeanReadingTime(s.MeanReadingSecs)
	}

	return v
}

// Command vns runs network simulation scenarios described in YAML files.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/netsimlab/vns/apps/httptraffic"
	"github.com/netsimlab/vns/scenario"
	"github.com/netsimlab/vns/sim"
	"github.com/netsimlab/vns/simulation"
	"github.com/netsimlab/vns/tracing"
)

var version = "dev"

var (
	flagConfig      string
	flagOutput      string
	flagMonitorPort int
	flagNoMonitor   bool
	flagOpenBrowser bool
	flagTrace       bool
	flagTraceCSV    string
	flagLogEvents   bool
)

var rootCmd = &cobra.Command{
	Use:   "vns",
	Short: "vns is a discrete-event network simulator",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A .env file can override defaults; missing is fine.
		_ = godotenv.Load()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scenario described by a YAML file",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runScenario()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of vns",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("vns", version)
	},
}

func init() {
	runCmd.Flags().StringVarP(&flagConfig, "config", "c", "scenario.yaml",
		"scenario file to run")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"name of the output database file")
	runCmd.Flags().IntVar(&flagMonitorPort, "monitor-port", 0,
		"port of the monitoring server, 0 picks a free port")
	runCmd.Flags().BoolVar(&flagNoMonitor, "no-monitor", false,
		"disable the monitoring server")
	runCmd.Flags().BoolVar(&flagOpenBrowser, "open", false,
		"open the monitoring page in the default browser")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false,
		"record page-load tasks in the output database")
	runCmd.Flags().StringVar(&flagTraceCSV, "trace-csv", "",
		"record page-load tasks in a CSV file with the given name")
	runCmd.Flags().BoolVar(&flagLogEvents, "log-events", false,
		"print every dispatched event to stdout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func runScenario() error {
	s, err := scenario.Load(flagConfig)
	if err != nil {
		return err
	}

	builder := simulation.MakeBuilder().
		WithMonitorPort(flagMonitorPort).
		WithOutputFileName(flagOutput)
	if flagNoMonitor {
		builder = builder.WithoutMonitoring()
	}
	if flagOpenBrowser {
		builder = builder.WithBrowser()
	}

	sm := builder.Build()
	defer sm.Terminate()

	clients, err := s.Build(sm)
	if err != nil {
		return err
	}

	if flagLogEvents {
		sm.GetEngine().AcceptHook(
			sim.NewEventLogger(log.New(os.Stdout, "", 0)))
	}

	if flagTrace {
		tracer := tracing.NewDBTracer(sm.GetEngine(), sm.GetDataRecorder())
		for _, client := range clients {
			tracing.CollectTrace(client, tracer)
		}
	}

	if flagTraceCSV != "" {
		tracer := tracing.NewCSVTracer(sm.GetEngine(),
			tracing.NewCSVTraceWriter(flagTraceCSV))
		for _, client := range clients {
			tracing.CollectTrace(client, tracer)
		}
	}

	if err := sm.GetEngine().Run(); err != nil {
		return err
	}

	reportResults(sm, clients)

	return nil
}

func reportResults(sm *simulation.Simulation, clients []*httptraffic.Client) {
	fmt.Printf("Simulated %s of virtual time\n", sm.GetEngine().Now())

	var pages, objects, bytes uint64
	for _, c := range clients {
		pages += c.PagesLoaded
		objects += c.ObjectsReceived
		bytes += c.BytesReceived
	}

	fmt.Printf("Pages loaded: %d, objects received: %d, bytes: %d\n",
		pages, objects, bytes)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

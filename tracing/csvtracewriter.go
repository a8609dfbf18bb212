package tracing

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/netsimlab/vns/sim"
)

// CSVTraceWriter stores completed tasks in a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	tasks      []Task
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing CSV file. It refuses to overwrite an existing
// file.
func (t *CSVTraceWriter) Init() {
	if t.path == "" {
		t.path = "vns_trace_" + xid.New().String()
	}

	filename := t.path + ".csv"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file, "ID, ParentID, Kind, What, Where, Start, End\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// Write buffers a completed task for writing.
func (t *CSVTraceWriter) Write(task Task) {
	t.tasks = append(t.tasks, task)
	if len(t.tasks) >= t.bufferSize {
		t.Flush()
	}
}

// CSVTracer stores completed tasks through a CSVTraceWriter, so traces can
// be inspected without an SQLite client.
type CSVTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	writer     *CSVTraceWriter

	tracingTasks map[string]Task
}

// NewCSVTracer creates a new CSVTracer. It initializes the writer, creating
// the output file.
func NewCSVTracer(
	timeTeller sim.TimeTeller,
	writer *CSVTraceWriter,
) *CSVTracer {
	writer.Init()

	return &CSVTracer{
		timeTeller:   timeTeller,
		writer:       writer,
		tracingTasks: make(map[string]Task),
	}
}

// StartTask marks the start of a task.
func (t *CSVTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task.StartTime = t.timeTeller.Now()
	t.tracingTasks[task.ID] = task
}

// StepTask marks a milestone of an in-flight task.
func (t *CSVTracer) StepTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	for _, step := range task.Steps {
		step.Time = t.timeTeller.Now()
		original.Steps = append(original.Steps, step)
	}

	t.tracingTasks[task.ID] = original
}

// EndTask marks the end of a task and records it.
func (t *CSVTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}
	delete(t.tracingTasks, task.ID)

	original.EndTime = t.timeTeller.Now()
	t.writer.Write(original)
}

// Flush forces the buffered tasks out to the file.
func (t *CSVTracer) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.writer.Flush()
}

// Flush writes all buffered tasks to the CSV file.
func (t *CSVTraceWriter) Flush() {
	for _, task := range t.tasks {
		fmt.Fprintf(t.file, "%s, %s, %s, %s, %s, %.9f, %.9f\n",
			task.ID,
			task.ParentID,
			task.Kind,
			task.What,
			task.Where,
			task.StartTime.ToSeconds(),
			task.EndTime.ToSeconds())
	}

	t.tasks = nil
}

package highspeed

import (
	"github.com/netsimlab/vns/sim"
)

// RetransmitFunc is called when a retransmission timeout expires for a
// sequence number.
type RetransmitFunc func(seq uint32)

// RTOManager arms one retransmission timer per outstanding transmission and
// cancels it when the matching acknowledgment arrives.
type RTOManager struct {
	scheduler  sim.Scheduler
	rto        sim.VTimeInNano
	retransmit RetransmitFunc

	pending map[uint32]sim.EventHandle
}

// NewRTOManager creates an RTOManager that schedules timeouts on the given
// scheduler. The retransmit function runs in the event loop when a timeout
// fires.
func NewRTOManager(
	scheduler sim.Scheduler,
	rto sim.VTimeInNano,
	retransmit RetransmitFunc,
) *RTOManager {
	return &RTOManager{
		scheduler:  scheduler,
		rto:        rto,
		retransmit: retransmit,
		pending:    make(map[uint32]sim.EventHandle),
	}
}

// Arm starts the retransmission timer for seq. Re-arming an already armed
// sequence number restarts its timer.
func (m *RTOManager) Arm(seq uint32) error {
	if handle, ok := m.pending[seq]; ok {
		m.scheduler.Cancel(handle)
	}

	handle, err := m.scheduler.ScheduleAfter(m.rto, func() {
		delete(m.pending, seq)
		m.retransmit(seq)
	})
	if err != nil {
		return err
	}

	m.pending[seq] = handle

	return nil
}

// Ack resolves the timer for seq. Acknowledging a sequence number with no
// armed timer is a no-op.
func (m *RTOManager) Ack(seq uint32) {
	handle, ok := m.pending[seq]
	if !ok {
		return
	}

	m.scheduler.Cancel(handle)
	delete(m.pending, seq)
}

// AckUpTo resolves the timers of every sequence number below seq,
// mirroring cumulative TCP acknowledgments.
func (m *RTOManager) AckUpTo(seq uint32) {
	for s, handle := range m.pending {
		if s < seq {
			m.scheduler.Cancel(handle)
			delete(m.pending, s)
		}
	}
}

// Outstanding returns the number of armed timers.
func (m *RTOManager) Outstanding() int {
	return len(m.pending)
}

package wifi

import (
	"errors"

	"github.com/iti/rngstream"

	"github.com/netsimlab/vns/sim"
)

// ErrReceiverBusy is returned by StartRx when a reception is already in
// progress.
var ErrReceiverBusy = errors.New("receiver busy")

// PhyState is the state of the receiver.
type PhyState int

// Receiver states.
const (
	PhyStateIdle PhyState = iota
	PhyStateRx
)

// Frame is one physical-layer transmission arriving at a receiver.
type Frame struct {
	Mode     Mode
	SNR      float64
	Bits     uint64
	Duration sim.VTimeInNano
}

// RxHandler consumes the outcome of a reception.
type RxHandler interface {
	RxOk(f Frame)
	RxError(f Frame)
}

// Phy is a receiver. It accepts one frame at a time, decides its fate by
// drawing against the frame's error probability, and reports the outcome to
// the handler once the frame's airtime has elapsed.
type Phy struct {
	name      string
	scheduler sim.Scheduler
	errorRate *ErrorRateModel
	rng       *rngstream.RngStream
	handler   RxHandler

	state      PhyState
	rxEnd      sim.EventHandle
	frameOk    bool
	frameInAir Frame
}

// NewPhy creates a receiver. The name seeds the random stream, so receptions
// replay identically across runs.
func NewPhy(name string, scheduler sim.Scheduler, handler RxHandler) *Phy {
	return &Phy{
		name:      name,
		scheduler: scheduler,
		errorRate: NewErrorRateModel(),
		rng:       rngstream.New(name),
		handler:   handler,
	}
}

// Name returns the name of the receiver.
func (p *Phy) Name() string {
	return p.name
}

// State returns the current receiver state.
func (p *Phy) State() PhyState {
	return p.state
}

// StartRx begins receiving a frame. The handler is notified when the
// frame's airtime has elapsed. StartRx fails if another reception is in
// progress.
func (p *Phy) StartRx(f Frame) error {
	if p.state != PhyStateIdle {
		return ErrReceiverBusy
	}

	successRate := p.errorRate.ChunkSuccessRate(f.Mode, f.SNR, f.Bits)
	ok := p.rng.RandU01() <= successRate

	handle, err := p.scheduler.ScheduleAfter(f.Duration, p.endRx)
	if err != nil {
		return err
	}

	p.state = PhyStateRx
	p.rxEnd = handle
	p.frameOk = ok
	p.frameInAir = f

	return nil
}

func (p *Phy) endRx() {
	f := p.frameInAir
	ok := p.frameOk

	p.state = PhyStateIdle
	p.rxEnd = sim.EventHandle{}

	if ok {
		p.handler.RxOk(f)
	} else {
		p.handler.RxError(f)
	}
}

// CancelRx aborts the reception in progress, if any. The handler is not
// notified.
func (p *Phy) CancelRx() {
	if p.state != PhyStateRx {
		return
	}

	p.scheduler.Cancel(p.rxEnd)
	p.state = PhyStateIdle
	p.rxEnd = sim.EventHandle{}
}

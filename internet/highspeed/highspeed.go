// Package highspeed implements the TCP HighSpeed congestion control
// algorithm (RFC 3649). HighSpeed behaves like standard TCP for small
// windows and grows more aggressively, with gentler back-off, once the
// window exceeds 38 segments.
package highspeed

// SocketState carries the congestion-related state of one TCP connection.
type SocketState struct {
	Cwnd        uint32 // congestion window, in bytes
	SsThresh    uint32 // slow start threshold, in bytes
	SegmentSize uint32 // MSS, in bytes
}

// CwndInSegments returns the congestion window expressed in full segments.
func (s *SocketState) CwndInSegments() uint32 {
	return s.Cwnd / s.SegmentSize
}

// HighSpeed accumulates ACK credit across calls to IncreaseWindow. Each
// connection needs its own instance.
type HighSpeed struct {
	ackCnt uint32
}

// NewHighSpeed creates a HighSpeed congestion control instance.
func NewHighSpeed() *HighSpeed {
	return &HighSpeed{}
}

type coefficientRow struct {
	cwnd uint32
	a    uint32
	b    float64
}

// Table 12 of RFC 3649. Rows are keyed by the largest window, in segments,
// to which the coefficients apply.
var coefficientTable = []coefficientRow{
	{38, 1, 0.50},
	{118, 2, 0.44},
	{221, 3, 0.41},
	{347, 4, 0.38},
	{495, 5, 0.37},
	{663, 6, 0.35},
	{851, 7, 0.34},
	{1058, 8, 0.33},
	{1284, 9, 0.32},
	{1529, 10, 0.31},
	{1793, 11, 0.30},
	{2076, 12, 0.29},
	{2378, 13, 0.28},
	{2699, 14, 0.28},
	{3039, 15, 0.27},
	{3399, 16, 0.27},
	{3778, 17, 0.26},
	{4177, 18, 0.26},
	{4596, 19, 0.25},
	{5036, 20, 0.25},
	{5497, 21, 0.24},
	{5979, 22, 0.24},
	{6483, 23, 0.23},
	{7009, 24, 0.23},
	{7558, 25, 0.22},
	{8130, 26, 0.22},
	{8726, 27, 0.22},
	{9346, 28, 0.21},
	{9991, 29, 0.21},
	{10661, 30, 0.21},
	{11358, 31, 0.20},
	{12082, 32, 0.20},
	{12834, 33, 0.20},
	{13614, 34, 0.19},
	{14424, 35, 0.19},
	{15265, 36, 0.19},
	{16137, 37, 0.19},
	{17042, 38, 0.18},
	{17981, 39, 0.18},
	{18955, 40, 0.18},
	{19965, 41, 0.17},
	{21013, 42, 0.17},
	{22101, 43, 0.17},
	{23230, 44, 0.17},
	{24402, 45, 0.16},
	{25618, 46, 0.16},
	{26881, 47, 0.16},
	{28193, 48, 0.16},
	{29557, 49, 0.15},
	{30975, 50, 0.15},
	{32450, 51, 0.15},
	{33986, 52, 0.15},
	{35586, 53, 0.14},
	{37253, 54, 0.14},
	{38992, 55, 0.14},
	{40808, 56, 0.14},
	{42707, 57, 0.13},
	{44694, 58, 0.13},
	{46776, 59, 0.13},
	{48961, 60, 0.13},
	{51258, 61, 0.13},
	{53677, 62, 0.12},
	{56230, 63, 0.12},
	{58932, 64, 0.12},
	{61799, 65, 0.12},
	{64851, 66, 0.11},
	{68113, 67, 0.11},
	{71617, 68, 0.11},
	{75401, 69, 0.10},
	{79517, 70, 0.10},
	{84035, 71, 0.10},
	{89053, 72, 0.10},
}

// TableLookupA returns the additive-increase coefficient a(w) for a window
// of w segments.
func TableLookupA(w uint32) uint32 {
	for _, row := range coefficientTable {
		if w <= row.cwnd {
			return row.a
		}
	}

	return coefficientTable[len(coefficientTable)-1].a
}

// TableLookupB returns the multiplicative-decrease coefficient b(w) for a
// window of w segments.
func TableLookupB(w uint32) float64 {
	for _, row := range coefficientTable {
		if w <= row.cwnd {
			return row.b
		}
	}

	return coefficientTable[len(coefficientTable)-1].b
}

// IncreaseWindow grows the congestion window in response to segmentsAcked
// newly acknowledged segments. Below the slow start threshold the window
// grows by one segment per ACK. In congestion avoidance each ACK is worth
// a(w) credits, and the window grows by one segment per cwnd worth of
// credits.
func (h *HighSpeed) IncreaseWindow(state *SocketState, segmentsAcked uint32) {
	if state.Cwnd < state.SsThresh {
		segmentsAcked = slowStart(state, segmentsAcked)
	}

	if segmentsAcked == 0 {
		return
	}

	segCwnd := state.CwndInSegments()
	oldCwnd := segCwnd
	coeffA := TableLookupA(segCwnd)

	for ; segmentsAcked > 0; segmentsAcked-- {
		h.ackCnt += coeffA

		if h.ackCnt >= segCwnd {
			h.ackCnt -= segCwnd
			segCwnd++
		}
	}

	if segCwnd != oldCwnd {
		state.Cwnd = segCwnd * state.SegmentSize
	}
}

// slowStart grows the window one segment per ACK until the threshold is
// reached and returns the ACKs left over for congestion avoidance.
func slowStart(state *SocketState, segmentsAcked uint32) uint32 {
	if segmentsAcked == 0 {
		return 0
	}

	room := (state.SsThresh - state.Cwnd) / state.SegmentSize
	used := segmentsAcked
	if used > room {
		used = room
	}

	state.Cwnd += used * state.SegmentSize

	return segmentsAcked - used
}

// GetSsThresh returns the slow start threshold, in bytes, to adopt after a
// loss: the current window scaled by 1-b(w), but never below two segments.
func (h *HighSpeed) GetSsThresh(state *SocketState) uint32 {
	segCwnd := state.CwndInSegments()
	coeffB := 1.0 - TableLookupB(segCwnd)

	ssThresh := uint32(2)
	if scaled := uint32(float64(segCwnd) * coeffB); scaled > ssThresh {
		ssThresh = scaled
	}

	return ssThresh * state.SegmentSize
}

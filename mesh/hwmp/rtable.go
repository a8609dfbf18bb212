// Package hwmp implements the routing table of the Hybrid Wireless Mesh
// Protocol. The table holds on-demand (reactive) paths per destination and
// a single proactive path towards the mesh root.
package hwmp

import (
	"github.com/netsimlab/vns/sim"
)

// MacAddress identifies a mesh station, in the usual colon-separated form.
type MacAddress string

// LookupResult is the next-hop information of one path. The zero value is
// the invalid result.
type LookupResult struct {
	Retransmitter MacAddress
	Iface         uint32
	Metric        uint32
	SeqNum        uint32
}

// IsValid reports whether the result refers to an actual path.
func (r LookupResult) IsValid() bool {
	return r != LookupResult{}
}

// Precursor is a station that routes traffic through us towards a
// destination and must be notified when that path breaks.
type Precursor struct {
	Iface   uint32
	Address MacAddress
}

type precursorRecord struct {
	iface      uint32
	address    MacAddress
	whenExpire sim.VTimeInNano
}

type pathRecord struct {
	retransmitter MacAddress
	iface         uint32
	metric        uint32
	seqNum        uint32
	whenExpire    sim.VTimeInNano

	precursors []precursorRecord
}

func (r *pathRecord) result() LookupResult {
	return LookupResult{
		Retransmitter: r.retransmitter,
		Iface:         r.iface,
		Metric:        r.metric,
		SeqNum:        r.seqNum,
	}
}

// Rtable is the HWMP routing table. Expired paths stay in the table until
// they are overwritten or deleted, so that stale next-hop information can
// still be used to forward path error notifications.
type Rtable struct {
	timeTeller sim.TimeTeller

	reactive  map[MacAddress]*pathRecord
	proactive *pathRecord
	root      MacAddress
}

// NewRtable creates an empty routing table reading the clock from
// timeTeller.
func NewRtable(timeTeller sim.TimeTeller) *Rtable {
	return &Rtable{
		timeTeller: timeTeller,
		reactive:   make(map[MacAddress]*pathRecord),
	}
}

// AddReactivePath inserts or refreshes the path towards dst. A refresh
// keeps the precursors collected so far.
func (t *Rtable) AddReactivePath(
	dst MacAddress,
	retransmitter MacAddress,
	iface uint32,
	metric uint32,
	lifetime sim.VTimeInNano,
	seqNum uint32,
) {
	record, ok := t.reactive[dst]
	if !ok {
		record = &pathRecord{}
		t.reactive[dst] = record
	}

	record.retransmitter = retransmitter
	record.iface = iface
	record.metric = metric
	record.seqNum = seqNum
	record.whenExpire = t.timeTeller.Now() + lifetime
}

// AddProactivePath inserts or refreshes the path towards the mesh root.
// Unlike a reactive refresh, a new proactive path starts with an empty
// precursor list: a root announcement restarts the tree.
func (t *Rtable) AddProactivePath(
	metric uint32,
	root MacAddress,
	retransmitter MacAddress,
	iface uint32,
	lifetime sim.VTimeInNano,
	seqNum uint32,
) {
	t.root = root
	t.proactive = &pathRecord{
		retransmitter: retransmitter,
		iface:         iface,
		metric:        metric,
		seqNum:        seqNum,
		whenExpire:    t.timeTeller.Now() + lifetime,
	}
}

// AddPrecursor remembers that precursor routes traffic towards dst through
// us. Duplicates refresh the expiry time instead of growing the list. The
// proactive path collects precursors as well when dst is the root.
func (t *Rtable) AddPrecursor(
	dst MacAddress,
	iface uint32,
	precursor MacAddress,
	lifetime sim.VTimeInNano,
) {
	whenExpire := t.timeTeller.Now() + lifetime

	if record, ok := t.reactive[dst]; ok {
		record.addPrecursor(iface, precursor, whenExpire)
	}

	if t.proactive != nil && t.root == dst {
		t.proactive.addPrecursor(iface, precursor, whenExpire)
	}
}

func (r *pathRecord) addPrecursor(
	iface uint32,
	address MacAddress,
	whenExpire sim.VTimeInNano,
) {
	for i := range r.precursors {
		if r.precursors[i].address == address {
			r.precursors[i].whenExpire = whenExpire
			return
		}
	}

	r.precursors = append(r.precursors, precursorRecord{
		iface:      iface,
		address:    address,
		whenExpire: whenExpire,
	})
}

// GetPrecursors returns the live precursors of the path towards dst, in
// insertion order.
func (t *Rtable) GetPrecursors(dst MacAddress) []Precursor {
	record, ok := t.reactive[dst]
	if !ok {
		if t.proactive == nil || t.root != dst {
			return nil
		}
		record = t.proactive
	}

	now := t.timeTeller.Now()
	list := make([]Precursor, 0, len(record.precursors))
	for _, p := range record.precursors {
		if p.whenExpire > now {
			list = append(list, Precursor{Iface: p.iface, Address: p.address})
		}
	}

	return list
}

// LookupReactive returns the path towards dst, or the invalid result when
// no live path exists.
func (t *Rtable) LookupReactive(dst MacAddress) LookupResult {
	record, ok := t.reactive[dst]
	if !ok || record.whenExpire <= t.timeTeller.Now() {
		return LookupResult{}
	}

	return record.result()
}

// LookupReactiveExpired returns the path towards dst even after its
// lifetime has passed.
func (t *Rtable) LookupReactiveExpired(dst MacAddress) LookupResult {
	record, ok := t.reactive[dst]
	if !ok {
		return LookupResult{}
	}

	return record.result()
}

// LookupProactive returns the live path towards the mesh root.
func (t *Rtable) LookupProactive() LookupResult {
	if t.proactive == nil || t.proactive.whenExpire <= t.timeTeller.Now() {
		return LookupResult{}
	}

	return t.proactive.result()
}

// LookupProactiveExpired returns the path towards the mesh root even after
// its lifetime has passed.
func (t *Rtable) LookupProactiveExpired() LookupResult {
	if t.proactive == nil {
		return LookupResult{}
	}

	return t.proactive.result()
}

// DeleteReactivePath removes the path towards dst.
func (t *Rtable) DeleteReactivePath(dst MacAddress) {
	delete(t.reactive, dst)
}

// DeleteProactivePath removes the path towards the mesh root.
func (t *Rtable) DeleteProactivePath() {
	t.proactive = nil
	t.root = ""
}

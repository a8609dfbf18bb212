// Package propagation provides radio propagation loss models that compute
// the received signal power between two stations.
package propagation

import (
	"math"
)

// speed of light in vacuum, m/s
const lightSpeed = 299792458.0

// Position is a point in 3D space, in meters.
type Position struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// A LossModel computes the received power, in dBm, of a transmission from a
// to b. Models can be chained; each model applies its own loss and then
// hands the result to the next model in the chain.
type LossModel interface {
	RxPower(txPowerDbm float64, a, b Position) float64
	SetNext(next LossModel)
}

// FriisLossModel implements the Friis free-space propagation equation.
type FriisLossModel struct {
	next LossModel

	frequency  float64 // Hz
	systemLoss float64
	minLoss    float64 // dB
}

// NewFriisLossModel creates a Friis model with a 5.15 GHz carrier and unit
// system loss.
func NewFriisLossModel() *FriisLossModel {
	return &FriisLossModel{
		frequency:  5.15e9,
		systemLoss: 1.0,
	}
}

// WithFrequency sets the carrier frequency, in Hz.
func (m *FriisLossModel) WithFrequency(f float64) *FriisLossModel {
	m.frequency = f
	return m
}

// WithSystemLoss sets the dimensionless system loss factor.
func (m *FriisLossModel) WithSystemLoss(l float64) *FriisLossModel {
	m.systemLoss = l
	return m
}

// WithMinLoss sets the minimum loss, in dB, applied regardless of distance.
func (m *FriisLossModel) WithMinLoss(l float64) *FriisLossModel {
	m.minLoss = l
	return m
}

// SetNext appends a model to the chain.
func (m *FriisLossModel) SetNext(next LossModel) {
	m.next = next
}

// RxPower returns the received power in dBm.
func (m *FriisLossModel) RxPower(txPowerDbm float64, a, b Position) float64 {
	rx := txPowerDbm - m.lossDb(Distance(a, b))

	if m.next != nil {
		rx = m.next.RxPower(rx, a, b)
	}

	return rx
}

func (m *FriisLossModel) lossDb(distance float64) float64 {
	if distance <= 0 {
		return m.minLoss
	}

	lambda := lightSpeed / m.frequency
	numerator := lambda * lambda
	denominator := 16 * math.Pi * math.Pi * distance * distance * m.systemLoss
	lossDb := -10 * math.Log10(numerator/denominator)

	return math.Max(lossDb, m.minLoss)
}

// LogDistanceLossModel implements the log-distance path loss model: beyond
// the reference distance the loss grows with 10·n·log10(d/d0).
type LogDistanceLossModel struct {
	next LossModel

	exponent          float64
	referenceDistance float64 // m
	referenceLoss     float64 // dB
}

// NewLogDistanceLossModel creates a log-distance model with exponent 3 and
// the 5 GHz reference loss at 1 m.
func NewLogDistanceLossModel() *LogDistanceLossModel {
	return &LogDistanceLossModel{
		exponent:          3.0,
		referenceDistance: 1.0,
		referenceLoss:     46.6777,
	}
}

// WithExponent sets the path loss exponent.
func (m *LogDistanceLossModel) WithExponent(e float64) *LogDistanceLossModel {
	m.exponent = e
	return m
}

// WithReference sets the reference distance, in meters, and the loss at
// that distance, in dB.
func (m *LogDistanceLossModel) WithReference(
	distance, lossDb float64,
) *LogDistanceLossModel {
	m.referenceDistance = distance
	m.referenceLoss = lossDb

	return m
}

// SetNext appends a model to the chain.
func (m *LogDistanceLossModel) SetNext(next LossModel) {
	m.next = next
}

// RxPower returns the received power in dBm.
func (m *LogDistanceLossModel) RxPower(
	txPowerDbm float64,
	a, b Position,
) float64 {
	rx := txPowerDbm - m.lossDb(Distance(a, b))

	if m.next != nil {
		rx = m.next.RxPower(rx, a, b)
	}

	return rx
}

func (m *LogDistanceLossModel) lossDb(distance float64) float64 {
	if distance <= m.referenceDistance {
		return m.referenceLoss
	}

	pathLossDb := 10 * m.exponent *
		math.Log10(distance/m.referenceDistance)

	return m.referenceLoss + pathLossDb
}

// FixedRssLossModel reports a fixed received power regardless of the
// transmit power or the distance. It is mostly useful in tests.
type FixedRssLossModel struct {
	next LossModel

	rssDbm float64
}

// NewFixedRssLossModel creates a model that always reports rssDbm.
func NewFixedRssLossModel(rssDbm float64) *FixedRssLossModel {
	return &FixedRssLossModel{rssDbm: rssDbm}
}

// SetNext appends a model to the chain.
func (m *FixedRssLossModel) SetNext(next LossModel) {
	m.next = next
}

// RxPower returns the configured received power in dBm.
func (m *FixedRssLossModel) RxPower(_ float64, a, b Position) float64 {
	rx := m.rssDbm

	if m.next != nil {
		rx = m.next.RxPower(rx, a, b)
	}

	return rx
}

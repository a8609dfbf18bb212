// Package wifi models the physical layer of an IEEE 802.11 link: an
// error-rate model derived from the modulation and coding of each
// transmission, and a receiver state machine that accepts or drops frames
// accordingly.
package wifi

import (
	"math"
)

// CodeRate is the convolutional code rate of a transmission mode.
type CodeRate int

// Supported convolutional code rates.
const (
	CodeRate1_2 CodeRate = iota
	CodeRate2_3
	CodeRate3_4
	CodeRate5_6
)

// Mode describes the modulation and coding of one transmission.
type Mode struct {
	// ConstellationSize is 2 for BPSK, 4 for QPSK, 16/64/256/1024/4096
	// for the QAM constellations.
	ConstellationSize uint32
	CodeRate          CodeRate
	PhyRate           uint64  // bit/s
	ChannelWidth      float64 // MHz
}

// ErrorRateModel computes frame success probabilities the way the Yans
// simulator does, with an union bound over the convolutional code distance
// spectrum.
type ErrorRateModel struct{}

// NewErrorRateModel creates an ErrorRateModel.
func NewErrorRateModel() *ErrorRateModel {
	return &ErrorRateModel{}
}

// GetBpskBer returns the bit error rate of a BPSK transmission at the given
// SNR, signal spread (MHz) and PHY rate (bit/s).
func (m *ErrorRateModel) GetBpskBer(
	snr, signalSpread float64,
	phyRate uint64,
) float64 {
	ebNo := snr * signalSpread * 1e6 / float64(phyRate)
	z := math.Sqrt(ebNo)

	return 0.5 * math.Erfc(z)
}

// GetQamBer returns the bit error rate of an order-qam QAM transmission.
func (m *ErrorRateModel) GetQamBer(
	snr float64,
	qam uint32,
	signalSpread float64,
	phyRate uint64,
) float64 {
	ebNo := snr * signalSpread * 1e6 / float64(phyRate)
	mf := float64(qam)
	z := math.Sqrt((1.5 * math.Log2(mf) * ebNo) / (mf - 1.0))
	z1 := (1.0 - 1.0/math.Sqrt(mf)) * math.Erfc(z)
	z2 := 1 - math.Pow(1-z1, 2)

	return z2 / math.Log2(mf)
}

func factorial(k uint32) float64 {
	fact := 1.0
	for ; k > 0; k-- {
		fact *= float64(k)
	}

	return fact
}

func binomial(k uint32, p float64, n uint32) float64 {
	return factorial(n) / (factorial(k) * factorial(n-k)) *
		math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

func calculatePdOdd(ber float64, d uint32) float64 {
	pd := 0.0
	for i := (d + 1) / 2; i < d; i++ {
		pd += binomial(i, ber, d)
	}

	return pd
}

func calculatePdEven(ber float64, d uint32) float64 {
	pd := 0.0
	for i := d/2 + 1; i < d; i++ {
		pd += binomial(i, ber, d)
	}
	pd += 0.5 * binomial(d/2, ber, d)

	return pd
}

func calculatePd(ber float64, d uint32) float64 {
	if d%2 == 0 {
		return calculatePdEven(ber, d)
	}

	return calculatePdOdd(ber, d)
}

// GetFecBpskBer returns the probability that nbits of a coded BPSK
// transmission are received without error.
func (m *ErrorRateModel) GetFecBpskBer(
	snr float64,
	nbits uint64,
	signalSpread float64,
	phyRate uint64,
	dFree, adFree uint32,
) float64 {
	ber := m.GetBpskBer(snr, signalSpread, phyRate)
	if ber == 0.0 {
		return 1.0
	}

	pd := calculatePd(ber, dFree)
	pmu := math.Min(float64(adFree)*pd, 1.0)

	return math.Pow(1-pmu, float64(nbits))
}

// GetFecQamBer returns the probability that nbits of a coded QAM
// transmission are received without error.
func (m *ErrorRateModel) GetFecQamBer(
	snr float64,
	nbits uint64,
	signalSpread float64,
	phyRate uint64,
	qam uint32,
	dFree, adFree, adFreePlusOne uint32,
) float64 {
	ber := m.GetQamBer(snr, qam, signalSpread, phyRate)
	if ber == 0.0 {
		return 1.0
	}

	pmu := float64(adFree) * calculatePd(ber, dFree)
	pmu += float64(adFreePlusOne) * calculatePd(ber, dFree+1)
	pmu = math.Min(pmu, 1.0)

	return math.Pow(1-pmu, float64(nbits))
}

// ChunkSuccessRate returns the probability that a chunk of nbits sent with
// the given mode is received without error at the given SNR.
func (m *ErrorRateModel) ChunkSuccessRate(
	mode Mode,
	snr float64,
	nbits uint64,
) float64 {
	switch mode.ConstellationSize {
	case 2:
		if mode.CodeRate == CodeRate1_2 {
			return m.GetFecBpskBer(snr, nbits, mode.ChannelWidth,
				mode.PhyRate, 10, 11)
		}

		return m.GetFecBpskBer(snr, nbits, mode.ChannelWidth,
			mode.PhyRate, 5, 8)
	case 4, 16:
		if mode.CodeRate == CodeRate1_2 {
			return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
				mode.PhyRate, mode.ConstellationSize, 10, 11, 0)
		}

		return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
			mode.PhyRate, mode.ConstellationSize, 5, 8, 31)
	case 64:
		switch mode.CodeRate {
		case CodeRate2_3:
			return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
				mode.PhyRate, 64, 6, 1, 16)
		case CodeRate5_6:
			// Table B.32 in Pal Frenger et al., "Multi-rate
			// Convolutional Codes".
			return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
				mode.PhyRate, 64, 4, 14, 69)
		default:
			return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
				mode.PhyRate, 64, 5, 8, 31)
		}
	case 256, 1024, 4096:
		if mode.CodeRate == CodeRate5_6 {
			return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
				mode.PhyRate, mode.ConstellationSize, 4, 14, 69)
		}

		return m.GetFecQamBer(snr, nbits, mode.ChannelWidth,
			mode.PhyRate, mode.ConstellationSize, 5, 8, 31)
	}

	return 0
}

// Package httptraffic generates web-browsing traffic following the 3GPP
// model: a client requests a main object, parses it, fetches the embedded
// objects it references, reads the page, and starts over.
package httptraffic

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/netsimlab/vns/sim"
)

// Default model parameters, taken from the 3GPP HTTP traffic profile.
const (
	mainObjectMu     = 8.37
	mainObjectSigma  = 1.37
	minMainObject    = 100
	maxMainObject    = 2000000
	embeddedMu       = 6.17
	embeddedSigma    = 2.36
	minEmbedded      = 50
	maxEmbedded      = 2000000
	numEmbeddedShape = 1.1
	numEmbeddedScale = 2.0
	maxNumEmbedded   = 55
	meanParsingSecs  = 0.13
	meanReadingSecs  = 30.0
)

// Variables draws the random quantities of the traffic model. All draws
// come from one seeded source, so a run is reproducible given its seed.
type Variables struct {
	mainObjectSize distuv.LogNormal
	embeddedSize   distuv.LogNormal
	numEmbedded    distuv.Pareto
	parsingTime    distuv.Exponential
	readingTime    distuv.Exponential
}

// NewVariables creates the random variables of the model from a seed.
func NewVariables(seed uint64) *Variables {
	src := rand.NewSource(seed)

	return &Variables{
		mainObjectSize: distuv.LogNormal{
			Mu: mainObjectMu, Sigma: mainObjectSigma, Src: src,
		},
		embeddedSize: distuv.LogNormal{
			Mu: embeddedMu, Sigma: embeddedSigma, Src: src,
		},
		numEmbedded: distuv.Pareto{
			Xm: numEmbeddedScale, Alpha: numEmbeddedShape, Src: src,
		},
		parsingTime: distuv.Exponential{
			Rate: 1.0 / meanParsingSecs, Src: src,
		},
		readingTime: distuv.Exponential{
			Rate: 1.0 / meanReadingSecs, Src: src,
		},
	}
}

// WithMeanReadingTime overrides the mean page reading time, in seconds.
func (v *Variables) WithMeanReadingTime(mean float64) *Variables {
	v.readingTime.Rate = 1.0 / mean
	return v
}

// WithMeanParsingTime overrides the mean page parsing time, in seconds.
func (v *Variables) WithMeanParsingTime(mean float64) *Variables {
	v.parsingTime.Rate = 1.0 / mean
	return v
}

func clamp(x float64, lo, hi uint32) uint32 {
	if x < float64(lo) {
		return lo
	}
	if x > float64(hi) {
		return hi
	}

	return uint32(x)
}

// MainObjectSize draws the size, in bytes, of a main object.
func (v *Variables) MainObjectSize() uint32 {
	return clamp(v.mainObjectSize.Rand(), minMainObject, maxMainObject)
}

// EmbeddedObjectSize draws the size, in bytes, of an embedded object.
func (v *Variables) EmbeddedObjectSize() uint32 {
	return clamp(v.embeddedSize.Rand(), minEmbedded, maxEmbedded)
}

// NumEmbeddedObjects draws the number of embedded objects of a page.
func (v *Variables) NumEmbeddedObjects() uint32 {
	// The Pareto draw includes the scale as its lower bound; the model
	// subtracts it so that pages with no embedded objects occur.
	n := v.numEmbedded.Rand() - numEmbeddedScale

	return clamp(n, 0, maxNumEmbedded)
}

// ParsingTime draws the time the client spends parsing a main object.
func (v *Variables) ParsingTime() sim.VTimeInNano {
	return sim.Seconds(v.parsingTime.Rand())
}

// ReadingTime draws the time the client spends reading a full page.
func (v *Variables) ReadingTime() sim.VTimeInNano {
	return sim.Seconds(v.readingTime.Rand())
}

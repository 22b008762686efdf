package adaptive

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/chazu/tenon/pkg/outline"
)

// minTolerance is the floor the solve tolerance is silently clamped
// to. Values below it make the 2D solve pathologically slow.
const minTolerance = 0.001

// Request carries everything that influences the 2D adaptive solve.
// Two requests with equal fingerprints are interchangeable; the
// fingerprint gates cache reuse.
type Request struct {
	ToolDiameter       float64       `json:"tool"`
	Tolerance          float64       `json:"tolerance"`
	StepOver           float64       `json:"stepover"` // percent of tool diameter, 0..100
	HelixDiameterLimit float64       `json:"helixDiameterLimit"`
	OperationType      OperationType `json:"operationType"`
	Side               Side          `json:"side"`
	ForceInsideOut     bool          `json:"forceInsideOut"`
	KeepToolDownRatio  float64       `json:"keepToolDownRatio"`
	StockToLeave       float64       `json:"stockToLeave"`

	Base  outline.Outline `json:"geometry"`
	Stock outline.Outline `json:"stockGeometry"`
}

// normalized returns a copy with out-of-range parameters clamped.
// Clamping is silent: out-of-range values are not errors.
func (r Request) normalized() Request {
	if r.Tolerance < minTolerance {
		r.Tolerance = minTolerance
	}
	return r
}

// StepOverFraction returns the stepover as a fraction of the tool
// diameter.
func (r Request) StepOverFraction() float64 {
	return 0.01 * r.StepOver
}

// Mode returns the combined operation mode string, e.g.
// "ClearingInside". It selects one of the four solver behaviors.
func (r Request) Mode() string {
	return r.OperationType.String() + r.Side.String()
}

// Fingerprint is a structural hash of a Request.
type Fingerprint [sha256.Size]byte

// Fingerprint returns the canonical hash of the request: every field
// that influences the solve is folded in, in fixed order, as raw
// binary. Byte-identical requests and only those collide.
func (r Request) Fingerprint() Fingerprint {
	n := r.normalized()
	h := sha256.New()
	buf := make([]byte, 8)

	writeF := func(f float64) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
		h.Write(buf)
	}
	writeI := func(i int) {
		binary.LittleEndian.PutUint64(buf, uint64(i))
		h.Write(buf)
	}
	writeB := func(b bool) {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	writeOutline := func(o outline.Outline) {
		writeI(len(o))
		for _, poly := range o {
			writeI(len(poly))
			for _, p := range poly {
				writeF(p.X)
				writeF(p.Y)
			}
		}
	}

	writeF(n.ToolDiameter)
	writeF(n.Tolerance)
	writeF(n.StepOver)
	writeF(n.HelixDiameterLimit)
	writeI(int(n.OperationType))
	writeI(int(n.Side))
	writeB(n.ForceInsideOut)
	writeF(n.KeepToolDownRatio)
	writeF(n.StockToLeave)
	writeOutline(n.Base)
	writeOutline(n.Stock)

	var fp Fingerprint
	h.Sum(fp[:0])
	return fp
}

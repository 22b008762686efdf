package adaptive

import "math"

// Verb is the motion type of a command.
type Verb int

const (
	Rapid   Verb = iota // positioning move, no feed
	Linear              // cutting move at feed rate
	Comment             // annotation only, no motion
)

func (v Verb) String() string {
	switch v {
	case Rapid:
		return "G0"
	case Linear:
		return "G1"
	case Comment:
		return "(comment)"
	default:
		return "unknown"
	}
}

// Command is one motion record: a verb, a partial axis-letter → value
// map, and an optional feed. Before frame placement every move is
// completed to carry explicit X, Y and Z.
type Command struct {
	Verb    Verb               `json:"verb"`
	Axes    map[string]float64 `json:"axes,omitempty"`
	Feed    float64            `json:"feed,omitempty"`
	Comment string             `json:"comment,omitempty"`
}

// IsMove reports whether the command produces motion.
func (c Command) IsMove() bool {
	return c.Verb == Rapid || c.Verb == Linear
}

// Program is an ordered motion command sequence.
type Program []Command

// Moves returns the number of motion commands.
func (p Program) Moves() int {
	n := 0
	for _, c := range p {
		if c.IsMove() {
			n++
		}
	}
	return n
}

func rapid(axes map[string]float64) Command {
	return Command{Verb: Rapid, Axes: axes}
}

func linear(axes map[string]float64, feed float64) Command {
	return Command{Verb: Linear, Axes: axes, Feed: feed}
}

func comment(text string) Command {
	return Command{Verb: Comment, Comment: text}
}

// Tool carries the tool parameters the generator needs.
type Tool struct {
	Diameter  float64 `json:"diameter"`
	VertFeed  float64 `json:"vertFeed"`
	HorizFeed float64 `json:"horizFeed"`
}

// minHelixAngle is the floor for the helix ramp angle, in degrees.
const minHelixAngle = 1.0

// helixStep is the angular resolution of the helical descent.
const helixStep = math.Pi / 18

// minHelixRadius is the radius below which the entry degenerates to a
// straight plunge.
const minHelixRadius = 0.0001

// Generator expands a solve result into a dimensioned motion program:
// one helix or straight entry per pass and region, cutting moves at
// pass depth, lifted or fully retracted link moves, and clearance
// retracts between regions and passes.
type Generator struct {
	Tool         Tool
	Depths       DepthParams
	LiftDistance float64
	HelixAngle   float64 // degrees
}

// Generate emits the motion program for res in the canonical frame.
// An empty result yields an empty program: nothing to cut is a valid
// outcome, not an error. Region order and point order are taken from
// the result as-is.
func (g *Generator) Generate(res *Result) (Program, error) {
	if res.Empty() {
		return nil, nil
	}

	passes, err := g.Depths.Passes()
	if err != nil {
		return nil, err
	}

	stepUp := g.LiftDistance
	if stepUp < g.Tool.Diameter {
		stepUp = g.Tool.Diameter
	}
	helixAngle := g.HelixAngle
	if helixAngle < minHelixAngle {
		helixAngle = minHelixAngle
	}

	e := &emitter{
		gen:        g,
		stepUp:     stepUp,
		helixAngle: helixAngle,
		lastZ:      math.NaN(),
	}

	clearance := g.Depths.ClearanceHeight
	passStartDepth := g.Depths.StartDepth
	for _, passEndDepth := range passes {
		for i := range res.Regions {
			e.enter(&res.Regions[i], passStartDepth, passEndDepth)
			e.cut(&res.Regions[i], passEndDepth)
			e.retract(clearance)
		}
		passStartDepth = passEndDepth
		e.retract(clearance)
	}
	e.retract(clearance)

	return e.program, nil
}

// emitter accumulates commands and tracks the last commanded Z so
// redundant vertical moves collapse.
type emitter struct {
	gen        *Generator
	stepUp     float64
	helixAngle float64
	program    Program
	lastZ      float64
}

func (e *emitter) emit(c Command) {
	e.program = append(e.program, c)
}

// retract issues a rapid to z unless the tool is already there.
func (e *emitter) retract(z float64) {
	if z != e.lastZ {
		e.emit(rapid(map[string]float64{"Z": z}))
		e.lastZ = z
	}
}

// enter positions the tool over the region and descends to the pass
// end depth, by helix ramp when the region has a usable helix radius
// and by straight plunge otherwise.
func (e *emitter) enter(region *Region, passStartDepth, passEndDepth float64) {
	g := e.gen
	center := region.HelixCenter
	start := region.Start
	helixRadius := center.Distance(start)

	if helixRadius > minHelixRadius {
		e.emit(comment("helix entry"))

		startAngle := math.Atan2(start.Y-center.Y, start.X-center.X)
		at := func(t float64) (x, y float64) {
			return center.X + helixRadius*math.Cos(t+startAngle),
				center.Y + helixRadius*math.Sin(t+startAngle)
		}

		hx, hy := at(0)
		e.emit(rapid(map[string]float64{"X": hx, "Y": hy, "Z": g.Depths.ClearanceHeight}))
		e.emit(rapid(map[string]float64{"X": hx, "Y": hy, "Z": g.Depths.SafeHeight}))
		e.emit(linear(map[string]float64{"X": hx, "Y": hy, "Z": passStartDepth}, g.Tool.VertFeed))

		// Depth gained per revolution from the ramp angle.
		circumference := 2 * math.Pi * helixRadius
		depthPerRevolution := circumference * math.Tan(e.helixAngle*math.Pi/180)
		passDepth := passStartDepth - passEndDepth
		maxRadians := passDepth / depthPerRevolution * 2 * math.Pi

		t := 0.0
		for t < maxRadians {
			x, y := at(t)
			z := passStartDepth - t/maxRadians*passDepth
			e.emit(linear(map[string]float64{"X": x, "Y": y, "Z": z}, g.Tool.VertFeed))
			t += helixStep
		}

		// One more full revolution at the target depth so the helix
		// center is fully cleared.
		maxRadians += 2 * math.Pi
		for t < maxRadians {
			x, y := at(t)
			e.emit(linear(map[string]float64{"X": x, "Y": y, "Z": passEndDepth}, g.Tool.HorizFeed))
			t += helixStep
		}
	} else {
		e.emit(comment("straight entry"))
		e.emit(rapid(map[string]float64{"X": start.X, "Y": start.Y, "Z": g.Depths.ClearanceHeight}))
		e.emit(linear(map[string]float64{"X": start.X, "Y": start.Y, "Z": passEndDepth}, g.Tool.VertFeed))
	}

	e.lastZ = passEndDepth
}

// cut walks the region's path segments in solver order, emitting the
// cutting and link moves for one pass depth.
func (e *emitter) cut(region *Region, passEndDepth float64) {
	g := e.gen

	for _, seg := range region.Paths {
		for _, p := range seg.Points {
			switch seg.Kind {
			case Cutting:
				if passEndDepth != e.lastZ {
					e.emit(linear(map[string]float64{"Z": passEndDepth}, g.Tool.VertFeed))
				}
				e.emit(linear(map[string]float64{"X": p.X, "Y": p.Y}, g.Tool.HorizFeed))
				e.lastZ = passEndDepth

			case LinkClear:
				z := passEndDepth + e.stepUp
				if z != e.lastZ {
					e.emit(rapid(map[string]float64{"Z": z}))
				}
				e.emit(rapid(map[string]float64{"X": p.X, "Y": p.Y}))
				e.lastZ = z

			case LinkNotClear:
				z := g.Depths.ClearanceHeight
				if z != e.lastZ {
					e.emit(rapid(map[string]float64{"Z": z}))
				}
				e.emit(rapid(map[string]float64{"X": p.X, "Y": p.Y}))
				e.lastZ = z
			}
		}
	}
}

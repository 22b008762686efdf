package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/timber"
	zygo "github.com/glycerine/zygomys/zygo"
)

// kwPrefix is the marker prepended to keyword names by
// preprocessSource.
const kwPrefix = "__kw_"

// sexpVec3 wraps a geom.Vec3 so vectors can flow between builtins.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// isKW checks if a Sexp is a preprocessed keyword string, returning
// the keyword name (underscores restored to hyphens) if so.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return strings.ReplaceAll(str.S[len(kwPrefix):], "_", "-"), true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	if name, ok := isKW(s); ok {
		return name, nil
	}
	return toString(s)
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// floatArg assigns a keyword argument into dst when present.
func floatArg(pa kwArgs, form, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, name, err)
	}
	*dst = f
	return nil
}

// vecArg assigns a vec3 keyword argument into dst when present.
func vecArg(pa kwArgs, form, name string, dst *geom.Vec3) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, name, err)
	}
	*dst = vec
	return nil
}

// registerBuiltins installs the job DSL into a zygomys environment.
// The builtins populate spec during evaluation. Source must have been
// run through preprocessSource first so :keyword tokens are
// recognizable.
func registerBuiltins(env *zygo.Zlisp, spec *JobSpec) {

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 components, got %d", len(args))
		}
		var v geom.Vec3
		for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			*dst = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// (tool :diameter 12 :vert-feed 100 :horiz-feed 100)
	env.AddFunction("tool", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"diameter", &spec.Tool.Diameter},
			{"vert-feed", &spec.Tool.VertFeed},
			{"horiz-feed", &spec.Tool.HorizFeed},
		} {
			if err := floatArg(pa, "tool", f.key, f.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		return zygo.SexpNull, nil
	})

	// (depths :clearance 5 :safe 2 :start 0 :step-down 10 :finish-step 0)
	// Final depth comes from each mortise's own depth.
	env.AddFunction("depths", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"clearance", &spec.Depths.ClearanceHeight},
			{"safe", &spec.Depths.SafeHeight},
			{"start", &spec.Depths.StartDepth},
			{"step-down", &spec.Depths.StepDown},
			{"finish-step", &spec.Depths.FinishStep},
		} {
			if err := floatArg(pa, "depths", f.key, f.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		return zygo.SexpNull, nil
	})

	// (adaptive :tolerance 0.1 :stepover 20 :lift 1 :helix-angle 5
	//           :helix-limit 0 :keep-down 3 :stock-to-leave 0)
	env.AddFunction("adaptive", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"tolerance", &spec.Params.Tolerance},
			{"stepover", &spec.Params.StepOver},
			{"lift", &spec.Params.LiftDistance},
			{"helix-angle", &spec.Params.HelixAngle},
			{"helix-limit", &spec.Params.HelixDiameterLimit},
			{"keep-down", &spec.Params.KeepToolDownRatio},
			{"stock-to-leave", &spec.Params.StockToLeave},
		} {
			if err := floatArg(pa, "adaptive", f.key, f.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		if _, ok := pa.kw["inside-out"]; ok {
			spec.Params.ForceInsideOut = true
		}
		return zygo.SexpNull, nil
	})

	// (mortise "name" :kind :hole :length 60 :width 30 :depth 60
	//          :stock-length 102 :stock-width 102
	//          :position (vec3 0 50 50) :normal (vec3 -1 0 0)
	//          :direction (vec3 0 1 0))
	env.AddFunction("mortise", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("mortise: want a name, got %d positional args", len(pa.positional))
		}
		mname, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mortise: name: %w", err)
		}

		kind := timber.Hole
		if v, ok := pa.kw["kind"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mortise: kind: %w", err)
			}
			switch s {
			case "hole":
				kind = timber.Hole
			case "tenon":
				kind = timber.Tenon
			default:
				return zygo.SexpNull, fmt.Errorf("mortise: kind %q, expected hole or tenon", s)
			}
		}

		m := timber.NewMortise(mname, kind)
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"length", &m.HoleLength},
			{"width", &m.HoleWidth},
			{"depth", &m.Depth},
			{"stock-length", &m.StockLength},
			{"stock-width", &m.StockWidth},
		} {
			if err := floatArg(pa, "mortise", f.key, f.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		for _, f := range []struct {
			key string
			dst *geom.Vec3
		}{
			{"position", &m.Frame.Position},
			{"normal", &m.Frame.Normal},
			{"direction", &m.Frame.Direction},
		} {
			if err := vecArg(pa, "mortise", f.key, f.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		if err := m.Frame.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("mortise %s: %w", mname, err)
		}

		spec.Mortises = append(spec.Mortises, m)
		return zygo.SexpNull, nil
	})
}

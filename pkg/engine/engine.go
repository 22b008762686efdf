// Package engine provides the Lisp job-description surface. It wraps
// zygomys in a sandboxed environment and produces a JobSpec from user
// source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during
// evaluation, such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent
// use; each call to Evaluate creates a fresh sandboxed environment
// for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source code and produces a JobSpec.
//
// Return semantics:
//   - On success: spec + nil errors + nil error
//   - On parse/eval failure: nil spec + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*JobSpec, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		spec, evalErrs, err := e.evaluate(source)
		ch <- evalResult{spec: spec, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*JobSpec, []EvalError, error) {
	// Empty source is a valid program describing an empty job.
	if strings.TrimSpace(source) == "" {
		return newJobSpec(), nil, nil
	}

	// Sandbox mode prevents user code from reaching the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	spec := newJobSpec()
	registerBuiltins(env, spec)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return spec, nil, nil
}

// linePattern matches zygomys messages that include "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting line information where the message carries it.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, pattern := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

// preprocessSource rewrites the job script before zygomys sees it:
// :keyword tokens become marked string literals (avoiding global
// symbol registration), kebab-case identifiers become underscore form
// (zygomys reads hyphens as subtraction), and ; comments become //
// comments. String literals pass through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"' || b[i] == '`':
			// Copy the string literal verbatim.
			quote := b[i]
			out.WriteByte(b[i])
			i++
			for i < len(b) && b[i] != quote {
				if b[i] == '\\' && quote == '"' && i+1 < len(b) {
					out.WriteByte(b[i])
					i++
				}
				out.WriteByte(b[i])
				i++
			}
			if i < len(b) {
				out.WriteByte(b[i])
				i++
			}

		case b[i] == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && isIdentChar(b[i+1]):
			out.WriteString(`"` + kwPrefix)
			i++
			for i < len(b) && isIdentChar(b[i]) {
				c := b[i]
				if c == '-' {
					c = '_'
				}
				out.WriteByte(c)
				i++
			}
			out.WriteByte('"')

		case isIdentStart(b[i]):
			for i < len(b) && isIdentChar(b[i]) {
				c := b[i]
				if c == '-' {
					c = '_'
				}
				out.WriteByte(c)
				i++
			}

		default:
			out.WriteByte(b[i])
			i++
		}
	}
	return out.String()
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '-'
}

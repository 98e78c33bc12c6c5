// Package gtp speaks a cut down Go Text Protocol over a tic-tac-toe game, so that a person
// or another program can play against a learned table.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/pkg/errors"
)

// Engine holds the game being played and the commands it understands.
type Engine struct {
	g *ttt.Game

	known map[string]Command

	ch   chan string
	ret  chan string
	done bool // set by quit

	Generate      func(g *ttt.Game) game.PlayerMove
	name, version string
}

// New creates an engine. A nil game starts a new one and nil commands use StandardLib.
func New(g *ttt.Game, name, version string, known map[string]Command) *Engine {
	if g == nil {
		g = ttt.New()
	}
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		g:       g,
		known:   known,
		name:    name,
		version: version,
	}
}

// Start runs the engine in a goroutine. Each command sent on input gets exactly one response
// on output. Output is closed after quit, or once input is closed.
func (e *Engine) Start() (input, output chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

// Run reads commands from r, one per line, and writes the responses to w until quit or the
// end of r.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		resp, ok := e.Exec(s.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, resp); err != nil {
			return errors.WithStack(err)
		}
		if e.done {
			return nil
		}
	}
	return errors.WithStack(s.Err())
}

// Exec runs a single command and returns the response. Blank lines and comments have no
// response.
func (e *Engine) Exec(cmd string) (resp string, ok bool) {
	id, x, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		return handleErr(id, err), true
	}
	id, result, err := x.Do(id, args, e)
	return handleResult(id, result, err), true
}

// State returns the game being played.
func (e *Engine) State() *ttt.Game { return e.g }

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		resp, ok := e.Exec(cmd)
		if !ok {
			continue
		}
		e.ret <- resp
		if e.done {
			return
		}
	}
}

// refer to this
// https://www.lysator.liu.se/%7Egunnar/gtp/gtp2-spec-draft2/gtp2-spec.html#SECTION00030000000000000000
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if i, err := strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		id = i
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // an ID on its own is ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

// preprocess lowercases the command and strips comments.
func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}

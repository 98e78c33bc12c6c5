package gtp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/pkg/errors"
)

// Command is a single protocol command.
type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	var buf bytes.Buffer
	for i, c := range cmds {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(c)
	}
	return buf.String()
}

func quit(e *Engine) string       { e.done = true; return "" }
func clearBoard(e *Engine) string { e.g.Reset(); return "" }
func showboard(e *Engine) string  { return fmt.Sprintf("\n%s", e.g) }

func undo(e *Engine, args []string) (string, error) {
	if e.g.MoveNumber() == 0 {
		return "", errors.New("cannot undo")
	}
	e.g.UndoLastMove()
	return "", nil
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func parseColour(s string) (game.Player, error) {
	switch s {
	case "x", "b", "black":
		return ttt.Cross, nil
	case "o", "w", "white":
		return ttt.Nought, nil
	}
	return game.Player(game.None), errors.Errorf("invalid color %q", s)
}

func checkTurn(e *Engine, p game.Player) error {
	if ended, _ := e.g.Ended(); ended {
		return errors.New("game over")
	}
	if p != e.g.ToMove() {
		return errors.Errorf("not %s's turn", p)
	}
	return nil
}

func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse the cell of play")
	}
	if err := checkTurn(e, p); err != nil {
		return "", err
	}
	m := game.PlayerMove{Player: p, Single: game.Single(pos)}
	if !e.g.Check(m) {
		return "", errors.Errorf("illegal move %d", pos)
	}
	e.g.Apply(m)
	return "", nil
}

func genmove(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"genmove\"")
	}
	if e.Generate == nil {
		return "", errors.New("Unable to generate moves. No generator found")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	if err := checkTurn(e, p); err != nil {
		return "", err
	}
	m := e.Generate(e.g)
	if !e.g.Check(m) {
		return "", errors.Errorf("generated illegal move %v", m)
	}
	e.g.Apply(m)
	return strconv.Itoa(int(m.Single)), nil
}

// winner is not part of the protocol. It reports "x", "o", "draw" or "none" for a game that
// is still going.
func winner(e *Engine) string {
	ended, w := e.g.Ended()
	switch {
	case !ended:
		return "none"
	case w == ttt.Cross:
		return "x"
	case w == ttt.Nought:
		return "o"
	}
	return "draw"
}

// StandardLib is the set of commands understood by default.
func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),
		"winner":           stdlib(winner),

		"known_command": stdlib2(knownCommand),
		"undo":          stdlib2(undo),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
	}
}

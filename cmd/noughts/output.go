package main

import (
	"fmt"
	"io"

	"github.com/gorgonia/noughts"
	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/pkg/errors"
)

// encoders sends every state to all of its encoders.
type encoders []noughts.OutputEncoder

func (es encoders) Encode(ms game.MetaState) error {
	for _, e := range es {
		if err := e.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

func (es encoders) Flush() error {
	for _, e := range es {
		if err := e.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// boardPrinter prints the final board of every game.
type boardPrinter struct {
	w io.Writer
}

func (p boardPrinter) Encode(ms game.MetaState) error {
	g, ok := ms.State().(*ttt.Game)
	if !ok {
		return errors.Errorf("Cannot print a %T", ms.State())
	}
	ended, winner := g.Ended()
	if !ended {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "Game %d: %s\n%s", ms.GameNumber(), outcome(winner), ttt.Render(g.Packed()))
	return errors.WithStack(err)
}

func (p boardPrinter) Flush() error { return nil }

func outcome(winner game.Player) string {
	switch winner {
	case ttt.Cross:
		return "X wins"
	case ttt.Nought:
		return "O wins"
	}
	return "draw"
}

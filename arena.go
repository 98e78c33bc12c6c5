package noughts

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/gorgonia/noughts/policy"
	"github.com/pkg/errors"
)

// Arena plays games between two agents sharing one table. A always plays Cross, which
// always moves first.
type Arena struct {
	game *ttt.Game
	A, B *Agent

	// state
	currentPlayer *Agent
	traj          policy.Trajectory
	buf           bytes.Buffer
	logger        *log.Logger
	transcript    bool // log every move of the game into buf

	name       string
	epoch      int // training epoch
	gameNumber int // which game is this in
}

// MakeArena makes an arena for the table. Greedy agents play the best move, others sample.
func MakeArena(t *policy.Table, greedy bool, name string) Arena {
	A := &Agent{
		Table:  t,
		Player: ttt.Cross,
		Greedy: greedy,
		name:   "A",
	}
	B := &Agent{
		Table:  t,
		Player: ttt.Nought,
		Greedy: greedy,
		name:   "B",
	}

	if name == "" {
		name = "UNKNOWN GAME"
	}

	return Arena{
		game: ttt.New(),
		A:    A,
		B:    B,
		traj: make(policy.Trajectory, 0, ttt.Size),
		name: name,
	}
}

func NewArena(t *policy.Table, greedy bool, name string) *Arena {
	ar := MakeArena(t, greedy, name)
	ar.logger = log.New(&ar.buf, "", 0)
	ar.transcript = true
	return &ar
}

// Play plays a game from the empty board to the end and returns the winner and the moves that
// were made. If it is a draw, the returned player is None.
//
// A non-negative opening forces Cross's first move. The trajectory is reused by the next
// call to Play.
func (a *Arena) Play(opening game.Single, enc OutputEncoder) (winner game.Player, traj policy.Trajectory, err error) {
	a.game.Reset()
	a.traj = a.traj[:0]
	a.currentPlayer = a.A
	if a.transcript {
		a.buf.Reset()
		a.logger.Printf("Game %d. Opening %d", a.gameNumber, opening)
	}

	var ended bool
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		board := a.game.Packed()
		var m policy.Move
		if opening >= 0 && board.IsEmpty() {
			m = policy.Move{Entry: a.A.Table.EntryFor(board), Pos: opening}
		} else {
			m = a.currentPlayer.Move(board)
		}
		pm := game.PlayerMove{Player: a.currentPlayer.Player, Single: m.Pos}
		if !a.game.Check(pm) {
			panic(fmt.Sprintf("Agent %v picked illegal move %v on\n%s", a.currentPlayer.name, pm, board))
		}

		a.traj = append(a.traj, m)
		a.game.Apply(pm)
		if a.transcript {
			a.logger.Printf("\tCurrent Player: %v. Move %d. Weight %d", a.currentPlayer.Player, m.Pos, m.Entry.Weight(m.Pos))
		}
		a.switchPlayer()
		if enc != nil {
			if err = enc.Encode(a); err != nil {
				return winner, a.traj, errors.WithMessage(err, "Unable to encode game")
			}
		}
	}

	switch winner {
	case a.A.Player:
		a.A.Wins++
		a.B.Loss++
	case a.B.Player:
		a.B.Wins++
		a.A.Loss++
	default:
		a.A.Draw++
		a.B.Draw++
	}
	if a.transcript {
		a.logger.Printf("Winner %v\n%s", winner, a.game)
	}
	return winner, a.traj, nil
}

func (a *Arena) Epoch() int                  { return a.epoch }
func (a *Arena) GameNumber() int             { return a.gameNumber }
func (a *Arena) Name() string                { return a.name }
func (a *Arena) Score(p game.Player) float64 { return float64(a.game.Score(p)) }
func (a *Arena) State() game.State           { return a.game }

// Log writes the transcript of the last game played.
func (a *Arena) Log(w io.Writer) {
	fmt.Fprint(w, a.buf.String())
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}

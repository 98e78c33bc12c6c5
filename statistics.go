package noughts

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Report is the outcome of a stretch of self-play games.
type Report struct {
	Epoch  int
	Games  int // games played up to and including this report
	Boards int // size of the table at the time of the report
	Tally  Tally
}

// Statistics is the history of a training run, one report per Config.ReportEvery games.
type Statistics struct {
	Reports []Report
}

func makeStatistics() Statistics {
	return Statistics{
		Reports: make([]Report, 0, 64),
	}
}

func (s *Statistics) update(epoch, played, boards int, tally Tally) {
	games := played
	if l := len(s.Reports); l > 0 {
		games += s.Reports[l-1].Games
	}
	s.Reports = append(s.Reports, Report{
		Epoch:  epoch,
		Games:  games,
		Boards: boards,
		Tally:  tally,
	})
}

// Dump writes the reports as CSV.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"epoch", "games", "boards", "x_wins", "o_wins", "draws", "draw_rate"}); err != nil {
		return errors.WithStack(err)
	}
	records := make([][]string, 0, len(s.Reports))
	for _, r := range s.Reports {
		records = append(records, []string{
			strconv.Itoa(r.Epoch),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Boards),
			strconv.Itoa(r.Tally.XWins),
			strconv.Itoa(r.Tally.OWins),
			strconv.Itoa(r.Tally.Draws),
			strconv.FormatFloat(float64(r.Tally.DrawRate()), 'f', 3, 32),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return errors.Wrapf(err, "Unable to write statistics to %v", filename)
	}
	return nil
}

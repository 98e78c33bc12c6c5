// Command noughts trains a tic-tac-toe table by self-play, then evaluates it greedily.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/golang/glog"
	"github.com/gorgonia/noughts"
	"github.com/gorgonia/noughts/encoding/gif"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/gorgonia/noughts/gtp"
	"github.com/gorgonia/noughts/policy"
	"github.com/pkg/errors"
)

var (
	games     = flag.Int("games", 200000, "number of self-play games")
	evalGames = flag.Int("eval", 100, "number of greedy evaluation games")
	regime    = flag.String("regime", "default", "weight regime: default, classic or bulk")
	sampler   = flag.String("sampler", "", "override the sampler of the regime: uniform or midpoint")
	drawCred  = flag.Int("draw", -1, "override the credit given to every move of a drawn game")
	seed      = flag.Int64("seed", 0, "random seed. 0 seeds from the clock")
	every     = flag.Int("report", 10000, "record statistics every this many games")

	printEnd = flag.Bool("print", false, "print the final board of every evaluation game")
	exhibit  = flag.Bool("exhibit", false, "play one greedy game for every opening move")
	dotFile  = flag.String("dot", "", "write the learned opening tree as graphviz to this file")
	dotDepth = flag.Int("depth", 2, "depth of the opening tree")
	gifFile  = flag.String("gif", "", "write the evaluation games as an animated gif to this file")
	csvFile  = flag.String("stats", "", "write training statistics as CSV to this file")
	play     = flag.Bool("play", false, "play against the table over the text protocol on stdin")
)

func policyConf() (policy.Config, error) {
	var conf policy.Config
	switch *regime {
	case "default":
		conf = policy.DefaultConfig()
	case "classic":
		conf = policy.Classic()
	case "bulk":
		conf = policy.Bulk()
	default:
		return conf, errors.Errorf("Unknown regime %q", *regime)
	}
	if *sampler != "" {
		s, err := policy.ParseSampler(*sampler)
		if err != nil {
			return conf, err
		}
		conf.Sampler = s
	}
	if *drawCred >= 0 {
		conf.DrawCredit = uint32(*drawCred)
	}
	conf.Seed = *seed
	if !conf.IsValid() {
		return conf, errors.Errorf("Invalid policy config %+v", conf)
	}
	return conf, nil
}

func run() error {
	pconf, err := policyConf()
	if err != nil {
		return err
	}
	conf := noughts.DefaultConfig()
	conf.PolicyConf = pconf
	conf.ReportEvery = *every

	var encs encoders
	if *gifFile != "" {
		f, err := os.Create(*gifFile)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		enc := gif.NewGifEncoder(600, 600)
		enc.Writer = f
		encs = append(encs, enc)
	}
	if *printEnd {
		encs = append(encs, boardPrinter{os.Stdout})
	}
	if len(encs) > 0 {
		conf.OutputEncoder = encs
	}

	t := noughts.New(conf)
	if err := t.Learn(*games); err != nil {
		return err
	}

	e := noughts.NewEvaluator(t.Table(), conf)
	tally, err := e.Evaluate(*evalGames)
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", tally)
	fmt.Printf("Boards %d, moves %d\n", t.Table().Len(), t.Moves())

	if *exhibit {
		ex, err := e.Exhibit()
		if err != nil {
			return err
		}
		for _, x := range ex {
			fmt.Printf("Opening %d: %s\n", x.Opening, outcome(x.Winner))
			if !*printEnd {
				fmt.Print(ttt.Render(x.Board))
			}
		}
	}

	if len(encs) > 0 {
		if err := encs.Flush(); err != nil {
			return errors.WithMessage(err, "Unable to flush output")
		}
	}
	if *csvFile != "" {
		if err := t.Dump(*csvFile); err != nil {
			return err
		}
	}
	if *dotFile != "" {
		dot := t.Table().ToDot(ttt.Empty(), *dotDepth)
		if err := ioutil.WriteFile(*dotFile, []byte(dot), 0644); err != nil {
			return errors.Wrapf(err, "Unable to write %v", *dotFile)
		}
	}

	if *play {
		greedy := &noughts.Agent{Table: t.Table(), Greedy: true}
		eng := gtp.New(nil, "noughts", "1.0", nil)
		eng.Generate = greedy.Generate
		return eng.Run(os.Stdin, os.Stdout)
	}
	return nil
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Errorf("%+v", err)
		glog.Flush()
		os.Exit(1)
	}
}

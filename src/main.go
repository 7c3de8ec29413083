package main

import (
	"fmt"
	"log"
	"os"

	"colonylife/src/colony"
	"colonylife/src/lifefile"
	"colonylife/src/runner"
	"colonylife/src/view"

	"github.com/integrii/flaggy"
)

type EnvOptions struct {
	interactive bool
	maxSteps    int
	file        string
	out         string
	border      int
	strict      bool
}

const DefMaxSteps = 1000

func main() {
	eo, co, ro := initOptions()

	r := runner.New(ro)

	c, err := newColony(eo, co, r)
	if err != nil {
		r.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	r.Attach(c)

	if eo.interactive {
		v := view.NewConsoleUI(r, view.UIOptions{Density: co.Density, SavePath: eo.out, Source: eo.file})
		r.DoSync(func() { v.Register(c) })
		v.Start()
		r.DoSync(c.Stop)
	} else {
		fmt.Printf("\"Colony of Life\" simulation started...\n")
		o := view.NewConsoleOut(eo.maxSteps)
		r.DoSync(func() { o.Register(c) })
		r.Do(c.Start)
		<-o.Done()
		if eo.out != "" {
			var g *colony.Grid
			r.DoSync(func() { g = c.Grid() })
			path, err := lifefile.Save(eo.out, g)
			if err != nil {
				log.Println(err)
			} else {
				fmt.Printf("Saved to %s\n", path)
			}
		}
	}
	r.Close()
}

//newColony loads the colony file or generates the random colony
func newColony(eo *EnvOptions, co *colony.Options, r *runner.Runner) (*colony.Colony, error) {
	if eo.file == "" {
		return colony.New(co, r), nil
	}
	d := lifefile.RunLengthDecoder{Border: eo.border, Strict: eo.strict}
	g, err := lifefile.LoadFile(eo.file, &d)
	if err != nil {
		return nil, err
	}
	for _, comment := range d.Comments {
		fmt.Println(comment)
	}
	return colony.NewFromGrid(co, g, r), nil
}

func initOptions() (eo *EnvOptions, co *colony.Options, ro *runner.Options) {

	co = &colony.Options{}
	*co = colony.DefaultOptions
	ro = &runner.Options{}
	*ro = runner.DefaultOptions
	eo = &EnvOptions{maxSteps: DefMaxSteps, border: lifefile.DefaultBorder}

	flaggy.SetName("colonylife")
	flaggy.SetDescription("Colony of Life: cellular automaton simulation")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&co.Width, "x", "width", "Width of a random colony")
	flaggy.Int(&co.Height, "y", "height", "Height of a random colony")
	flaggy.Float64(&co.Density, "d", "density", "Probability of a live cell for random colonies and edits (0..1)")
	flaggy.Int(&co.Workers, "w", "workers", "Goroutines computing one generation")
	flaggy.UInt64(&co.Seed, "", "seed", "Seed for the random generator, 0 picks a time based seed")
	flaggy.Duration(&ro.Interval, "i", "interval", "Simulation speed (interval between the generations) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Limit the headless simulation to maxSteps generations, 0 runs until the colony is stable")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.String(&eo.file, "f", "file", "Colony file to load (.lif, .col, .txt)")
	flaggy.String(&eo.out, "o", "out", "File the colony is saved to (.col)")
	flaggy.Int(&eo.border, "b", "border", "Dead margin added around .lif patterns")
	flaggy.Bool(&eo.strict, "", "strict", "Reject malformed runs in .lif files")

	flaggy.Parse()

	if co.Width <= 0 || co.Height <= 0 {
		flaggy.ShowHelpAndExit("width and height must be positive")
	}
	if co.Density < 0 || co.Density > 1 {
		flaggy.ShowHelpAndExit("density must be between 0 and 1")
	}
	if eo.border < 0 {
		flaggy.ShowHelpAndExit("border must not be negative")
	}

	if !eo.interactive {
		flaggy.ShowHelp("")
	}

	return
}

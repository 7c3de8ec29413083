package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"colonylife/src/colony"

	"github.com/logrusorgru/aurora"
)

//ConsoleOut reports the headless simulation progress
//it stops the colony after maxSteps generations or when the colony stops changing
type ConsoleOut struct {
	c              *colony.Colony
	w              io.Writer
	maxSteps       int
	lastGeneration int
	startTime      time.Time
	started        bool
	done           chan struct{}
}

func NewConsoleOut(maxSteps int) *ConsoleOut {
	return &ConsoleOut{w: os.Stdout, maxSteps: maxSteps, done: make(chan struct{})}
}

//Done is closed when the simulation is finished
func (o *ConsoleOut) Done() <-chan struct{} {
	return o.done
}

//Register subscribes to the colony and prints the running configuration
func (o *ConsoleOut) Register(c *colony.Colony) {
	o.c = c
	c.AddListener(o)
	co := c.Options()
	fmt.Fprintln(o.w, "Running configuration:")
	fmt.Fprintf(o.w, "  Dimension: %v x %v\n", c.Width(), c.Height())
	fmt.Fprintf(o.w, "  Max generations: %v\n", o.maxSteps)
	o.printHashData(map[string]interface{}{
		"Workers":    co.Workers,
		"Live cells": c.Status().LiveCells,
	})
}

func (o *ConsoleOut) ColonyAdvanced(c *colony.Colony) {
	st := c.Status()
	if st.Generation == o.lastGeneration {
		//an edit, not a generation step
		return
	}
	o.lastGeneration = st.Generation
	if st.Generation%10 == 0 {
		fmt.Fprintf(o.w, "  Generations done: %v\n", st.Generation)
	}
	if (o.maxSteps != 0 && st.Generation >= o.maxSteps) || !st.Changed {
		if c.Running() {
			c.Stop()
		}
	}
}

func (o *ConsoleOut) ColonyChanged(c *colony.Colony) {
	o.lastGeneration = 0
	fmt.Fprintf(o.w, "  New colony: %v x %v\n", c.Width(), c.Height())
}

func (o *ConsoleOut) SimulationToggled() {
	if o.c.Running() {
		if !o.started {
			o.started = true
			o.startTime = time.Now()
			fmt.Fprintln(o.w, "\nSimulation started...")
		}
		return
	}
	if !o.started {
		return
	}
	st := o.c.Status()
	fmt.Fprintln(o.w, "\n"+aurora.Green("Finished:").String())
	o.printHashData(map[string]interface{}{
		"Last generation": st.Generation,
		"Total time":      time.Since(o.startTime).Round(time.Millisecond),
		"Live cells":      st.LiveCells,
		"Stable":          !st.Changed,
	})
	o.started = false
	select {
	case <-o.done:
	default:
		close(o.done)
	}
}

func (o *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(o.w, "  %s: %v\n", aurora.Cyan(propName), d[propName])
	}
}

package runner

import (
	"sync"
	"testing"
	"time"

	"colonylife/src/colony"
)

const waitTimeout = 5 * time.Second

//counter counts advances, it is only touched from the main loop
type counter struct {
	n      int
	signal chan struct{}
}

func newCounter() *counter {
	return &counter{signal: make(chan struct{}, 1000)}
}

func (c *counter) Advance() {
	c.n++
	select {
	case c.signal <- struct{}{}:
	default:
	}
}

func (c *counter) wait(t *testing.T, n int) {
	t.Helper()
	timeout := time.After(waitTimeout)
	for i := 0; i < n; i++ {
		select {
		case <-c.signal:
		case <-timeout:
			t.Fatalf("only %d of %d advances arrived", i, n)
		}
	}
}

func TestDoSerializesCommands(t *testing.T) {
	r := New(nil)
	defer r.Close()

	total := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				r.Do(func() { total++ })
			}
		}()
	}
	wg.Wait()

	var got int
	r.DoSync(func() { got = total })
	if got != 1000 {
		t.Fatalf("executed %d commands, expected 1000", got)
	}
}

func TestTickerAdvances(t *testing.T) {
	for _, interval := range []time.Duration{0, time.Millisecond} {
		t.Run(interval.String(), func(t *testing.T) {
			r := New(&Options{Interval: interval})
			defer r.Close()
			c := newCounter()
			r.Attach(c)

			r.DoSync(r.Start)
			c.wait(t, 5)

			var running bool
			var stopped int
			r.DoSync(func() {
				running = r.Running()
				r.Stop()
				stopped = c.n
			})
			if !running {
				t.Fatal("ticker must report running")
			}

			time.Sleep(20 * time.Millisecond)
			var after int
			r.DoSync(func() { after = c.n })
			if after != stopped {
				t.Fatalf("advanced %d times after stop", after-stopped)
			}
		})
	}
}

func TestStartStopIdempotent(t *testing.T) {
	r := New(&Options{Interval: time.Hour})
	defer r.Close()

	var states []bool
	r.DoSync(func() {
		r.Stop()
		states = append(states, r.Running())
		r.Start()
		r.Start()
		states = append(states, r.Running())
		r.Stop()
		r.Stop()
		states = append(states, r.Running())
	})
	if states[0] || !states[1] || states[2] {
		t.Fatalf("unexpected running states %v", states)
	}
}

func TestSetInterval(t *testing.T) {
	r := New(&Options{Interval: time.Hour})
	defer r.Close()
	c := newCounter()
	r.Attach(c)

	r.DoSync(r.Start)
	r.DoSync(func() { r.SetInterval(time.Millisecond) })
	c.wait(t, 3)

	var interval time.Duration
	var running bool
	r.DoSync(func() {
		interval, running = r.Interval(), r.Running()
		r.Stop()
	})
	if interval != time.Millisecond || !running {
		t.Fatalf("interval %v running %v after SetInterval", interval, running)
	}
}

func TestSkippedTicks(t *testing.T) {
	r := New(&Options{Interval: time.Millisecond})
	defer r.Close()
	c := newCounter()
	r.Attach(c)

	release := make(chan struct{})
	r.DoSync(r.Start)
	//block the main loop so the ticks pile up
	r.Do(func() { <-release })
	deadline := time.Now().Add(waitTimeout)
	for r.Skipped() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(release)
	if r.Skipped() == 0 {
		t.Fatal("ticks must be skipped while the main loop is busy")
	}
	r.DoSync(r.Stop)
}

//journal records the colony events from the main loop
type journal struct {
	advanced chan int
	toggled  chan bool
	c        *colony.Colony
}

func (j *journal) ColonyAdvanced(c *colony.Colony) { j.advanced <- c.Status().Generation }
func (j *journal) ColonyChanged(c *colony.Colony) {}
func (j *journal) SimulationToggled() { j.toggled <- j.c.Running() }

func TestDrivesColony(t *testing.T) {
	r := New(&Options{Interval: time.Millisecond})
	defer r.Close()

	blinker := colony.NewGrid(5, 5)
	for row := 1; row <= 3; row++ {
		blinker.Set(row, 2, true)
	}
	c := colony.NewFromGrid(&colony.Options{Workers: 1, Seed: 1}, blinker.Clone(), r)
	r.Attach(c)
	j := &journal{advanced: make(chan int, 100), toggled: make(chan bool, 10), c: c}
	r.DoSync(func() { c.AddListener(j) })

	r.Do(c.ToggleTimer)
	if running := <-j.toggled; !running {
		t.Fatal("toggle must start the colony")
	}
	for expected := 1; expected <= 4; expected++ {
		select {
		case gen := <-j.advanced:
			if gen != expected {
				t.Fatalf("generation %d, expected %d", gen, expected)
			}
		case <-time.After(waitTimeout):
			t.Fatal("timer did not advance the colony")
		}
	}
	r.Do(c.ToggleTimer)
	if running := <-j.toggled; running {
		t.Fatal("toggle must stop the colony")
	}

	var gen int
	var grid *colony.Grid
	r.DoSync(func() {
		gen = c.Status().Generation
		grid = c.Grid()
	})
	expected := blinker.Clone()
	if gen%2 == 1 {
		expected = colony.NewGrid(5, 5)
		for col := 1; col <= 3; col++ {
			expected.Set(2, col, true)
		}
	}
	if !grid.Equal(expected) {
		t.Fatalf("generation %d grid\n%v", gen, grid)
	}
}

func TestCloseStopsTicker(t *testing.T) {
	r := New(&Options{Interval: time.Millisecond})
	c := newCounter()
	r.Attach(c)
	r.DoSync(r.Start)
	c.wait(t, 1)
	r.Close()

	select {
	case <-r.doneCh:
	default:
		t.Fatal("main loop must be finished after Close")
	}
	if r.Running() {
		t.Fatal("ticker must be stopped after Close")
	}
}

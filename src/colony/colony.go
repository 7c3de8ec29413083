package colony

import (
	"math/rand/v2"
	"sync"
	"time"
)

//Timer is the periodic scheduler driving the colony, Colony only starts and stops it
type Timer interface {
	Start()
	Stop()
	Running() bool
}

//Colony owns the grid and the snapshot taken at the last Load
//Colony has no locking: all calls must come from one goroutine (see runner.Runner)
type Colony struct {
	Notifier
	options Options
	grid    *Grid
	initial *Grid
	spare   *Grid //buffer for the next generation, swapped with grid on every Advance
	timer   Timer
	rng     *rand.Rand
	status  Status
}

//New creates the colony with the random grid described by o
//t may be nil, then Start and Stop only flip a flag
func New(o *Options, t Timer) *Colony {
	if o == nil {
		o = &DefaultOptions
	}
	c := NewFromGrid(o, nil, t)
	c.Load(RandomGrid(c.options.Height, c.options.Width, c.options.Density, c.rng))
	return c
}

//NewFromGrid creates the colony holding g, a nil grid is replaced by the dead grid of o's size
//the colony takes the ownership of g
func NewFromGrid(o *Options, g *Grid, t Timer) *Colony {
	if o == nil {
		o = &DefaultOptions
	}
	if t == nil {
		t = &manualTimer{}
	}
	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	c := &Colony{
		options: *o,
		timer:   t,
		rng:     rand.New(rand.NewPCG(seed, 0)),
	}
	if c.options.Workers < 1 {
		c.options.Workers = 1
	}
	c.Notifier.colony = c
	if g == nil {
		g = NewGrid(o.Height, o.Width)
	}
	c.install(g)
	return c
}

//Alive returns the cell state, false for any coordinate outside the grid
func (c *Colony) Alive(row int, col int) bool {
	return c.grid.Alive(row, col)
}

func (c *Colony) Width() int { return c.grid.Cols() }

func (c *Colony) Height() int { return c.grid.Rows() }

//Grid returns a copy of the current grid
func (c *Colony) Grid() *Grid {
	return c.grid.Clone()
}

//Status returns current colony status
func (c *Colony) Status() Status {
	return c.status
}

//Options returns the colony configuration
func (c *Colony) Options() Options {
	return c.options
}

//Running reports whether the timer is running
func (c *Colony) Running() bool {
	return c.timer.Running()
}

//Advance computes the next generation into a fresh buffer and swaps it in
func (c *Colony) Advance() {
	start := time.Now()
	next := c.spare
	if next == nil {
		next = NewGrid(c.grid.Rows(), c.grid.Cols())
	}
	liveCells, changed := c.nextGeneration(next)
	c.spare, c.grid = c.grid, next

	c.status.Generation++
	c.status.LiveCells = liveCells
	c.status.Changed = changed
	c.status.AdvanceTime = time.Since(start)
	c.Notify(true, false, false)
}

//Populate makes cells of the rectangle alive, each with probability density
//x is the first column, y the first row, cells outside the grid are skipped
func (c *Colony) Populate(x int, y int, width int, height int, density float64) {
	c.iterate(x, y, width, height, density, true)
}

//Eradicate kills cells of the rectangle, each with probability density
func (c *Colony) Eradicate(x int, y int, width int, height int, density float64) {
	c.iterate(x, y, width, height, density, false)
}

//Load installs g as the current grid and as the reset point
//the colony takes the ownership of g
func (c *Colony) Load(g *Grid) {
	if g == nil {
		return
	}
	c.install(g)
	c.Notify(false, true, false)
}

//Generate loads the new random grid, each cell is alive with probability density
func (c *Colony) Generate(rows int, cols int, density float64) {
	c.Load(RandomGrid(rows, cols, density, c.rng))
}

//Reset restores the grid passed to the last Load
func (c *Colony) Reset() {
	c.grid = c.initial.Clone()
	c.status = Status{LiveCells: c.grid.LiveCells()}
	c.Notify(true, false, false)
}

//Start starts the timer
func (c *Colony) Start() {
	c.timer.Start()
	c.Notify(false, false, true)
}

//Stop stops the timer, stopping the stopped timer only repeats the notification
func (c *Colony) Stop() {
	c.timer.Stop()
	c.Notify(false, false, true)
}

//ToggleTimer stops the running timer or starts the stopped one
func (c *Colony) ToggleTimer() {
	if c.timer.Running() {
		c.Stop()
	} else {
		c.Start()
	}
}

func (c *Colony) install(g *Grid) {
	c.grid = g
	c.initial = g.Clone()
	c.spare = nil
	c.status = Status{LiveCells: g.LiveCells()}
}

//iterate sets the cells of the rectangle to the alive state, one random draw per cell inside the grid
func (c *Colony) iterate(x int, y int, width int, height int, density float64, alive bool) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			if c.grid.Within(row, col) && c.rng.Float64() < density {
				c.grid.Set(row, col, alive)
			}
		}
	}
	c.status.LiveCells = c.grid.LiveCells()
	c.Notify(true, false, false)
}

//workBand describes the rows computed by one worker
type workBand struct {
	row1      int
	row2      int //exclusive
	liveCells int
	changed   bool
}

//nextGeneration writes the next state of every cell into next, reading only the current grid
func (c *Colony) nextGeneration(next *Grid) (liveCells int, changed bool) {
	bands := c.bands()
	if len(bands) == 1 {
		c.calcBand(next, &bands[0])
		return bands[0].liveCells, bands[0].changed
	}
	var waitGroup sync.WaitGroup
	for i := range bands {
		band := &bands[i]
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			c.calcBand(next, band)
		}()
	}
	waitGroup.Wait()
	for _, band := range bands {
		liveCells += band.liveCells
		changed = changed || band.changed
	}
	return
}

//calcBand calculates new states for the cells inside the band
func (c *Colony) calcBand(next *Grid, band *workBand) {
	band.liveCells = 0
	band.changed = false
	cols := c.grid.Cols()
	for row := band.row1; row < band.row2; row++ {
		for col := 0; col < cols; col++ {
			nextState := cellNextState(c.grid, row, col)
			if nextState {
				band.liveCells++
			}
			band.changed = band.changed || nextState != c.grid.Alive(row, col)
			next.Set(row, col, nextState)
		}
	}
}

//bands splits the grid rows between the workers
func (c *Colony) bands() []workBand {
	rows := c.grid.Rows()
	workers := c.options.Workers
	if workers <= 1 {
		return []workBand{{row1: 0, row2: rows}}
	}
	rowsPerWorker := rows / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*workers < rows {
		rowsPerWorker++
	}
	bands := make([]workBand, 0, workers)
	for row1 := 0; row1 < rows; row1 += rowsPerWorker {
		row2 := row1 + rowsPerWorker
		if row2 > rows {
			row2 = rows
		}
		bands = append(bands, workBand{row1: row1, row2: row2})
	}
	return bands
}

//manualTimer is used when the colony is driven by direct Advance calls only
type manualTimer struct {
	running bool
}

func (t *manualTimer) Start() { t.running = true }

func (t *manualTimer) Stop() { t.running = false }

func (t *manualTimer) Running() bool { return t.running }

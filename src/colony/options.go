package colony

import "time"

//Options represents the colony's configurable options
type Options struct {
	Width   int
	Height  int
	Density float64 //probability of a live cell for the random colony
	Workers int     //goroutines computing one generation, 1 computes it inline
	Seed    uint64  //seed for the random generator, 0 picks a time based seed
}

//Status represents the colony at concrete moment
type Status struct {
	Generation  int
	LiveCells   int
	Changed     bool //the last generation differs from the previous one
	AdvanceTime time.Duration
}

//default options
const (
	DefWidth   = 200
	DefHeight  = 150
	DefDensity = 0.2
	DefWorkers = 1

	//minimum rows for one worker
	DefMinRowsPerWorker = 3
)

var DefaultOptions = Options{
	Width:   DefWidth,
	Height:  DefHeight,
	Density: DefDensity,
	Workers: DefWorkers,
}

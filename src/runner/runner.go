package runner

import (
	"sync/atomic"
	"time"
)

//Advancer is the object the runner advances on every tick
type Advancer interface {
	Advance()
}

//Options represents the runner's configurable options
type Options struct {
	Interval time.Duration //interval between the ticks, 0 advances back to back
}

//DefInterval is the default interval between the ticks
const DefInterval = time.Millisecond * 100

var DefaultOptions = Options{
	Interval: DefInterval,
}

//Runner executes every command on its single main loop goroutine
//and drives the attached Advancer periodically while running.
//Runner implements colony.Timer; Start, Stop, Running and SetInterval must be called from a command.
type Runner struct {
	options   Options
	target    Advancer
	controlCh chan func()
	closeCh   chan bool
	doneCh    chan struct{}
	stopCh    chan struct{} //not nil while the ticker is running
	skipped   atomic.Int64
}

//New creates the runner and starts its main loop
func New(o *Options) *Runner {
	if o == nil {
		o = &DefaultOptions
	}
	r := &Runner{
		options:   *o,
		controlCh: make(chan func(), 16),
		closeCh:   make(chan bool, 1),
		doneCh:    make(chan struct{}),
	}
	go r.mainLoop()
	return r
}

//Attach sets the object advanced on every tick, should be called before the first Start
func (r *Runner) Attach(a Advancer) {
	r.target = a
}

//Do queues the command for the main loop, returns immediately
//commands must not call Do or DoSync themselves
func (r *Runner) Do(cmd func()) {
	r.controlCh <- cmd
}

//DoSync queues the command and waits until it is executed
func (r *Runner) DoSync(cmd func()) {
	done := make(chan struct{})
	r.controlCh <- func() {
		defer close(done)
		cmd()
	}
	<-done
}

//Close stops the ticker and the main loop, waits for the main loop to exit
func (r *Runner) Close() {
	r.closeCh <- true
	<-r.doneCh
}

//Start starts the ticker, does nothing when it is already running
func (r *Runner) Start() {
	if r.stopCh != nil {
		return
	}
	r.stopCh = make(chan struct{})
	go r.tick(r.stopCh, r.options.Interval)
}

//Stop stops the ticker, the ticks queued before are dropped
func (r *Runner) Stop() {
	if r.stopCh == nil {
		return
	}
	close(r.stopCh)
	r.stopCh = nil
}

//Running reports whether the ticker is running
func (r *Runner) Running() bool {
	return r.stopCh != nil
}

//Interval returns the interval between the ticks
func (r *Runner) Interval() time.Duration {
	return r.options.Interval
}

//SetInterval changes the interval, the running ticker is restarted
func (r *Runner) SetInterval(d time.Duration) {
	r.options.Interval = d
	if r.Running() {
		r.Stop()
		r.Start()
	}
}

//Skipped returns the number of ticks dropped because the previous advance was still pending
func (r *Runner) Skipped() int64 {
	return r.skipped.Load()
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (r *Runner) mainLoop() {
	defer close(r.doneCh)
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			r.Stop()
			return
		}
	}
}

//tick queues one advance per interval until stop is closed
//at most one advance is pending at any moment, ticks arriving meanwhile are skipped
func (r *Runner) tick(stop <-chan struct{}, interval time.Duration) {
	var tickCh <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tickCh = t.C
	}
	pending := make(chan struct{}, 1)
	for {
		if tickCh == nil {
			select {
			case pending <- struct{}{}:
			case <-stop:
				return
			}
		} else {
			select {
			case <-tickCh:
			case <-stop:
				return
			}
			select {
			case pending <- struct{}{}:
			default:
				r.skipped.Add(1)
				continue
			}
		}
		select {
		case r.controlCh <- func() { r.advance(stop, pending) }:
		case <-stop:
			return
		}
	}
}

//advance runs on the main loop
func (r *Runner) advance(stop <-chan struct{}, pending chan struct{}) {
	<-pending
	select {
	case <-stop:
		return
	default:
	}
	if r.target != nil {
		r.target.Advance()
	}
}

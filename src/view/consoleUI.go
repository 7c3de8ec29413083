package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"colonylife/src/colony"
	"colonylife/src/lifefile"
	"colonylife/src/runner"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//UIOptions represents the terminal UI configuration
type UIOptions struct {
	Density  float64 //success rate for populate and eradicate
	SavePath string  //file the colony is saved to
	Source   string  //file the colony was loaded from, informational
}

//frame is the colony copy rendered by the UI goroutine
type frame struct {
	grid    *colony.Grid
	status  colony.Status
	running bool
}

//ConsoleUI is the terminal presentation of the colony
//the colony is only touched from the runner's main loop, the UI renders copies
type ConsoleUI struct {
	c *colony.Colony
	r *runner.Runner
	g *gocui.Gui
	k []keyBindings

	options  UIOptions
	interval time.Duration
	frame    frame
	message  string

	liveFiller string
	deadFiller string
}

const (
	densityStep = 0.1
	minDensity  = 0.1
	maxDensity  = 1.0

	minInterval = 10 * time.Millisecond
	maxInterval = 2 * time.Second
)

var (
	runningStateDescr = map[bool]string{
		false: aurora.Colorize("waiting", aurora.BlueFg).String(),
		true:  aurora.Colorize("running", aurora.CyanFg).String(),
	}
)

func NewConsoleUI(r *runner.Runner, o UIOptions) *ConsoleUI {

	var err error
	t := ConsoleUI{
		r:          r,
		options:    o,
		interval:   r.Interval(),
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next generation", t.cmdNextGeneration, ""},
		{gocui.KeySpace, "SPACE", "Start/Stop", t.cmdToggle, ""},
		{'r', "R", "Reset", t.cmdReset, ""},
		{'p', "P", "Populate all", t.cmdPopulate, ""},
		{'e', "E", "Eradicate all", t.cmdEradicate, ""},
		{'w', "W", "New random colony", t.cmdGenerate, ""},
		{'s', "S", "Save", t.cmdSave, ""},
		{'+', "+", "Faster", t.cmdFaster, ""},
		{'-', "-", "Slower", t.cmdSlower, ""},
		{']', "]", "Denser", t.cmdDenser, ""},
		{'[', "[", "Sparser", t.cmdSparser, ""},
		{gocui.MouseLeft, "MOUSE L", "Populate the cell", t.cmdMousePopulate, "colony"},
		{gocui.MouseRight, "MOUSE R", "Eradicate the cell", t.cmdMouseEradicate, "colony"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//Register subscribes to the colony, must be called from the runner's main loop before Start
func (t *ConsoleUI) Register(c *colony.Colony) {
	t.c = c
	c.AddListener(t)
	t.frame = t.capture()
}

//Start runs the UI main loop until the user quits
func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) ColonyAdvanced(_ *colony.Colony) {
	t.refresh(t.capture())
}

func (t *ConsoleUI) ColonyChanged(_ *colony.Colony) {
	t.refresh(t.capture())
}

func (t *ConsoleUI) SimulationToggled() {
	t.refresh(t.capture())
}

//capture copies the colony state, called from the runner's main loop
func (t *ConsoleUI) capture() frame {
	return frame{grid: t.c.Grid(), status: t.c.Status(), running: t.c.Running()}
}

//refresh hands the frame over to the UI goroutine
func (t *ConsoleUI) refresh(f frame) {
	t.g.Update(func(g *gocui.Gui) error {
		t.frame = f
		t.renderField()
		t.renderConfiguration()
		t.renderStatus()
		return nil
	})
}

//notice shows the message in the status view, safe to call from any goroutine
func (t *ConsoleUI) notice(msg string) {
	t.g.Update(func(g *gocui.Gui) error {
		t.message = msg
		t.renderStatus()
		return nil
	})
}

func (t *ConsoleUI) renderField() {
	v, e := t.g.View("colony")
	if e != nil || t.frame.grid == nil {
		return
	}
	//the entire field is redrawing at once now
	v.Clear()

	a := t.frame.grid
	crop := false
	maxW, maxH := v.Size()
	if a.Cols() > maxW || a.Rows() > maxH {
		crop = true
	}

	var b bytes.Buffer

	for row := 0; row < a.Rows(); row++ {
		//discard the data outside the view area
		if row >= maxH {
			break
		}
		//line feed char
		if row != 0 {
			b.WriteByte(10)
		}
		if crop && row == (maxH-1) {
			b.WriteString(aurora.Red("The colony is larger than the viewing area").BgBlack().String())
			break
		}
		for col := 0; col < a.Cols() && col < maxW; col++ {
			if a.Alive(row, col) {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	v, e := t.g.View("status")
	if e != nil {
		return
	}
	s := t.frame.status
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.AdvanceTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[t.frame.running]))
	_, _ = fmt.Fprintln(v, t.renderProp("Skipped ticks", "%v", t.r.Skipped()))
	if t.message != "" {
		_, _ = fmt.Fprintln(v, "")
		_, _ = fmt.Fprintln(v, " "+t.message)
	}
}

func (t *ConsoleUI) renderConfiguration() {
	v, e := t.g.View("configuration")
	if e != nil || t.frame.grid == nil {
		return
	}
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", t.frame.grid.Cols(), t.frame.grid.Rows()))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Density", "%.1f", t.options.Density))
	if t.options.Source != "" {
		_, _ = fmt.Fprintln(v, t.renderProp("Source", "%v", t.options.Source))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 30
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("colony")
		return nil

	}
	if _, err := t.headerLayout(g, 3, "Colony of Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}
	t.renderConfiguration()

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	t.renderStatus()

	if v, err := g.SetView("colony", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Colony"
		v.Frame = true
	}
	t.renderField()

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextGeneration(_ *gocui.View) error {
	t.r.Do(t.c.Advance)
	return nil
}

func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	t.r.Do(t.c.ToggleTimer)
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.r.Do(t.c.Reset)
	return nil
}

func (t *ConsoleUI) cmdPopulate(_ *gocui.View) error {
	density := t.options.Density
	t.r.Do(func() { t.c.Populate(0, 0, t.c.Width(), t.c.Height(), density) })
	return nil
}

func (t *ConsoleUI) cmdEradicate(_ *gocui.View) error {
	density := t.options.Density
	t.r.Do(func() { t.c.Eradicate(0, 0, t.c.Width(), t.c.Height(), density) })
	return nil
}

func (t *ConsoleUI) cmdGenerate(_ *gocui.View) error {
	density := t.options.Density
	t.r.Do(func() { t.c.Generate(t.c.Height(), t.c.Width(), density) })
	return nil
}

func (t *ConsoleUI) cmdSave(_ *gocui.View) error {
	if t.options.SavePath == "" {
		t.message = aurora.Red("no output file configured").String()
		t.renderStatus()
		return nil
	}
	path := t.options.SavePath
	t.r.Do(func() {
		written, err := lifefile.Save(path, t.c.Grid())
		if err != nil {
			t.notice(aurora.Red(err.Error()).String())
			return
		}
		t.notice("saved to " + written)
	})
	return nil
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	return t.setInterval(t.interval / 2)
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	return t.setInterval(t.interval * 2)
}

func (t *ConsoleUI) setInterval(d time.Duration) error {
	if d < minInterval {
		d = minInterval
	}
	if d > maxInterval {
		d = maxInterval
	}
	t.interval = d
	t.r.Do(func() { t.r.SetInterval(d) })
	t.renderConfiguration()
	return nil
}

func (t *ConsoleUI) cmdDenser(_ *gocui.View) error {
	return t.setDensity(t.options.Density + densityStep)
}

func (t *ConsoleUI) cmdSparser(_ *gocui.View) error {
	return t.setDensity(t.options.Density - densityStep)
}

func (t *ConsoleUI) setDensity(d float64) error {
	if d < minDensity {
		d = minDensity
	}
	if d > maxDensity {
		d = maxDensity
	}
	t.options.Density = d
	t.renderConfiguration()
	return nil
}

func (t *ConsoleUI) cmdMousePopulate(v *gocui.View) error {
	cx, cy := v.Cursor()
	density := t.options.Density
	t.r.Do(func() { t.c.Populate(cx, cy, 1, 1, density) })
	return nil
}

func (t *ConsoleUI) cmdMouseEradicate(v *gocui.View) error {
	cx, cy := v.Cursor()
	density := t.options.Density
	t.r.Do(func() { t.c.Eradicate(cx, cy, 1, 1, density) })
	return nil
}

package colony

//Listener is the interface to any object who wants to follow the colony changes
type Listener interface {
	//ColonyAdvanced is called after a generation step or a cell edit
	ColonyAdvanced(c *Colony)
	//ColonyChanged is called when a new grid was loaded, the dimensions may differ
	ColonyChanged(c *Colony)
	//SimulationToggled is called when the timer was started or stopped
	SimulationToggled()
}

//Notifier keeps the listeners in registration order
type Notifier struct {
	colony    *Colony
	listeners []Listener
}

//AddListener registers l unless it is already registered
func (n *Notifier) AddListener(l Listener) {
	if n.index(l) >= 0 {
		return
	}
	n.listeners = append(n.listeners, l)
}

//RemoveListener unregisters l and reports whether it was registered
func (n *Notifier) RemoveListener(l Listener) bool {
	i := n.index(l)
	if i < 0 {
		return false
	}
	n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
	return true
}

//Listeners returns the number of registered listeners
func (n *Notifier) Listeners() int {
	return len(n.listeners)
}

//Notify calls the selected events for every listener
//each listener gets advanced, changed and toggled in that order before the next listener is called
func (n *Notifier) Notify(advanced bool, changed bool, toggled bool) {
	for _, l := range n.listeners {
		if advanced {
			l.ColonyAdvanced(n.colony)
		}
		if changed {
			l.ColonyChanged(n.colony)
		}
		if toggled {
			l.SimulationToggled()
		}
	}
}

func (n *Notifier) index(l Listener) int {
	for i, v := range n.listeners {
		if v == l {
			return i
		}
	}
	return -1
}

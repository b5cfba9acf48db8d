package observe

type discard struct{}

// Discard returns an Observer that drops every event.
func Discard() Observer { return discard{} }

func (discard) Event(Event)                             {}
func (discard) Progress(string, int, int)               {}
func (d discard) WithFields(map[string]string) Observer { return d }

type multi []Observer

// Multi fans every event out to each non-nil observer in order.
func Multi(observers ...Observer) Observer {
	var m multi
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	if len(m) == 0 {
		return Discard()
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func (m multi) Event(e Event) {
	for _, o := range m {
		o.Event(e)
	}
}

func (m multi) Progress(phase string, current, total int) {
	for _, o := range m {
		o.Progress(phase, current, total)
	}
}

func (m multi) WithFields(fields map[string]string) Observer {
	out := make(multi, len(m))
	for i, o := range m {
		out[i] = o.WithFields(fields)
	}
	return out
}

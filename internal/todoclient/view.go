package todoclient

import (
	"context"
	"sync"
)

// ViewModel is the state a front-end renders: the items of the last
// successful reload, the text of the input field and alerts not yet shown.
// It is safe for concurrent use; concurrent reloads replace the items whole,
// so the last one to finish wins.
type ViewModel struct {
	mu     sync.Mutex
	items  []Todo
	input  string
	alerts []string
	loaded bool
	fresh  bool
}

func NewViewModel() *ViewModel {
	return &ViewModel{}
}

// View is a point-in-time copy of a ViewModel.
type View struct {
	Items  []Todo
	Input  string
	Alerts []string
	Loaded bool
}

func (v *ViewModel) Replace(items []Todo) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.items = append(make([]Todo, 0, len(items)), items...)
	v.loaded = true
	v.fresh = true
}

func (v *ViewModel) Items() []Todo {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append(make([]Todo, 0, len(v.items)), v.items...)
}

func (v *ViewModel) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = text
}

func (v *ViewModel) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *ViewModel) ClearInput() {
	v.SetInput("")
}

// Alert queues message until the next Take or DrainAlerts. ViewModel is
// therefore usable as an Alerter.
func (v *ViewModel) Alert(_ context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *ViewModel) DrainAlerts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	alerts := v.alerts
	v.alerts = nil
	return alerts
}

// Stale reports whether the items have already been shown since the last
// reload, or were never loaded.
func (v *ViewModel) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.fresh
}

// Take returns the current view for display. Pending alerts are handed over
// and the items are marked as shown.
func (v *ViewModel) Take() View {
	v.mu.Lock()
	defer v.mu.Unlock()

	view := View{
		Items:  append(make([]Todo, 0, len(v.items)), v.items...),
		Input:  v.input,
		Alerts: v.alerts,
		Loaded: v.loaded,
	}
	v.alerts = nil
	v.fresh = false
	return view
}

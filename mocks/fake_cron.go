//+build !release

package mocks

import (
	"sync"
)

// FakeCron records scheduled functions so tests can trigger them manually.
type FakeCron struct {
	sync.Mutex
	Specs []string
	funcs map[int]func()
	next  int
}

// AddFunc stores function.
func (f *FakeCron) AddFunc(spec string, cmd func()) (int, error) {
	f.Lock()
	defer f.Unlock()

	f.next++
	f.funcs[f.next] = cmd
	f.Specs = append(f.Specs, spec)
	return f.next, nil
}

// RemoveFunc removes stored function.
func (f *FakeCron) RemoveFunc(id int) {
	f.Lock()
	defer f.Unlock()

	delete(f.funcs, id)
}

// Stop removes all stored functions.
func (f *FakeCron) Stop() {
	f.Lock()
	defer f.Unlock()

	f.funcs = make(map[int]func())
}

// Fire invokes all stored functions.
func (f *FakeCron) Fire() {
	f.Lock()
	funcs := make([]func(), 0, len(f.funcs))
	for _, v := range f.funcs {
		funcs = append(funcs, v)
	}
	f.Unlock()

	for _, v := range funcs {
		v()
	}
}

// Len returns number of scheduled functions.
func (f *FakeCron) Len() int {
	f.Lock()
	defer f.Unlock()

	return len(f.funcs)
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *FakeCron {
	return &FakeCron{
		funcs: make(map[int]func()),
	}
}

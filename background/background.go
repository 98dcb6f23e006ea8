// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run processes in the background
//
// a process is a type that implements the Run method; all processes
// of a set share the same args value and are stopped together
package background

// T - handle for a started set of processes
type T struct {
	shutdown chan struct{}
	finished []chan struct{}
}

// Process - type signature for a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
// all with the same args value
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make(chan struct{}),
		finished: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		finished := make(chan struct{})
		register.finished[i] = finished
		go func(p Process, finished chan struct{}) {
			p.Run(args, register.shutdown)
			close(finished)
		}(p, finished)
	}

	return register
}

// Stop - signal shutdown and wait for all processes to return
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	close(t.shutdown)

	// wait for finished
	for _, finished := range t.finished {
		<-finished
	}
}

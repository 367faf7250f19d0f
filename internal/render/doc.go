// Package render coordinates frame production for the editor's two display
// modes. Playback pulls sequential frames on a fixed cadence and drops ticks
// when the worker is busy; scrubbing extracts random-access frames through a
// latest-wins controller and caches the results for instant revisits.
//
// All decode, evaluate, and composite work runs on one worker goroutine, so
// renders are strictly serial. A generation counter invalidates in-flight
// work across seeks instead of interrupting it.
package render

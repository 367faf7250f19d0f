// Command kinescope inspects recordings and exercises the post-production
// engine from the terminal: event counts, evaluated frame states, smoothed
// cursor paths, and a render coordinator simulation.
package main

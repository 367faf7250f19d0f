// Package keystroke builds keystroke-overlay timeline segments from the raw
// key events of a recording session: chording concurrent presses into a
// single label, holding the label on screen long enough to read, and styling
// the overlay.
package keystroke

// Package source defines the frame-source contracts the engine consumes and
// the constant-frame-rate adapter that turns a variable-rate sequential
// source into a gap-free stream keyed by timeline time.
//
// Decoding itself lives outside this module; implementations of the two
// interfaces wrap whatever demuxer/decoder the host application uses.
package source

// Package cursor turns the sparse, irregular mouse-sample stream captured
// during a recording into a smooth per-output-frame path.
//
// Two composable strategies are provided. Resampling runs a Gaussian
// pre-filter over the raw positions and then fills a Catmull-Rom spline sample
// per output frame interval; the spring follower instead steps an analytically
// solved damped harmonic oscillator toward the raw samples. The idle
// stabilizer composes with either to freeze stationary jitter without a
// visible snap when motion resumes.
package cursor

// Package analysis inspects sampled lab runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a series
//   - [NewPhasePortrait]: two columns of a run plotted against each other
//
// Spectra use go-dsp's real FFT, which accepts any length.
package analysis

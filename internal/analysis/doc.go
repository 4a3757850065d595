// Package analysis provides spectral tools for synthesized fields.
//
// The package works on one-dimensional reductions of a realization:
//
//   - [PowerSpectrum]: windowed power spectrum of an evenly spaced profile
//   - [Spectrum.Dominant]: strongest non-DC spatial frequency
//   - [ModeAmplitudes]: per-mode electric and magnetic weight magnitudes
//
// # Spatial Frequencies
//
// Frequencies are in cycles per metre. A profile sampled every dx metres
// resolves up to 1/(2 dx):
//
//	ps, err := analysis.PowerSpectrum(metrics.Means(profile), grid.Dx)
//	if err != nil {
//	    return err
//	}
//	f, p := ps.Dominant()
package analysis

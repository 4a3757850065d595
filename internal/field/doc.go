// Package field synthesizes a stochastic electromagnetic field over a 3D grid.
//
// The pipeline mirrors the physical construction step by step:
//
//   - [Sample]: discretize the frequency axis into N modes and derive the
//     wavevector magnitude, random phase and amplitudes of each mode
//   - [GenerateWeights]: draw per-axis random polarization weights
//   - [NewGrid]: build the coordinate axes of the sampled region
//   - [Synthesizer]: superpose the N sinusoidal modes at every grid point
//   - [EnergyDensity]: combine the two scalar fields into E² + B²
//
// [Run] wires the steps together from validated [Params].
//
// # Randomness
//
// Every random draw goes through a [Source]. [NewSource] returns a seeded
// source backed by gonum's distributions; tests substitute [FixedSource] to
// make synthesis reproducible bit for bit.
//
// # Approximation
//
// The three axis contributions of each field are summed into a single scalar
// per grid point instead of being kept as a vector. Energy density therefore
// uses unit permittivity and permeability and is not a physical quantity.
//
// # Concurrency
//
// [Synthesizer] partitions the grid across worker goroutines. Each point is
// accumulated in the same mode order regardless of the partition, so results
// are identical for any worker count.
package field

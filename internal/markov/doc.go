// Package markov implements the discrete-time Markov chain that produces
// the simulated traffic dataset.
//
// A Chain holds an ordered state list and a row-stochastic transition
// matrix. Run evolves a starting distribution across the simulated day
// and emits one observation per state per sampled hour, which the traffic
// package's CSV schema then carries to the report pipeline.
package markov

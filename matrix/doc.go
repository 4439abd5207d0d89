// Package matrix provides Dense, a row-major dense matrix used as backing
// storage for the solver's cost data (pdp.Graph's distance matrix,
// instance parsing).
//
// Dense validates shape and index bounds on every access and, unless
// disabled, rejects NaN/Inf entries on ingestion. View carves a
// non-owning window into an existing Dense for submatrix access without
// copying.
package matrix

// Package pdptw is a single-vehicle pickup-and-delivery routing solver:
// warm-start construction heuristics, an on-the-fly cut separation engine
// for branch-and-cut, and the orchestration that wires both into an
// external MILP engine.
//
// Subpackages:
//
//	pdp/        — immutable instance model: cost matrix, capacity, demand, pairs
//	path/       — ordered node sequences with the shared insertion primitive
//	heuristics/ — best-insertion, max-regret, ordered-request, k-opt
//	cuts/       — feasibility (min-cut) and subtour/precedence (tabu search) separators
//	solver/     — warm-start injection, callback wiring, counters
//	instance/   — text instance file parsing
//	cmd/pdptw/  — CLI entry point
//
// The remaining top-level packages (core, flow, matrix) are the
// general-purpose graph toolkit the solver is built on top of.
package pdptw

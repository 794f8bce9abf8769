// Package simplex solves linear programs in standard equality form
//
//	maximize   cᵗx + z
//	subject to Ax = b, x >= 0
//
// with the two-phase primal simplex method. TwoPhase returns one of
// *Optimal, *Unbounded or *Infeasible, each carrying a certificate that
// Verify can check without re-running the algorithm.
//
// The building blocks are exported as well: CanonicalForm rewrites a model
// relative to a basis, Simplex runs Phase II from a known feasible basis and
// PhaseI looks for one. Pivoting uses Bland's rule for both the entering and
// the leaving column.
package simplex

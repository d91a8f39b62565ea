// Package em refines a set of one-dimensional Gaussian components with
// expectation maximization and merges components that cannot be told apart.
//
// Each iteration:
//
//  1. E-step: every value is scored against each component's normal density.
//     A component's weight is the share of values for which it scores
//     highest; components owning 1% of the values or less drop out.
//     Responsibilities are the weighted densities normalized per value.
//  2. M-step: means and (population) standard deviations are recomputed from
//     the responsibilities; components left without responsibility or spread
//     are removed.
//  3. Merge (optional): adjacent components whose curves cross near the top
//     of the lower peak, cross within a third of a σ of a mean, or nest inside
//     each other are averaged into one.
//
// Components are kept sorted by mean and rounded to 3 decimals. Iteration
// stops when the state repeats (the previous one or any of a short history)
// or after MaxIterations.
package em

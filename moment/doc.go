// Package moment implements an online higher-order t-test estimator.
//
// An Accumulator maintains, in a single streaming pass, the per-class
// central-sum statistics needed to compute the univariate t-test of orders
// 1..d between two labeled classes of leakage traces, following the
// one-pass recurrence of https://eprint.iacr.org/2015/207.
package moment

// Package cutoff places the boundaries between fuzzy sets along a value axis.
//
// Given K proportions p_1..p_K summing to 1, every row of a matrix is split into
// K+1 cutoffs C0..CK: C0 and CK are the smallest and largest finite values of
// the row, and each interior cutoff C_k is read from an evenly spaced 1001-point
// grid over [floor(min), ceil(max)] at position int(1000·(p_1+…+p_k)).
//
// Rows whose cutoffs collapse (two or more equal neighbours) are repaired by
// spreading each flat run linearly between the nearest distinct cutoffs around
// it, so the result is non-decreasing and, where the data allows, strictly
// increasing at three decimals.
//
// Complexity: O(r·(c + K)) time for an r×c matrix, O(K) extra space per row.
package cutoff

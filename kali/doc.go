// Package kali multiplies unsigned integers on a simulated memristor
// crossbar using only NOR, NOT and COPY primitives.
//
// A multiplication runs through five states:
//
//	INIT -> PARTIAL_PRODUCTS -> PARTITIONED -> REDUCED -> SUMMED
//
// Inputs are mapped into the array, every aᵢ·bⱼ is computed with three
// primitives, the partial products are grouped by weight i+j, each group is
// compressed to at most two bits and a final stage leaves one bit per
// weight. Latency and energy accumulate on one shared Crossbar.
//
// The default SchemeSumOnly keeps only the sum output of every compression
// and of the final combination, so carries never reach the next weight and
// the product is generally not A·B. SchemeCarrySave routes carries and
// yields A·B exactly.
package kali

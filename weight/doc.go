// Package weight converts a margin of defeat into a loss-edge weight.
//
// A Transform is a tagged variant: its Kind selects the curve and the struct
// carries that curve's parameters, so a configuration is picked once and then
// applied to every loss in the matrix.
//
// Kinds:
//
//	Binary     – every loss weighs 1; the margin is ignored.
//	Linear     – weight = margin.
//	Capped     – weight = min(margin, Cap); blowouts stop counting past Cap.
//	Logistic   – weight = max(0, Y0 + (L−Y0)·(2σ(K·(margin−X0)) − 1)).
//	             At margin == X0 the weight is exactly Y0; it tends to L for
//	             very large margins.
//	Possession – weight = ⌊margin/8⌋ + ⌊(margin mod 8)/3⌋, the number of
//	             touchdown-plus-conversion and field-goal scores needed to
//	             cover the margin.
//
// Errors (sentinel):
//
//	ErrInvalidInput     – negative, NaN or infinite margin.
//	ErrInvalidParameter – parameters that leave the curve undefined
//	                      (Cap ≤ 0, K ≤ 0, L == Y0, non-finite values).
//
// Example:
//
//	t := weight.LogisticTransform(0.2, 14, 2, 1)
//	if err := t.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	w, _ := t.Weight(14) // w == 1
package weight

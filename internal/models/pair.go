package models

// Pair is an immutable two-element association. It is comparable whenever
// both element types are, so it can serve as a map key.
type Pair[A, B any] struct {
	first  A
	second B
}

// PairOf creates a new Pair from the two values
func PairOf[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{first: first, second: second}
}

// First returns the first element of the pair
func (p Pair[A, B]) First() A {
	return p.first
}

// Second returns the second element of the pair
func (p Pair[A, B]) Second() B {
	return p.second
}

package question

// Negator rewrites a fact into a false statement. Implementations return
// ok=false when they cannot produce a negation for the fact.
type Negator interface {
	Negate(fact string) (statement string, ok bool)
}

// NegatorFunc adapts a function to the Negator interface.
type NegatorFunc func(fact string) (string, bool)

// Negate calls f(fact).
func (f NegatorFunc) Negate(fact string) (string, bool) {
	return f(fact)
}

package repository

// Repository remembers which entry keys have already been announced.
// Keys are never removed once added.
type Repository interface {
	Has(key string) bool
	Add(key string)
	// MarkIfNew adds key and reports true when it was not present before.
	MarkIfNew(key string) bool
	Len() int
}

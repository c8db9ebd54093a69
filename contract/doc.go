// Package contract checks, field by field, that a type's Equal, Hash,
// String and accessor methods behave.
//
// Verifiers are configured fluently and run with Verify, or with Check
// inside a test:
//
//	func TestPointContracts(t *testing.T) {
//		contract.Equality[*Point]().ExcludeFields("cache").Check(t)
//		contract.Accessors[*Point]().Strict(true).Check(t)
//		contract.Stringer[*Point]().Check(t)
//	}
//
// The type under test is a pointer to a struct. Equality expects a method
// Equal(other) bool whose parameter accepts the type, and a Hash or
// HashCode method returning an integer. Field values come from a registry
// of generators that never return the same value twice in a row; types the
// registry cannot build are added with WithComplexTypeSupplier and the
// helpers in package factory.
//
// Every run draws from a seeded source. The seed is logged and attached to
// each Violation; pass it back through WithSeed or PINTO_SEED to replay a
// failure.
package contract

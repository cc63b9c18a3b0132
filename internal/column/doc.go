// Package column converts single flat-file fields between text and typed
// values.
//
// A [Definition] is one named, typed field of a delimited or fixed-width
// record. Every realization shares the same pipelines:
//
//	Parse:  preprocessor -> null check -> trim -> type-specific parse
//	Format: null -> type check -> type-specific render
//
// Parsing never reports a partial value: it returns either a value, nil for
// a recognized null representation, or a *[FormatError]. Formatting fails
// only with a *[TypeMismatchError].
//
// Columns are built once through their constructors (NewDouble, NewInt32,
// ...) and are immutable afterwards, so a single column may be shared by any
// number of goroutines processing rows concurrently.
package column

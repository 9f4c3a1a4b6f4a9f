package value

import "errors"

// errNonStringKey and errUnorderedKeys are the map-traversal failures a
// caller that decodes a Map value (rather than skipping it) must detect
// itself, per §4.2: the parser does not enforce key ordering on its own.
var (
	errNonStringKey  = errors.New("value: map key is not a string")
	errUnorderedKeys = errors.New("value: unordered or duplicate map keys")
)

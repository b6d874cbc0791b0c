package observable

import "errors"

var (
	// ErrUnknownAttr indicates a model has no attribute of the requested name.
	ErrUnknownAttr = errors.New("observable: unknown attribute")

	// ErrType indicates a value cannot be stored in the attribute's type.
	ErrType = errors.New("observable: value has wrong type")
)

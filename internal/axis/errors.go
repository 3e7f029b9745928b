package axis

import "errors"

var (
	// ErrEmptyCatalog is returned when an arrangement is needed but none
	// was registered.
	ErrEmptyCatalog = errors.New("axis: arrangement catalog is empty")
	// ErrBadArrangement is returned when an arrangement's label interval
	// has no positive representable size.
	ErrBadArrangement = errors.New("axis: arrangement label interval is not positive")
)

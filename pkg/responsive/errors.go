package responsive

import "errors"

var (
	// ErrNotTable is returned when a controller is attached to anything but
	// a table element.
	ErrNotTable = errors.New("responsive table plugin should be used on tables only")
	// ErrInvalidSpan reports a colspan that is not a positive integer.
	ErrInvalidSpan = errors.New("invalid colspan")
	// ErrNoHeader is returned for tables without a header row.
	ErrNoHeader = errors.New("table has no header row")
	// ErrInvalidSettings reports an unusable settings value.
	ErrInvalidSettings = errors.New("invalid settings")
)

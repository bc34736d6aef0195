package convertor

import "errors"

// ErrUnsupportedFile indicates a variables file whose extension maps to no dialect
var ErrUnsupportedFile = errors.New("unsupported variables file")

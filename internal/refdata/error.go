package refdata

import "fmt"

// DataError reports reference data that could not be loaded, parsed, or
// validated. Callers must treat it as fatal for calculations until a
// reload succeeds; no partial catalog is ever returned alongside one.
type DataError struct {
	Source string // which table or file failed
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("reference data unavailable (%s): %v", e.Source, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func dataErr(source, format string, args ...any) *DataError {
	return &DataError{Source: source, Err: fmt.Errorf(format, args...)}
}

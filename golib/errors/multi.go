package errors

import "strings"

// Errors collects the problems found while checking a value so they can be
// reported together. A non-nil Errors always holds at least one error.
type Errors interface {
	error
	// Slice returns a copy of the collected errors.
	Slice() []error
	// Len is always > 0.
	Len() int
}

type errorList []error

func (l errorList) Slice() []error { return append([]error(nil), l...) }

func (l errorList) Len() int { return len(l) }

func (l errorList) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Is reports whether any of the collected errors matches target.
func (l errorList) Is(target error) bool {
	for _, err := range l {
		if Is(err, target) {
			return true
		}
	}
	return false
}

// Append adds err to errs. A nil err leaves errs unchanged; a multi-error is
// flattened.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}
	var list errorList
	if errs != nil {
		list = errorList(errs.Slice())
	}
	if multi, ok := err.(Errors); ok {
		return append(list, multi.Slice()...)
	}
	return append(list, err)
}

// AsError converts errs to a plain error, keeping a nil Errors nil.
func AsError(errs Errors) error {
	if errs == nil {
		return nil
	}
	return errs
}

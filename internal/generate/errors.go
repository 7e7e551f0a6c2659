package generate

import "fmt"

// StatusError reports a non-success HTTP status from a backend. The fallback
// policy inspects it to distinguish, for example, a hosted model that is
// still loading from one that is broken.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

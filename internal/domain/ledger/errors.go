package ledger

import "fmt"

// ValidationError marks a client-caused failure: malformed identifiers,
// unknown account types, unbalanced journal lines, unknown accounts on
// balance lookups. Handlers surface it as HTTP 400.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

// EngineRejectionError carries a non-success, non-replay result code from a
// TigerBeetle create call. Handlers surface it as HTTP 400 with the engine's
// result embedded in the message. The facade never retries these.
type EngineRejectionError struct {
	Op     string // "account creation" or "transfer creation"
	Result string // engine result code, e.g. "exists"
}

func (e EngineRejectionError) Error() string {
	return fmt.Sprintf("TigerBeetle %s failed: %s", e.Op, e.Result)
}

package domain

// Outcome tags the business result of a service operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeNoPermission
	OutcomeAlreadyExists
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNoPermission:
		return "no_permission"
	case OutcomeAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Result is the return value of every resource service operation.
// Expected denials are encoded in Outcome; the error return of a service is
// reserved for validation and infrastructure failures. Value is only
// meaningful when Outcome is OutcomeOK.
type Result[T any] struct {
	Value   T
	Outcome Outcome
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: OutcomeOK}
}

func NotFound[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeNotFound}
}

func NoPermission[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeNoPermission}
}

func AlreadyExists[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeAlreadyExists}
}

// IsOK reports whether the operation succeeded.
func (r Result[T]) IsOK() bool {
	return r.Outcome == OutcomeOK
}

// Empty is the value type for operations that return nothing on success.
type Empty struct{}

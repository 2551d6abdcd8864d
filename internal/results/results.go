// Package results provides the generic operation result type shared by all
// service layers. An operation either succeeds with a payload, fails with a
// domain failure payload, or errors at the infrastructure level (the error
// return alongside the result).
package results

// OperationResult carries either a success payload or a domain failure
// payload. At most one side is set.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult builds a result with the success side set.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult builds a result with the failure side set.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the success side is set.
func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether the failure side is set.
func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }

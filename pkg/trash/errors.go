package trash

import (
	"fmt"

	"trash/internal/core/apperror"
	"trash/pkg/trash/changeset"
)

// InvalidChangesetError is the panic value of MustDiscard and MustRestore when
// the changeset fails validation. It unwraps to an INVALID_CHANGESET AppError
// whose cause is the changeset's VALIDATION_ERROR.
type InvalidChangesetError[T any] struct {
	Action    Action
	Changeset *changeset.Changeset[T]
}

func (e *InvalidChangesetError[T]) Error() string {
	return fmt.Sprintf("could not perform %s because changeset is invalid: %v",
		e.Action, changeset.NewInvalidError(e.Changeset))
}

func (e *InvalidChangesetError[T]) Unwrap() error {
	return apperror.NewInvalidChangeset(string(e.Action)).WithCause(e.Changeset.Err())
}

// IsNotFound reports a required read that matched nothing.
func IsNotFound(err error) bool {
	return apperror.IsNotFound(err)
}

// IsMultipleResults reports a single-result read that matched several rows.
func IsMultipleResults(err error) bool {
	return apperror.IsMultipleResults(err)
}

// IsConfiguration reports a Repo built without a DataStore.
func IsConfiguration(err error) bool {
	return apperror.IsConfiguration(err)
}

// IsInvalid reports a changeset rejected for validation errors, whether
// returned by Discard/Restore or recovered from their Must variants.
func IsInvalid(err error) bool {
	return apperror.IsValidation(err) || apperror.HasCode(err, apperror.CodeInvalidChangeset)
}

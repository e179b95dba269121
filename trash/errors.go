package trash

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrEntryNotFound   = errors.New("trash: entry not found")
	ErrNameInvalid     = errors.New("trash: entry name is invalid")
	ErrRestoreConflict = errors.New("trash: an active document already uses this slug")
)

const (
	codeEntryNotFound   = "TRASH_ENTRY_NOT_FOUND"
	codeNameInvalid     = "TRASH_NAME_INVALID"
	codeRestoreConflict = "TRASH_RESTORE_CONFLICT"
	codeMoveFailed      = "TRASH_MOVE_FAILED"
)

func entryNotFoundError(name string) error {
	return goerrors.Wrap(ErrEntryNotFound, goerrors.CategoryNotFound, fmt.Sprintf("trash entry %q not found", name)).
		WithTextCode(codeEntryNotFound)
}

func nameInvalidError(name string) error {
	return goerrors.Wrap(ErrNameInvalid, goerrors.CategoryValidation, fmt.Sprintf("invalid trash entry name %q", name)).
		WithTextCode(codeNameInvalid)
}

func restoreConflictError(slug string) error {
	return goerrors.Wrap(ErrRestoreConflict, goerrors.CategoryConflict, fmt.Sprintf("cannot restore: slug %q is in use", slug)).
		WithTextCode(codeRestoreConflict)
}

func moveError(name string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryOperation, fmt.Sprintf("moving trash entry %q failed", name)).
		WithTextCode(codeMoveFailed)
}

// IsNotFound reports whether err represents a missing trash entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) || goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsConflict reports whether err represents a restore collision with an
// active document.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRestoreConflict) || goerrors.IsCategory(err, goerrors.CategoryConflict)
}

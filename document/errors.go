package document

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrNotFound      = errors.New("document: not found")
	ErrTitleRequired = errors.New("document: title is required to create a document")
	ErrSlugInvalid   = errors.New("document: slug contains invalid characters")
	ErrSlugExists    = errors.New("document: slug already exists")
)

const (
	codeNotFound      = "DOCUMENT_NOT_FOUND"
	codeTitleRequired = "DOCUMENT_TITLE_REQUIRED"
	codeSlugInvalid   = "DOCUMENT_SLUG_INVALID"
	codeSlugConflict  = "DOCUMENT_SLUG_CONFLICT"
	codeWriteFailed   = "DOCUMENT_WRITE_FAILED"
)

func notFoundError(slug string) error {
	return goerrors.Wrap(ErrNotFound, goerrors.CategoryNotFound, fmt.Sprintf("document %q not found", slug)).
		WithTextCode(codeNotFound)
}

func titleRequiredError() error {
	return goerrors.Wrap(ErrTitleRequired, goerrors.CategoryValidation, "a title is required when no slug is supplied").
		WithTextCode(codeTitleRequired)
}

func slugInvalidError(value string, cause error) error {
	base := ErrSlugInvalid
	if cause != nil {
		base = fmt.Errorf("%w: %v", ErrSlugInvalid, cause)
	}
	return goerrors.Wrap(base, goerrors.CategoryValidation, fmt.Sprintf("cannot derive a slug from %q", value)).
		WithTextCode(codeSlugInvalid)
}

func slugConflictError(slug string) error {
	return goerrors.Wrap(ErrSlugExists, goerrors.CategoryConflict, fmt.Sprintf("a document with slug %q already exists", slug)).
		WithTextCode(codeSlugConflict)
}

func writeError(slug string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryOperation, fmt.Sprintf("writing document %q failed", slug)).
		WithTextCode(codeWriteFailed)
}

// IsNotFound reports whether err represents a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsConflict reports whether err represents a slug collision.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlugExists) || goerrors.IsCategory(err, goerrors.CategoryConflict)
}

// IsValidation reports whether err represents rejected input.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

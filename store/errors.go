package store

import (
	"errors"
	"fmt"
)

// Not-found errors stay distinct per resource so handlers can tell a missing
// post apart from a missing comment or photo inside an existing post.
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ValidationError reports a required field missing from a create request.
// The caller can fix the input and retry.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrPhotoNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrCategoryNotFound)
}

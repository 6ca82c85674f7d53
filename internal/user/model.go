package user

import "github.com/shareit-go/shareit/internal/pkg/apperror"

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrNameRequired     = apperror.InvalidArgument("name is required")
	ErrEmailRequired    = apperror.InvalidArgument("email is required")
)

// User is a marketplace participant: owner, booker, requestor or comment author.
type User struct {
	ID    int64
	Name  string
	Email string
}

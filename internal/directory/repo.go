package directory

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type Repo interface {
	GetByID(ctx context.Context, userID string) (User, error)
	List(ctx context.Context) ([]User, error)
}

package queries

import (
	"context"

	"resortly/internal/infra"
	"resortly/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	users UserReadStore
}

func NewUserQueries(users UserReadStore) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, id uuid.UUID) (*UserView, error) {
	view, err := q.users.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

package auth

import (
	"context"

	"serwer-dav/internal/models"
)

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// BasicVerifier sprawdza dane z nagłówka Basic Auth względem tabeli users.
// Brak jakichkolwiek wbudowanych kont - konto musi istnieć w bazie.
type BasicVerifier struct {
	users UserStore
}

func NewBasicVerifier(users UserStore) *BasicVerifier {
	return &BasicVerifier{users: users}
}

func (v *BasicVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := v.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return CheckPasswordHash(password, user.PasswordHash), nil
}

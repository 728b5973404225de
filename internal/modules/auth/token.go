package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/georgemunganga/vendor-api/internal/modules/user"
)

// TokenUser is the identity payload embedded in every token.
type TokenUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	OrgID *int64 `json:"org_id,omitempty"`
}

// Claims are the JWT claims understood by the API.
type Claims struct {
	User *TokenUser `json:"user"`
	jwt.StandardClaims
}

func (u *TokenUser) identity() *Identity {
	return &Identity{
		UserID: u.ID,
		OrgID:  u.OrgID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}

// TokenIssuer signs HS256 tokens for registered users.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer. Tokens expire after ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for u. The password hash never leaves the user record.
func (i *TokenIssuer) Issue(u *user.User) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("token signing secret is not configured")
	}

	issuedAt := i.now()
	claims := &Claims{
		User: &TokenUser{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
			OrgID: u.OrgID,
		},
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(i.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

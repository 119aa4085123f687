package entitlement

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "tailscan/pkg/domain-errors"
)

// Claims are the entitlement token claims.
type Claims struct {
	TailNumber    string `json:"tail_number,omitempty"`
	PaymentStatus string `json:"payment_status"`
	Plan          string `json:"plan"`
	jwt.RegisteredClaims
}

// Entitlement converts validated claims.
func (c *Claims) Entitlement() Entitlement {
	return Entitlement{
		PaymentStatus: ParsePaymentStatus(c.PaymentStatus),
		Plan:          ParsePlan(c.Plan),
		TailNumber:    c.TailNumber,
	}
}

// TokenService issues and validates HS256 entitlement tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	audience   string
	now        func() time.Time
}

func NewTokenService(signingKey, issuer, audience string) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		now:        time.Now,
	}
}

// Issue signs a token granting e for expiresIn.
func (s *TokenService) Issue(e Entitlement, expiresIn time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TailNumber:    e.TailNumber,
		PaymentStatus: string(e.PaymentStatus),
		Plan:          string(e.Plan),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Validate parses and verifies a token.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

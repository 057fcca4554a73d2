package mailer

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Action link types accepted by the auth-link endpoint.
const (
	LinkSignup      = "signup"
	LinkMagicLink   = "magiclink"
	LinkRecovery    = "recovery"
	LinkEmailChange = "email_change"
)

// ValidLinkType reports whether t names a known action link type.
func ValidLinkType(t string) bool {
	switch t {
	case LinkSignup, LinkMagicLink, LinkRecovery, LinkEmailChange:
		return true
	}
	return false
}

// LinkBuilder mints short-lived signed action links (confirm email, recover
// password, one-time login) pointing at the frontend.
type LinkBuilder struct {
	secret  []byte
	issuer  string
	baseURL string
	ttl     time.Duration
}

func NewLinkBuilder(secret, issuer, baseURL string) *LinkBuilder {
	return &LinkBuilder{secret: []byte(secret), issuer: issuer, baseURL: baseURL, ttl: time.Hour}
}

type linkClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Email   string `json:"email"`
}

// Build returns the full action URL for the given type and email. An
// optional redirectTo is carried as a query parameter for the frontend to
// honor after the action completes.
func (b *LinkBuilder) Build(linkType, email, redirectTo string) (string, error) {
	if !ValidLinkType(linkType) {
		return "", fmt.Errorf("unknown link type %q", linkType)
	}
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, linkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    b.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.ttl)),
		},
		Purpose: linkType,
		Email:   email,
	})
	signed, err := token.SignedString(b.secret)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("type", linkType)
	q.Set("token", signed)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return b.baseURL + "/auth/action?" + q.Encode(), nil
}

// Verify checks an action token and returns its type and email.
func (b *LinkBuilder) Verify(tokenStr string) (linkType, email string, err error) {
	token, err := jwt.ParseWithClaims(tokenStr, &linkClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid action token")
	}
	claims, ok := token.Claims.(*linkClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid action token claims")
	}
	return claims.Purpose, claims.Email, nil
}

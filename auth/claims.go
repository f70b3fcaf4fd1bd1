package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is an informational view of the access token's JWT payload.
// The token is decoded without signature verification - the client holds no
// signing key and the server remains the only authority on validity. Use
// this for display and diagnostics, never for access decisions.
type TokenClaims struct {
	Subject   string        // "sub" claim, the user identifier
	TokenID   string        // "jti" claim when present
	IssuedAt  time.Time     // Zero when the claim is absent
	ExpiresAt time.Time     // Zero when the claim is absent
	Raw       jwt.MapClaims // Full claim set for anything else
}

// AccessTokenClaims decodes the claims of the currently held access token.
// Returns ErrNotAuthenticated when no token is held. Note that a decodable
// token may still be long expired; IsAuthenticated deliberately does not
// consult the expiry here.
func (m *Manager) AccessTokenClaims() (*TokenClaims, error) {
	raw := m.session.AccessToken()
	if raw == "" {
		return nil, ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}

	result := &TokenClaims{Raw: claims}
	if sub, err := claims.GetSubject(); err == nil {
		result.Subject = sub
	}
	if jti, ok := claims["jti"].(string); ok {
		result.TokenID = jti
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		result.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}
	return result, nil
}

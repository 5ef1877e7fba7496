package httpsecurity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

// TokenLifetimes returns the access and refresh token lifetimes of
// auth_security.jwt.
func TokenLifetimes(r *registry.Registry) (access, refresh time.Duration, err error) {
	j := r.AuthSecurity().JWT
	if access, err = policy.ParseDuration(j.Expiry); err != nil {
		return 0, 0, fmt.Errorf("jwt expiry: %w", err)
	}
	if refresh, err = policy.ParseDuration(j.RefreshExpiry); err != nil {
		return 0, 0, fmt.Errorf("jwt refresh expiry: %w", err)
	}
	return access, refresh, nil
}

// JWTParserOptions pins the signing algorithm, issuer and audience and
// requires an expiry claim.
func JWTParserOptions(r *registry.Registry) []jwt.ParserOption {
	j := r.AuthSecurity().JWT
	return []jwt.ParserOption{
		jwt.WithValidMethods([]string{j.Algorithm}),
		jwt.WithIssuer(j.Issuer),
		jwt.WithAudience(j.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
}

// AccessClaims returns the registered claims of an access token for
// subject issued at now.
func AccessClaims(r *registry.Registry, subject string, now time.Time) (jwt.RegisteredClaims, error) {
	access, _, err := TokenLifetimes(r)
	if err != nil {
		return jwt.RegisteredClaims{}, err
	}
	return claims(r, subject, now, access), nil
}

// RefreshClaims is like AccessClaims with the refresh lifetime.
func RefreshClaims(r *registry.Registry, subject string, now time.Time) (jwt.RegisteredClaims, error) {
	_, refresh, err := TokenLifetimes(r)
	if err != nil {
		return jwt.RegisteredClaims{}, err
	}
	return claims(r, subject, now, refresh), nil
}

func claims(r *registry.Registry, subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	j := r.AuthSecurity().JWT
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.Issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{j.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// SigningMethod returns the jwt signing method named by auth_security.jwt.
func SigningMethod(r *registry.Registry) (jwt.SigningMethod, error) {
	alg := r.AuthSecurity().JWT.Algorithm
	m := jwt.GetSigningMethod(alg)
	if m == nil {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}
	return m, nil
}

// OTPValidateOpts maps auth_security.otp onto time-based one-time password
// options: Length digits, a code valid for one Expiry period, no skew.
func OTPValidateOpts(r *registry.Registry) (totp.ValidateOpts, error) {
	o := r.AuthSecurity().OTP
	expiry, err := policy.ParseDuration(o.Expiry)
	if err != nil {
		return totp.ValidateOpts{}, fmt.Errorf("otp expiry: %w", err)
	}
	if expiry < time.Second {
		return totp.ValidateOpts{}, fmt.Errorf("otp expiry %q is shorter than one second", o.Expiry)
	}
	if o.Length != 6 && o.Length != 8 {
		return totp.ValidateOpts{}, fmt.Errorf("otp length must be 6 or 8, got %d", o.Length)
	}
	return totp.ValidateOpts{
		Period:    uint(expiry / time.Second),
		Skew:      0,
		Digits:    otp.Digits(o.Length),
		Algorithm: otp.AlgorithmSHA1,
	}, nil
}

package httpsecurity

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

func TestTokenLifetimes(t *testing.T) {
	access, refresh, err := TokenLifetimes(registry.Default())
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, access)
	assert.Equal(t, 7*24*time.Hour, refresh)
}

func TestAccessClaims(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c, err := AccessClaims(registry.Default(), "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, "vendorly.in", c.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"vendorly-app"}, c.Audience)
	assert.Equal(t, "user-1", c.Subject)
	assert.NotEmpty(t, c.ID)
	assert.True(t, c.ExpiresAt.Time.Equal(now.Add(24*time.Hour)))

	refresh, err := RefreshClaims(registry.Default(), "user-1", now)
	require.NoError(t, err)
	assert.True(t, refresh.ExpiresAt.Time.Equal(now.Add(7*24*time.Hour)))
	assert.NotEqual(t, c.ID, refresh.ID)
}

func TestJWTParserOptions(t *testing.T) {
	r := registry.Default()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	method, err := SigningMethod(r)
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodRS256, method)

	keyFunc := func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
	parse := func(claims jwt.RegisteredClaims) error {
		signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		_, err = jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, keyFunc, JWTParserOptions(r)...)
		return err
	}

	now := time.Now()
	valid, err := AccessClaims(r, "user-1", now)
	require.NoError(t, err)
	assert.NoError(t, parse(valid))

	wrongAudience := valid
	wrongAudience.Audience = jwt.ClaimStrings{"other-app"}
	assert.ErrorIs(t, parse(wrongAudience), jwt.ErrTokenInvalidAudience)

	wrongIssuer := valid
	wrongIssuer.Issuer = "evil.example"
	assert.ErrorIs(t, parse(wrongIssuer), jwt.ErrTokenInvalidIssuer)

	expired, err := AccessClaims(r, "user-1", now.Add(-25*time.Hour))
	require.NoError(t, err)
	assert.ErrorIs(t, parse(expired), jwt.ErrTokenExpired)

	noExpiry := valid
	noExpiry.ExpiresAt = nil
	assert.ErrorIs(t, parse(noExpiry), jwt.ErrTokenRequiredClaimMissing)

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, valid).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = jwt.ParseWithClaims(hmac, &jwt.RegisteredClaims{}, keyFunc, JWTParserOptions(r)...)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestSigningMethodFollowsPolicy(t *testing.T) {
	p := policy.Baseline()
	p.AuthSecurity.JWT.Algorithm = "ES256"
	method, err := SigningMethod(registry.MustNew(p))
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodES256, method)
}

func TestOTPValidateOpts(t *testing.T) {
	opts, err := OTPValidateOpts(registry.Default())
	require.NoError(t, err)
	assert.Equal(t, uint(600), opts.Period)
	assert.Equal(t, otp.DigitsSix, opts.Digits)

	const secret = "JBSWY3DPEHPK3PXP"
	issued := time.Unix(1200, 0)
	code, err := totp.GenerateCodeCustom(secret, issued, opts)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	ok, err := totp.ValidateCustom(code, secret, issued.Add(599*time.Second), opts)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = totp.ValidateCustom(code, secret, issued.Add(600*time.Second), opts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPValidateOptsRejectsLength(t *testing.T) {
	p := policy.Baseline()
	p.AuthSecurity.OTP.Length = 4
	_, err := OTPValidateOpts(registry.MustNew(p))
	assert.Error(t, err)
}

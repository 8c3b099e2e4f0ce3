package checks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/nagiosplugin/check"
)

// TokenExpiryConfig configures TokenExpiry.
type TokenExpiryConfig struct {
	// Warning is the remaining lifetime at or below which the metric warns.
	// Zero disables the warning bound.
	Warning time.Duration

	// Critical is the remaining lifetime at or below which the metric is
	// critical. An expired token is always critical.
	Critical time.Duration

	// Key verifies the token signature when set. Without a key the token
	// is only decoded.
	Key any

	// Now returns the current time.
	// Default: time.Now
	Now func() time.Time
}

// TokenExpiry reports the remaining lifetime of a JWT in seconds.
//
// Claims are never validated, so an expired token still yields a metric
// instead of an error.
func TokenExpiry(name, token string, cfg TokenExpiryConfig) (check.Metric[int64], error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	claims, err := parseClaims(strings.TrimSpace(token), cfg.Key)
	if err != nil {
		return check.Metric[int64]{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return check.Metric[int64]{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if exp == nil {
		return check.Metric[int64]{}, ErrNoExpiry
	}

	remaining := ceilSeconds(exp.Sub(cfg.Now()))

	m := check.NewMetric(name, remaining).
		WithUnit(check.UnitSeconds).
		WithMin(0).
		WithCritical(int64(max(cfg.Critical, 0) / time.Second)).
		WithTrigger(check.TriggerIfLess)
	if cfg.Warning > 0 {
		m = m.WithWarning(int64(cfg.Warning / time.Second))
	}
	return m, nil
}

// ceilSeconds rounds d up to whole seconds. A live token never reads 0, and
// a token that has just expired never reads 1.
func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}

func parseClaims(token string, key any) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	if key == nil {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
		return claims, nil
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, fmt.Errorf("%w: %v", ErrTokenSignature, err)
	default:
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

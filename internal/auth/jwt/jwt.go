package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type TokenType string

const (
	Access  TokenType = "access"
	Refresh TokenType = "refresh"
)

type Port interface {
	Issue(ctx context.Context, subj Subject, rememberMe bool) (Pair, error)
	VerifyAccess(ctx context.Context, tokenStr string) (Claims, error)
	VerifyRefresh(ctx context.Context, tokenStr string) (Claims, error)
	ParseIgnoringExpiry(ctx context.Context, tokenStr string, typ TokenType) (Claims, error)
	AccessTTL() time.Duration
}

// Subject is the claim set shared by both tokens of a pair.
type Subject struct {
	UID         uuid.UUID
	Role        string
	OrgID       uuid.UUID
	Fingerprint string
}

type Pair struct {
	Access           string
	Refresh          string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type Claims struct {
	UID         uuid.UUID `json:"uid"`
	Role        string    `json:"role"`
	OrgID       uuid.UUID `json:"org"`
	Fingerprint string    `json:"fp"`
	Type        TokenType `json:"typ"`
	jwt.RegisteredClaims
}

func (c Claims) ToSubject() Subject {
	return Subject{UID: c.UID, Role: c.Role, OrgID: c.OrgID, Fingerprint: c.Fingerprint}
}

type Core struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	rememberTTL   time.Duration
	now           func() time.Time
}

type Option func(*Core)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Core) {
		c.now = now
	}
}

func New(conf config.Config, opts ...Option) *Core {
	c := &Core{
		accessSecret:  []byte(conf.Auth.JWT.AccessSecret),
		refreshSecret: []byte(conf.Auth.JWT.RefreshSecret),
		issuer:        conf.Auth.JWT.Issuer,
		accessTTL:     conf.Auth.JWT.AccessTTL,
		refreshTTL:    conf.Auth.JWT.RefreshTTL,
		rememberTTL:   conf.Auth.JWT.RememberMeTTL,
		now:           time.Now,
	}
	if c.accessTTL <= 0 {
		c.accessTTL = config.AccessTokenDuration
	}
	if c.refreshTTL <= 0 {
		c.refreshTTL = config.RefreshTokenDuration
	}
	if c.rememberTTL <= 0 {
		c.rememberTTL = config.RememberMeDuration
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Core) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *Core) Issue(ctx context.Context, subj Subject, rememberMe bool) (Pair, error) {
	const op = "auth.Issue.jwt"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	now := c.now()
	refreshTTL := c.refreshTTL
	if rememberMe {
		refreshTTL = c.rememberTTL
	}

	res := Pair{
		AccessExpiresAt:  now.Add(c.accessTTL),
		RefreshExpiresAt: now.Add(refreshTTL),
	}

	var err error
	res.Access, err = c.newToken(ctx, subj, Access, now, res.AccessExpiresAt)
	if err != nil {
		zap.L().Error(
			"Failed to generate token pair",
			zap.String("uid", subj.UID.String()),
			zap.Error(err),
		)

		return Pair{}, err
	}

	res.Refresh, err = c.newToken(ctx, subj, Refresh, now, res.RefreshExpiresAt)
	if err != nil {
		zap.L().Error(
			"Failed to generate token pair",
			zap.String("uid", subj.UID.String()),
			zap.Error(err),
		)

		return Pair{}, err
	}

	return res, nil
}

func (c *Core) newToken(ctx context.Context, subj Subject, typ TokenType, now, exp time.Time) (string, error) {
	const op = "auth.newToken.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	signed, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, &Claims{
			UID:         subj.UID,
			Role:        subj.Role,
			OrgID:       subj.OrgID,
			Fingerprint: subj.Fingerprint,
			Type:        typ,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   subj.UID.String(),
				ExpiresAt: jwt.NewNumericDate(exp),
				IssuedAt:  jwt.NewNumericDate(now),
				Issuer:    c.issuer,
			},
		},
	).SignedString(c.secret(typ))
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			ErrWhileCreatingToken.Error(),
			zap.Error(err),
		)

		return "", ErrWhileCreatingToken
	}

	return signed, nil
}

func (c *Core) VerifyAccess(ctx context.Context, tokenStr string) (Claims, error) {
	return c.parse(ctx, tokenStr, Access, true)
}

func (c *Core) VerifyRefresh(ctx context.Context, tokenStr string) (Claims, error) {
	return c.parse(ctx, tokenStr, Refresh, true)
}

// ParseIgnoringExpiry checks the signature and token type but accepts expired
// tokens. It is only meant for recovering identity, never for authorization.
func (c *Core) ParseIgnoringExpiry(ctx context.Context, tokenStr string, typ TokenType) (Claims, error) {
	return c.parse(ctx, tokenStr, typ, false)
}

func (c *Core) parse(ctx context.Context, tokenStr string, typ TokenType, validate bool) (Claims, error) {
	const op = "auth.ParseClaims.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	}
	if !validate {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := Claims{}
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrUnexpectedSignMethod
			}

			return c.secret(typ), nil
		}, opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			zap.L().Debug("Token is expired", zap.String("op", op), zap.String("type", string(typ)))
			return claims, ErrTokenExpired
		}

		zap.L().Debug(
			"Failed to parse claims",
			zap.String("op", op),
			zap.String("type", string(typ)),
			zap.Error(err),
		)

		return claims, ErrInvalidToken
	}

	if !token.Valid {
		return claims, ErrInvalidToken
	}

	if claims.Type != typ {
		zap.L().Debug(
			ErrWrongTokenType.Error(),
			zap.String("op", op),
			zap.String("want", string(typ)),
			zap.String("got", string(claims.Type)),
		)

		return claims, ErrInvalidToken
	}

	if claims.UID == uuid.Nil {
		return claims, ErrInvalidToken
	}

	return claims, nil
}

func (c *Core) secret(typ TokenType) []byte {
	if typ == Refresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

package auth

import (
	"context"

	"github.com/JMURv/session-guard/internal/auth/captcha"
	"github.com/JMURv/session-guard/internal/auth/jwt"
	"github.com/JMURv/session-guard/internal/config"
)

// Core is what transport handlers need from the auth layer.
type Core interface {
	jwt.Port
	captcha.Port
}

type Auth struct {
	*jwt.Core
	captcha *captcha.Core
}

func New(conf config.Config, opts ...jwt.Option) *Auth {
	return &Auth{
		Core:    jwt.New(conf, opts...),
		captcha: captcha.New(conf),
	}
}

func (a *Auth) VerifyRecaptcha(ctx context.Context, token string, action captcha.Actions) (bool, error) {
	return a.captcha.VerifyRecaptcha(ctx, token, action)
}

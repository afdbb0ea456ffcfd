package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCore_VerifyRecaptcha(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		token    string
		body     string
		expected bool
		wantErr  bool
	}{
		{
			name:     "Disabled",
			enabled:  false,
			expected: true,
		},
		{
			name:     "EmptyToken",
			enabled:  true,
			expected: false,
		},
		{
			name:     "Success",
			enabled:  true,
			token:    "tok",
			body:     `{"success":true,"score":0.9,"action":"pass_auth"}`,
			expected: true,
		},
		{
			name:     "LowScore",
			enabled:  true,
			token:    "tok",
			body:     `{"success":true,"score":0.05,"action":"pass_auth"}`,
			expected: false,
		},
		{
			name:     "WrongAction",
			enabled:  true,
			token:    "tok",
			body:     `{"success":true,"score":0.9,"action":"other"}`,
			expected: false,
		},
		{
			name:    "MalformedBody",
			enabled: true,
			token:   "tok",
			body:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "secret", r.PostForm.Get("secret"))
				assert.Equal(t, tt.token, r.PostForm.Get("response"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			conf := config.Config{}
			conf.Auth.Captcha = config.CaptchaConfig{Enabled: tt.enabled, Secret: "secret"}
			c := New(conf)
			c.url = srv.URL

			res, err := c.VerifyRecaptcha(context.Background(), tt.token, PassAuth)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrVerificationFailed)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}
}

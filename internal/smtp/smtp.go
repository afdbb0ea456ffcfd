package smtp

import (
	"context"
	"fmt"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const newDeviceSubject = "New sign-in to your account"

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailServer struct {
	user         string
	admin        string
	dialer       dialer
	serverConfig config.ServerConfig
}

func New(conf config.Config) *EmailServer {
	return &EmailServer{
		user:         conf.Email.User,
		admin:        conf.Email.Admin,
		dialer:       gomail.NewDialer(conf.Email.Server, conf.Email.Port, conf.Email.User, conf.Email.Pass),
		serverConfig: conf.Server,
	}
}

func (s *EmailServer) GetMessageBase(subject, toEmail string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	if s.admin != "" {
		m.SetHeader("Reply-To", s.admin)
	}
	return m
}

func (s *EmailServer) Send(m *gomail.Message) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		zap.L().Error(
			"Failed to send an email",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// NewDeviceLogin tells the account owner that a device it has never used
// before just signed in.
func (s *EmailServer) NewDeviceLogin(ctx context.Context, toEmail string, d *md.DeviceSession) error {
	const op = "smtp.NewDeviceLogin"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	name := d.Name
	if name == "" {
		name = "Unknown device"
	}

	m := s.GetMessageBase(newDeviceSubject, toEmail)
	m.SetBody(
		"text/plain", fmt.Sprintf(
			"A new sign-in was detected.\n\nDevice: %s\nBrowser: %s\nOS: %s\nIP address: %s\nTime: %s\n\n"+
				"If this was not you, open %s://%s and log out this device.",
			name,
			d.Browser,
			d.OS,
			d.IP,
			d.LastActive.UTC().Format("2006-01-02 15:04 MST"),
			s.serverConfig.Scheme,
			s.serverConfig.Domain,
		),
	)

	return s.Send(m)
}

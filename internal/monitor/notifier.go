package monitor

import (
	"fmt"

	"go.uber.org/zap"

	"pagewatch/pkg/mail"
)

// SenderFactory builds a mail sender bound to the transport settings of one
// notification. One sender, and one SMTP session, per Notify call.
type SenderFactory func(cfg NotificationConfig) mail.Sender

// Notifier delivers the down alert after a run exhausts its attempts.
type Notifier interface {
	Notify(cfg NotificationConfig, url string, expectedText string) error
}

type emailNotifier struct {
	newSender SenderFactory
	logger    *zap.Logger
}

// Notify is a no-op when alerts are disabled in cfg. Delivery failures come
// back as *DeliveryError; nothing here panics or aborts the run.
func (n *emailNotifier) Notify(cfg NotificationConfig, url string, expectedText string) error {
	if !cfg.Enabled {
		n.logger.Info("email alert is disabled, skipping notification")
		return nil
	}

	subject := cfg.Subject
	if subject == "" {
		subject = "Monitored application is DOWN"
	}
	body := fmt.Sprintf("The application at %s does not show the expected message: %q.\nPlease check the service.",
		url, expectedText)

	sender := n.newSender(cfg)
	if err := sender.SendMail(cfg.To, subject, body); err != nil {
		return &DeliveryError{Host: cfg.SMTPHost, Err: err}
	}
	n.logger.Info("alert email sent", zap.Strings("to", cfg.To))
	return nil
}

func NewEmailNotifier(newSender SenderFactory, logger *zap.Logger) Notifier {
	return &emailNotifier{
		newSender: newSender,
		logger:    logger,
	}
}

// NewSMTPSenderFactory is the production SenderFactory over gopkg.in/mail.v2.
func NewSMTPSenderFactory() SenderFactory {
	return func(cfg NotificationConfig) mail.Sender {
		return mail.NewSender(cfg.From, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost, cfg.SMTPPort)
	}
}

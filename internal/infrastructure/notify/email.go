package notify

import (
	"time"

	"gopkg.in/gomail.v2"

	appnotify "github.com/jhoicas/tienda-api/internal/application/notify"
)

// Verificar en tiempo de compilación que SMTPNotifier implementa EmailNotifier.
var _ appnotify.EmailNotifier = (*SMTPNotifier)(nil)

// EmailConfig configuración del correo de pedidos.
type EmailConfig struct {
	AdminEmail string
	FromEmail  string
	Host       string
	Port       int
	User       string
	Password   string
}

// SMTPNotifier envía el correo de pedido nuevo al admin vía SMTP (gomail).
// Mejor esfuerzo: cualquier fallo de transporte se reporta como false.
type SMTPNotifier struct {
	cfg     EmailConfig
	timeout time.Duration
}

// NewSMTPNotifier construye el notificador de correo.
func NewSMTPNotifier(cfg EmailConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, timeout: 10 * time.Second}
}

// SendAdminOrderEmail envía el correo en texto plano al admin configurado.
// La espera está acotada: si el SMTP no responde dentro del timeout se
// reporta false igual que cualquier otro fallo de transporte.
func (n *SMTPNotifier) SendAdminOrderEmail(subject, message string) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromEmail)
	m.SetHeader("To", n.cfg.AdminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()
	select {
	case err := <-done:
		return err == nil
	case <-time.After(n.timeout):
		return false
	}
}

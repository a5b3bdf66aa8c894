package notify

import (
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// Dispatcher dispara las notificaciones laterales de un pedido confirmado:
// correo al admin y SMS al cliente. Es estrictamente mejor esfuerzo: los
// resultados se loguean y se descartan, jamás afectan al pedido ya commiteado.
type Dispatcher struct {
	email     EmailNotifier
	sms       SMSNotifier
	testPhone string // respaldo si el cliente no tiene teléfono en su perfil
	log       *logger.Logger
}

// NewDispatcher construye el despachador. testPhone puede ser vacío.
func NewDispatcher(email EmailNotifier, sms SMSNotifier, testPhone string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{email: email, sms: sms, testPhone: testPhone, log: log}
}

// OrderCreated notifica un pedido recién creado: un correo al admin y, si hay
// teléfono resoluble, un SMS al cliente. Resolución del teléfono: (1) perfil
// del cliente, (2) teléfono de prueba configurado, (3) sin teléfono se omite
// el paso SMS por completo (no se intenta, no es error).
func (d *Dispatcher) OrderCreated(order *entity.Order, customer *entity.User, products []*entity.Product) {
	subject := fmt.Sprintf("Nuevo pedido #%s", order.ID)
	emailOK := d.email.SendAdminOrderEmail(subject, buildAdminBody(order, customer, products))
	if !emailOK {
		d.log.Warn().Str("order_id", order.ID).Msg("correo de pedido al admin no entregado")
	}

	phone := customer.Phone
	if phone == "" {
		phone = d.testPhone
	}
	if phone == "" {
		d.log.Debug().Str("order_id", order.ID).Msg("cliente sin teléfono, SMS omitido")
		return
	}
	smsOK := d.sms.SendSMS(phone, fmt.Sprintf("Tu pedido #%s fue recibido. Total: $%s.", order.ID, order.Total.StringFixed(2)))
	if !smsOK {
		d.log.Warn().Str("order_id", order.ID).Msg("SMS de pedido al cliente no entregado")
	}
}

// buildAdminBody arma el cuerpo de texto plano: id del pedido, cliente, total
// y una línea por producto.
func buildAdminBody(order *entity.Order, customer *entity.User, products []*entity.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nuevo pedido #%s\n", order.ID)
	fmt.Fprintf(&b, "Cliente: %s (id %s)\n", customer.Name, customer.ID)
	fmt.Fprintf(&b, "Total: $%s\n", order.Total.StringFixed(2))
	b.WriteString("Productos:\n")
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s ($%s)", p.Name, p.Price.StringFixed(2)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

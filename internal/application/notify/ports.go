package notify

// EmailNotifier envía el correo de pedido nuevo al admin. Mejor esfuerzo:
// cualquier fallo de transporte se reporta como false, nunca como error.
type EmailNotifier interface {
	SendAdminOrderEmail(subject, message string) bool
}

// SMSNotifier envía un SMS al cliente. Mejor esfuerzo: sin credenciales
// configuradas no hace llamadas de red y devuelve false.
type SMSNotifier interface {
	SendSMS(phoneNumber, message string) bool
}

package notify

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	appnotify "github.com/jhoicas/tienda-api/internal/application/notify"
)

// Verificar en tiempo de compilación que AfricasTalkingNotifier implementa SMSNotifier.
var _ appnotify.SMSNotifier = (*AfricasTalkingNotifier)(nil)

// Endpoint sandbox de la API de mensajería de Africa's Talking.
const africastalkingMessagingURL = "https://api.sandbox.africastalking.com/version1/messaging"

// SMSConfig credenciales del proveedor de SMS.
type SMSConfig struct {
	Username string // "sandbox" en pruebas
	APIKey   string // vacío = notificador deshabilitado (no hace llamadas)
	SenderID string // opcional
}

// AfricasTalkingNotifier envía SMS vía la API REST de Africa's Talking.
// Usa net/http de la librería estándar; no requiere SDK del proveedor.
// Mejor esfuerzo: respuestas no-2xx y errores de red se reportan como false.
type AfricasTalkingNotifier struct {
	cfg        SMSConfig
	httpClient *http.Client

	// Endpoint permite apuntar a otro ambiente (o a un servidor de test).
	Endpoint string
}

// NewAfricasTalkingNotifier construye el notificador.
// Si cfg.APIKey está vacío, SendSMS es un no-op que devuelve false.
func NewAfricasTalkingNotifier(cfg SMSConfig) *AfricasTalkingNotifier {
	return &AfricasTalkingNotifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		Endpoint:   africastalkingMessagingURL,
	}
}

// SendSMS envía el mensaje al número dado. Sin API key configurada no se
// intenta ninguna llamada de red.
func (n *AfricasTalkingNotifier) SendSMS(phoneNumber, message string) bool {
	if n.cfg.APIKey == "" {
		return false
	}

	payload := url.Values{}
	payload.Set("username", n.cfg.Username)
	payload.Set("to", phoneNumber)
	payload.Set("message", message)
	if n.cfg.SenderID != "" {
		payload.Set("from", n.cfg.SenderID)
	}

	req, err := http.NewRequest(http.MethodPost, n.Endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("apiKey", n.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

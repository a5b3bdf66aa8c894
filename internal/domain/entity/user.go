package entity

import "time"

// User representa un cliente de la tienda (identidad del pedido).
// Phone alimenta la resolución del SMS de confirmación; vacío = sin teléfono.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

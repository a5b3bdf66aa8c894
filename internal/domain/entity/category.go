package entity

import "time"

// Category representa una categoría jerárquica de productos.
// El conjunto forma un bosque: ParentID vacío = raíz; la cadena de ancestros
// siempre termina en una raíz (sin ciclos).
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

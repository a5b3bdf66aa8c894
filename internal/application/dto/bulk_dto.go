package dto

import "encoding/json"

// RawField es un escalar de entrada sin tipar (JSON o CSV) con chequeo
// explícito de presencia. Nunca falla al deserializar: un valor malformado
// queda como texto crudo y se valida por fila, de modo que una fila inválida
// no aborta a sus hermanas.
type RawField struct {
	Present bool
	Value   string
}

// Raw construye un RawField presente con el valor dado (CSV y tests).
func Raw(value string) RawField {
	return RawField{Present: true, Value: value}
}

// UnmarshalJSON acepta string, número, booleano o null. null = ausente;
// cualquier otro valor se conserva como texto.
func (f *RawField) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = RawField{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = RawField{Present: true, Value: s}
		return nil
	}
	*f = RawField{Present: true, Value: string(b)}
	return nil
}

// BulkProductRow es una fila cruda del lote de ingesta. La categoría llega por
// category_id (o su alias category) o por category_name; name y price son
// obligatorios a nivel de fila.
type BulkProductRow struct {
	Name         RawField `json:"name"`
	Price        RawField `json:"price"`
	CategoryID   RawField `json:"category_id"`
	Category     RawField `json:"category"` // alias histórico de category_id
	CategoryName RawField `json:"category_name"`
}

// BulkRowError error de una fila, con su índice 1-based dentro del lote.
type BulkRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BulkIngestResult resultado agregado de la ingesta: filas creadas, IDs en
// orden de entrada y errores por fila. Nunca aborta a mitad de lote.
type BulkIngestResult struct {
	Created    int            `json:"created"`
	ProductIDs []string       `json:"product_ids"`
	Errors     []BulkRowError `json:"errors"`
}

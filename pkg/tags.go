package pkg

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// NormalizeTags convierte los tags en cualquiera de sus formas (lista ya
// decodificada, texto JSON o bytes tal como los devuelve el driver) en una lista
// ordenada de strings. Orden de prioridad: lista tal cual, JSON, vacío.
// Un valor que no se puede interpretar se registra y se trata como lista vacía.
func NormalizeTags(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []any:
		return stringsFrom(v)
	case []byte:
		return parseTagsJSON(string(v))
	case string:
		return parseTagsJSON(v)
	default:
		slog.Warn("Error al parsear tags", "value", value)
		return []string{}
	}
}

func parseTagsJSON(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Warn("Error al parsear tags", "value", raw, "error", err)
		return []string{}
	}

	switch p := parsed.(type) {
	case []any:
		return stringsFrom(p)
	case nil:
		return []string{}
	default:
		// un valor suelto se envuelve en una lista de un elemento
		return stringsFrom([]any{p})
	}
}

func stringsFrom(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch s := v.(type) {
		case string:
			out = append(out, s)
		case nil:
		default:
			out = append(out, fmt.Sprint(s))
		}
	}
	return out
}

// EncodeTags serializa los tags para guardarlos en la columna JSON
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

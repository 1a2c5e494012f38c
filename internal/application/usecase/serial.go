package usecase

import (
	"encoding/json"
	"regexp"
	"strings"
)

// serialPrefixRe aceita leituras de etiquetas antigas no formato
// "serial: ABC123" (também "serie", "serial_number", "numero_serie").
var serialPrefixRe = regexp.MustCompile(`(?i)(serial_number|numero_serie|serial|serie)[:=]\s*(.+)`)

// ParseSerial extrai o número de série de uma leitura de QR. Aceita o serial
// cru, pares "chave: valor" e payloads JSON (as variantes de chave que as
// etiquetas já usaram em produção). Devolve vazio se nada aproveitável.
func ParseSerial(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "{") {
		var payload map[string]any
		if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
			for _, key := range []string{"serial_number", "serial", "serialNumber", "serial_no", "numero_serie", "numeroSerie"} {
				if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
					return strings.TrimSpace(v)
				}
			}
		}
	}

	if m := serialPrefixRe.FindStringSubmatch(trimmed); len(m) == 3 {
		return strings.TrimSpace(m[2])
	}
	return trimmed
}

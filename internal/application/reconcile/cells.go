package reconcile

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// cell devuelve la celda i recortada, o "" si la fila es más corta.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// flexString acepta en JSON tanto texto como número; las hojas mezclan ambos.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor no es texto ni número: %s", b)
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string { return string(f) }

var (
	thousandsDot   = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`) // 1.234.567,50
	thousandsComma = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`) // 1,234,567.50
)

// cleanNumber quita símbolo de moneda, espacios y separadores de miles.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	switch {
	case thousandsDot.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsComma.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	}
	if neg {
		s = "-" + s
	}
	return s
}

// parseQuantity interpreta una cantidad entera. Vacío = 0.
func parseQuantity(raw string) (int, error) {
	s := cleanNumber(raw)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("cantidad inválida %q", raw)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("cantidad no entera %q", raw)
	}
	return int(d.IntPart()), nil
}

// parseMoney interpreta un valor monetario. Vacío = 0.
func parseMoney(raw string) (decimal.Decimal, error) {
	s := cleanNumber(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido %q", raw)
	}
	return d, nil
}

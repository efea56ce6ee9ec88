package prompt

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"text/template"
)

func computeDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Funcs returns the helpers available to prompt templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"orNA": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "N/A"
			}
			return s
		},
		"fixed2": func(v float64) string {
			if v == 0 {
				return "N/A"
			}
			return strconv.FormatFloat(v, 'f', 2, 64)
		},
	}
}

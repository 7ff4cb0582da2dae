package diagnostic

import (
	"strconv"
	"strings"
)

// BuildSearchQuery concatenates vehicle identity, fault codes, and the
// complaint into one retrieval query. Deterministic; empty when all
// inputs are empty.
func BuildSearchQuery(v VehicleInfo, faultCodes []string, complaint string) string {
	parts := make([]string, 0, 6)

	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	if v.Year > 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	if v.Engine != "" {
		parts = append(parts, v.Engine)
	}
	for _, code := range faultCodes {
		if code = strings.TrimSpace(code); code != "" {
			parts = append(parts, code)
		}
	}
	if complaint = strings.TrimSpace(complaint); complaint != "" {
		parts = append(parts, complaint)
	}

	return strings.Join(parts, " ")
}

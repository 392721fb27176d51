package observability

import (
	"fmt"
	"net/http"
	"strings"
)

// AppendServerTiming adds one Server-Timing entry; non-positive durations are left out.
func AppendServerTiming(w http.ResponseWriter, name string, durMs float64, desc string) {
	if durMs <= 0 && desc == "" {
		return
	}
	parts := []string{name}
	if durMs > 0 {
		parts = append(parts, fmt.Sprintf("dur=%.2f", durMs))
	}
	if desc != "" {
		parts = append(parts, fmt.Sprintf("desc=%q", desc))
	}
	w.Header().Add("Server-Timing", strings.Join(parts, ";"))
}

func SetIfPos(w http.ResponseWriter, key string, ms float64) {
	if ms > 0 {
		w.Header().Set(key, fmt.Sprintf("%.2f", ms))
	}
}

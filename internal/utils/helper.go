package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"hmade-storefront/internal/logger"

	"go.uber.org/zap"
)

func StrPtr(s string) *string {
	return &s
}

// QueryInt reads a non-negative integer query parameter, falling back to def.
func QueryInt(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to write response", zap.Error(err))
	}
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

package annotations

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// NewZapHandler returns a handler that logs every event as a structured
// debug entry. Error events and failed queries are logged at warn level.
func NewZapHandler(logger *zap.Logger) Handler {
	return func(event Event) {
		fields := make([]zap.Field, 0, len(event.Data)+2)
		fields = append(fields,
			zap.String("query.id", event.QueryID),
			zap.Duration("latency", event.Latency))

		keys := make([]string, 0, len(event.Data))
		for k := range event.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.Any(k, event.Data[k]))
		}

		success, ok := event.Data["success"].(bool)
		if strings.HasPrefix(event.Name, "error/") || (ok && !success) {
			logger.Warn(event.Name, fields...)
			return
		}
		logger.Debug(event.Name, fields...)
	}
}

package logger

import "strings"

var allowedLevels = map[string]string{
	"debug":   "DEBUG",
	"info":    "INFO",
	"warn":    "WARN",
	"warning": "WARN",
	"error":   "ERROR",
}

var allowedStatus = map[string]string{
	"ok":        "ok",
	"fail":      "fail",
	"skip":      "skip",
	"retry":     "retry",
	"fallback":  "fallback",
	"cancelled": "cancelled",
}

var allowedOutcome = map[string]string{
	"ok":        "ok",
	"fail":      "fail",
	"notice":    "notice",
	"cancelled": "cancelled",
}

func normalizeLevel(level string) string {
	if level == "" {
		return "INFO"
	}
	if mapped, ok := allowedLevels[strings.ToLower(level)]; ok {
		return mapped
	}
	return strings.ToUpper(level)
}

func normalizeStatus(status string) (string, bool) {
	mapped, ok := allowedStatus[strings.ToLower(strings.TrimSpace(status))]
	return mapped, ok
}

func normalizeOutcome(outcome string) (string, bool) {
	mapped, ok := allowedOutcome[strings.ToLower(strings.TrimSpace(outcome))]
	return mapped, ok
}

var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"rule",
	"city",
	"outcome",
	"duration_ms",
	"messages",
	"photos",
	"kb",
	"delivered",
	"fallback",
	"failed",
	"payload",
	"url",
	"http_code",
	"mode",
	"listen",
	"public_url",
	"source",
	"cities",
	"db",
	"host",
	"port",
	"err",
	"err_code",
	"err_kind",
	"cause",
	"attempts",
}

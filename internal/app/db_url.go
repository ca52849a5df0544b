package app

import (
	"net/url"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/config"
)

const preparedBinaryResultParam = "disable_prepared_binary_result"

// normalizeDBURL turns off binary results for prepared statements so the
// driver works behind transaction-mode poolers. An explicit setting wins.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinaryResult || raw == "" {
		return raw
	}

	if !isURLStyleDSN(raw) {
		if _, found := dsnValue(raw, preparedBinaryResultParam); found {
			return raw
		}
		return raw + " " + preparedBinaryResultParam + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Has(preparedBinaryResultParam) {
		return raw
	}
	query.Set(preparedBinaryResultParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL reads the database name from either DSN style.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if isURLStyleDSN(raw) {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	name, _ := dsnValue(raw, "dbname")
	return name
}

func isURLStyleDSN(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}

func dsnValue(dsn, key string) (string, bool) {
	for _, token := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(token, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}

// DatabaseURL is the connection string used by the API and the migration tool.
func DatabaseURL(cfg config.Config) string {
	return normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
}

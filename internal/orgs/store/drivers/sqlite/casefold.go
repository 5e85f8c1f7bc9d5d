package sqlite

import (
	"database/sql/driver"
	"strings"

	msqlite "modernc.org/sqlite"
)

// SQLite's LOWER only folds ASCII. casefold(x) lowers the full Unicode range
// so searches match names like "Åsa" regardless of case.
func init() {
	msqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefold)
}

func casefold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

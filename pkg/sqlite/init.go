package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver that applies connection pragmas on every new connection.
const DriverName = "sqlite3_flyer"

var connectPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			for _, q := range connectPragmas {
				if _, err := conn.Exec(q, nil); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

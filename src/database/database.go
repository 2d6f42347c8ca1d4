package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/fundfolio/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database schema", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database schema for:", databasePath)
	}

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		fund_account_id TEXT NOT NULL DEFAULT '',
		auth_provider TEXT DEFAULT 'local',
		is_email_verified BOOLEAN DEFAULT FALSE,
		email_verification_token TEXT,
		email_verification_token_expires_at TIMESTAMP,
		password_reset_token TEXT,
		password_reset_token_expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		user_agent TEXT,
		client_ip TEXT,
		is_blocked BOOLEAN DEFAULT FALSE,
		expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS investor_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		amount REAL NOT NULL,
		method TEXT NOT NULL,
		address TEXT,
		notes TEXT,
		reference TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'SUBMITTED',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
	CREATE INDEX IF NOT EXISTS idx_investor_requests_user ON investor_requests(user_id);
	`

	if _, err := DB.Exec(createTableStatement); err != nil {
		stdlog.Fatalf("failed to create tables: %v", err)
	}

	migrateUserTable()
}

// migrateUserTable adds columns introduced after the first release. SQLite
// has no ADD COLUMN IF NOT EXISTS, so probe the table info first.
func migrateUserTable() {
	if !columnExists("users", "fund_account_id") {
		if _, err := DB.Exec(`ALTER TABLE users ADD COLUMN fund_account_id TEXT NOT NULL DEFAULT ''`); err != nil {
			stdlog.Printf("failed to add users.fund_account_id column: %v", err)
		} else if logger.L != nil {
			logger.L.Info("Migrated users table", "column", "fund_account_id")
		}
	}
}

func columnExists(table, column string) bool {
	rows, err := DB.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		stdlog.Printf("failed to inspect table %s: %v", table, err)
		return false
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}

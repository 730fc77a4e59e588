package schema

var createStmts = []string{
	`CREATE TABLE notes (id VARCHAR(64) PRIMARY KEY, title TEXT, body TEXT, user_id VARCHAR(64), saved_at TIMESTAMP)`,
	`CREATE TABLE users (id VARCHAR(64) PRIMARY KEY, email VARCHAR(255), password_hash VARCHAR(255), disabled INT)`,
}

var dropStmts = []string{
	`DROP TABLE notes`,
	`DROP TABLE users`,
}

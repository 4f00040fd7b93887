package faqRepository

const (
	queryCreateTableSQLite = `
		CREATE TABLE IF NOT EXISTS faqs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			intent TEXT NOT NULL UNIQUE,
			question TEXT NOT NULL,
			answer TEXT NOT NULL
		)
	`

	queryCreateTablePostgres = `
		CREATE TABLE IF NOT EXISTS faqs (
			id SERIAL PRIMARY KEY,
			intent TEXT NOT NULL UNIQUE,
			question TEXT NOT NULL,
			answer TEXT NOT NULL
		)
	`

	queryDropTable = `
		DROP TABLE IF EXISTS faqs
	`

	queryCreateFAQ = `
		INSERT INTO faqs (
			intent,
			question,
			answer
		) VALUES (
			:intent,
			:question,
			:answer
		)
	`

	queryGetFAQByIntent = `
		SELECT
			id,
			intent,
			question,
			answer
		FROM faqs
		WHERE intent = :intent
	`

	queryGetAllFAQs = `
		SELECT
			id,
			intent,
			question,
			answer
		FROM faqs
		ORDER BY id ASC
	`

	queryCountFAQs = `
		SELECT COUNT(*)
		FROM faqs
	`
)

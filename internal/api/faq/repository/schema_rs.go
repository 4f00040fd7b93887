package faqRepository

import (
	"context"

	"HealthAssistant/internal/api/faq"
	contextPkg "HealthAssistant/pkg/context"
	"github.com/sirupsen/logrus"
)

func (r *schemaRepository) createTableQuery() (string, error) {
	switch r.q.DriverName() {
	case "sqlite", "sqlite3":
		return queryCreateTableSQLite, nil
	case "postgres", "pgx":
		return queryCreateTablePostgres, nil
	default:
		return "", faq.ErrUnsupportedDriver
	}
}

func (r *schemaRepository) CreateTable(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, err := r.createTableQuery()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"driver":     r.q.DriverName(),
		}).Error("No faqs schema for database driver")
		return err
	}

	if _, err := r.q.ExecContext(ctx, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating faqs table")
		return err
	}

	return nil
}

func (r *schemaRepository) DropTable(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := r.q.ExecContext(ctx, queryDropTable); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when dropping faqs table")
		return err
	}

	return nil
}

package faqRepository

import (
	"context"
	"database/sql"
	"errors"

	"HealthAssistant/internal/api/faq"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type FAQDB struct {
	ID       sql.NullInt64  `db:"id"`
	Intent   sql.NullString `db:"intent"`
	Question sql.NullString `db:"question"`
	Answer   sql.NullString `db:"answer"`
}

func (r *faqsRepository) CreateFAQ(ctx context.Context, record entity.FAQ) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"intent":   record.Intent,
		"question": record.Question,
		"answer":   record.Answer,
	}

	query, args, err := sqlx.Named(queryCreateFAQ, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateFAQ")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     record.Intent,
			"error":      err.Error(),
		}).Error("Database error when creating faq")
		return err
	}

	return nil
}

func (r *faqsRepository) GetFAQByIntent(ctx context.Context, intent string) (entity.FAQ, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row FAQDB

	argsKV := map[string]interface{}{
		"intent": intent,
	}

	query, args, err := sqlx.Named(queryGetFAQByIntent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFAQByIntent named query preparation err")
		return entity.FAQ{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"intent":     intent,
			}).Debug("GetFAQByIntent no rows found")
			return entity.FAQ{}, faq.ErrFAQNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFAQByIntent execution err")
		return entity.FAQ{}, err
	}

	return r.makeFAQ(row), nil
}

func (r *faqsRepository) GetAllFAQs(ctx context.Context) ([]entity.FAQ, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []FAQDB

	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(queryGetAllFAQs)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllFAQs execution err")
		return nil, err
	}

	out := make([]entity.FAQ, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeFAQ(row))
	}

	return out, nil
}

func (r *faqsRepository) CountFAQs(ctx context.Context) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(queryCountFAQs)).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountFAQs execution err")
		return 0, err
	}

	return total, nil
}

func (r *faqsRepository) makeFAQ(row FAQDB) entity.FAQ {
	return entity.FAQ{
		ID:       row.ID.Int64,
		Intent:   row.Intent.String,
		Question: row.Question.String,
		Answer:   row.Answer.String,
	}
}

package faqService

import (
	"context"
	"errors"

	"HealthAssistant/internal/api/faq"
	faqRepository "HealthAssistant/internal/api/faq/repository"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"github.com/sirupsen/logrus"
)

// Bootstrap creates the faqs table and seeds it when it holds no rows.
func (s *faqService) Bootstrap(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.faqRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if err := repo.Schema.CreateTable(ctx); err != nil {
		return err
	}

	total, err := repo.FAQs.CountFAQs(ctx)
	if err != nil {
		return err
	}

	if total == 0 {
		if err := s.insertSeed(ctx, repo); err != nil {
			return err
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"existing":   total,
	}).Info("FAQ store ready")

	return nil
}

// Reset drops the faqs table and recreates it with only the seed rows.
func (s *faqService) Reset(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.faqRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if err := repo.Schema.DropTable(ctx); err != nil {
		return err
	}
	if err := repo.Schema.CreateTable(ctx); err != nil {
		return err
	}
	if err := s.insertSeed(ctx, repo); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"seeded":     len(s.seed),
	}).Info("FAQ store reset")

	return nil
}

func (s *faqService) insertSeed(ctx context.Context, repo faqRepository.Client) error {
	for _, record := range s.seed {
		if err := repo.FAQs.CreateFAQ(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *faqService) GetByIntent(ctx context.Context, intent string) (entity.FAQ, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.faqRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.FAQ{}, err
	}

	record, err := repo.FAQs.GetFAQByIntent(ctx, intent)
	if err != nil {
		if errors.Is(err, faq.ErrFAQNotFound) {
			return entity.FAQ{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     intent,
			"error":      err.Error(),
		}).Error("Failed to get faq")
		return entity.FAQ{}, faq.ErrFAQStoreFailure
	}

	return record, nil
}

func (s *faqService) GetAllFAQs(ctx context.Context) (*faq.FAQListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.faqRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	records, err := repo.FAQs.GetAllFAQs(ctx)
	if err != nil {
		return nil, faq.ErrFAQStoreFailure
	}

	out := &faq.FAQListResponse{
		FAQs:  make([]faq.FAQResponse, 0, len(records)),
		Total: len(records),
	}
	for _, r := range records {
		out.FAQs = append(out.FAQs, faq.FAQResponse{
			ID:       r.ID,
			Intent:   r.Intent,
			Question: r.Question,
			Answer:   r.Answer,
		})
	}

	return out, nil
}

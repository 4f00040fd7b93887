package faqService

import (
	"context"

	"HealthAssistant/internal/api/faq"
	faqRepository "HealthAssistant/internal/api/faq/repository"
	"HealthAssistant/internal/entity"
	"github.com/sirupsen/logrus"
)

type IFAQService interface {
	Bootstrap(ctx context.Context) error
	Reset(ctx context.Context) error
	GetByIntent(ctx context.Context, intent string) (entity.FAQ, error)
	GetAllFAQs(ctx context.Context) (*faq.FAQListResponse, error)
}

type faqService struct {
	log     *logrus.Logger
	faqRepo faqRepository.Repository
	seed    []entity.FAQ
}

func NewFAQService(
	log *logrus.Logger,
	faqRepo faqRepository.Repository,
	seed []entity.FAQ,
) IFAQService {
	return &faqService{
		log:     log,
		faqRepo: faqRepo,
		seed:    seed,
	}
}

package faqHandler

import (
	faqService "HealthAssistant/internal/api/faq/service"
	"HealthAssistant/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type FAQHandler struct {
	log        *logrus.Logger
	middleware middleware.Middleware
	faqService faqService.IFAQService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	fs faqService.IFAQService,
) *FAQHandler {
	return &FAQHandler{
		log:        log,
		middleware: middleware,
		faqService: fs,
	}
}

func (h *FAQHandler) Start(srv fiber.Router) {
	faqs := srv.Group("/faqs")

	faqs.Get("", h.GetAllFAQs)
}

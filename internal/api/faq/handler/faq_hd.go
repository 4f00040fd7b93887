package faqHandler

import (
	"context"
	"time"

	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/handlerUtil"
	"HealthAssistant/pkg/log"
	"github.com/gofiber/fiber/v2"
)

func (h *FAQHandler) GetAllFAQs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get all faqs request")

	result, err := h.faqService.GetAllFAQs(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_all_faqs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

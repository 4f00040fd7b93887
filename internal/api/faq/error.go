package faq

import "HealthAssistant/pkg/response"

var (
	ErrFAQNotFound       = response.NewError(404, "faq not found")
	ErrFAQStoreFailure   = response.NewError(500, "faq store unavailable")
	ErrUnsupportedDriver = response.NewError(500, "unsupported database driver")
)

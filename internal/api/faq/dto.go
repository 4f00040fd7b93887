package faq

type FAQResponse struct {
	ID       int64  `json:"id"`
	Intent   string `json:"intent"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQListResponse struct {
	FAQs  []FAQResponse `json:"faqs"`
	Total int           `json:"total"`
}

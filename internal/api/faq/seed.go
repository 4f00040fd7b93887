package faq

import "HealthAssistant/internal/entity"

// SampleFAQs populates an empty faqs table.
var SampleFAQs = []entity.FAQ{
	{
		Intent:   "dengue_symptoms",
		Question: "What are the symptoms of dengue?",
		Answer:   "Common symptoms include high fever, headache, pain behind the eyes, and joint and muscle pain.",
	},
	{
		Intent:   "malaria_prevention",
		Question: "How can I prevent malaria?",
		Answer:   "Prevent malaria by using mosquito nets, applying insect repellent, and removing stagnant water around your home.",
	},
	{
		Intent:   "newborn_vaccination",
		Question: "What is the vaccination schedule for a newborn?",
		Answer:   "A newborn should get the BCG, Oral Polio Vaccine (OPV 0), and Hepatitis B (Birth Dose) vaccines.",
	},
	{
		Intent:   "covid_symptoms",
		Question: "What are the symptoms of covid?",
		Answer:   "Common symptoms are fever, cough, tiredness, and loss of taste or smell. Seek medical help for severe symptoms.",
	},
	{
		Intent:   "common_cold_treatment",
		Question: "How to treat a common cold?",
		Answer:   "Rest, drink plenty of fluids, and use over-the-counter medications for symptoms. Consult a doctor if it worsens.",
	},
}

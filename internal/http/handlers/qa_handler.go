package handlers

import "github.com/gofiber/fiber/v2"

// QAHandler serves the curated quality-assurance content shown in the app's
// "Feed Quality" section. The content is static editorial material, not
// store data.
type QAHandler struct{}

type qaArticle struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

var qaArticles = []qaArticle{
	{
		Slug:    "reading-feed-labels",
		Title:   "How to Read a Feed Label",
		Summary: "Crude protein, fibre and ash percentages explained, and what they mean for your flock or herd.",
	},
	{
		Slug:    "aflatoxin-risks",
		Title:   "Aflatoxin: Spotting and Avoiding Contaminated Feed",
		Summary: "Storage conditions that breed aflatoxin, visual warning signs, and why certification matters.",
	},
	{
		Slug:    "kebs-certification",
		Title:   "What KEBS Certification Tells You",
		Summary: "How to verify a seller's certificate number and what the standards mark covers.",
	},
	{
		Slug:    "storing-feed-on-farm",
		Title:   "Storing Feed on the Farm",
		Summary: "Keeping feed dry and pest-free between delivery and use to preserve nutritional value.",
	},
}

func (h *QAHandler) List(c *fiber.Ctx) error {
	return c.JSON(qaArticles)
}

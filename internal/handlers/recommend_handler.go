package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"talentsift/assessment-recommender/internal/models"
	"talentsift/assessment-recommender/internal/services"
)

const defaultTimeLimit = 60

type RecommendHandler struct {
	recommender services.RecommenderService
	webpage     services.WebPageService
}

func NewRecommendHandler(
	recommender services.RecommenderService,
	webpage services.WebPageService,
) *RecommendHandler {
	return &RecommendHandler{
		recommender: recommender,
		webpage:     webpage,
	}
}

// HandleRecommend handles POST /recommend
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" && req.JobURL == "" && req.JobText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one of query, jobUrl, or jobText must be provided",
		})
	}

	timeLimit := defaultTimeLimit
	if req.TimeLimit != nil {
		if *req.TimeLimit <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Time limit must be a positive number",
			})
		}
		timeLimit = *req.TimeLimit
	}

	inputText := req.Query

	// A failed fetch is not fatal: the other input sources still count.
	if req.JobURL != "" {
		pageText, err := h.webpage.FetchText(c.UserContext(), req.JobURL)
		if err != nil {
			log.Printf("⚠️  Failed to fetch job URL: %v\n", err)
		} else {
			inputText += " " + pageText
		}
	}

	if req.JobText != "" {
		inputText += " " + req.JobText
	}

	inputText = strings.TrimSpace(inputText)
	if inputText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid input text could be processed",
		})
	}

	response := h.recommender.Recommend(c.UserContext(), inputText, timeLimit)

	return c.JSON(response)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"app/forecast"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleGetForecastCommentary feeds the computed forecast into Gemini
// and returns a qualitative narrative. The deterministic insights stay
// rule-based; this commentary is additive and requires GEMINI_API_KEY.
func HandleGetForecastCommentary(c *fiber.Ctx) error {
	shopID := c.Params("shopId")

	result, err := ForecastService.Cached(shopID)
	if errors.Is(err, forecast.ErrNotCached) {
		result, err = ForecastService.Run(c.Context(), shopID)
	}
	if err != nil {
		if errors.Is(err, forecast.ErrNoStoreLocation) {
			return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{
				"status":  "error",
				"message": "Set the store location to enable weather-aware forecasting",
			})
		}
		log.Printf("Error computing forecast for commentary (shop %s): %v", shopID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate forecast"})
	}

	prompt := constructCommentaryPrompt(result)

	ctx := c.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to connect to AI service"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate commentary from AI"})
	}

	analysis, err := parseCommentaryResponse(resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "success", "data": analysis})
}

// constructCommentaryPrompt summarizes the forecast run for the model.
func constructCommentaryPrompt(result *models.ForecastResult) string {
	var sb strings.Builder
	for _, p := range result.Points {
		if p.Kind != models.KindForecast {
			continue
		}
		line := fmt.Sprintf("%s: predicted sales %.0f", p.Date, p.PredictedSales)
		if p.Weather != nil {
			line += fmt.Sprintf(" (max temp %.1f°C, precipitation %.1fmm)", p.Weather.MaxTemperature, p.Weather.Precipitation)
		}
		sb.WriteString(line + "\n")
	}
	for _, ins := range result.Insights {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", ins.Category, ins.Message))
	}

	jsonFormat := `{"summary":"string","positive_factors":["string",...],"negative_factors":["string",...]}`

	return fmt.Sprintf(`
        You are an expert retail data analyst. Below is a 14-day weather-aware sales forecast for one store, with the rule-based insights already derived from it.

        %s

        Write a short qualitative commentary for the store manager.

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, sb.String(), jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseCommentaryResponse parses the JSON from Gemini into a structured analysis.
func parseCommentaryResponse(resp *genai.GenerateContentResponse) (*models.AiAnalysis, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var geminiText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			geminiText += string(txt)
		}
	}

	if geminiText == "" {
		return nil, fmt.Errorf("no text content received from AI")
	}

	// Clean the response to get only the JSON object
	jsonStr := extractJSON(geminiText)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from Gemini response: %s", geminiText)
		return nil, fmt.Errorf("failed to parse AI response format")
	}

	var analysis models.AiAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		log.Printf("Error parsing Gemini JSON: %v\nRaw JSON: %s", err, jsonStr)
		return nil, fmt.Errorf("failed to parse AI commentary")
	}

	return &analysis, nil
}

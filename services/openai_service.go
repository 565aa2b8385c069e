package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"dietapp-backend/models"
)

// OpenAIOptions configures the AI client explicitly; nothing is read
// from the environment after construction.
type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	Timeout    time.Duration
}

func OpenAIOptionsFromEnv() OpenAIOptions {
	opts := OpenAIOptions{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		BaseURL:    os.Getenv("OPENAI_BASE_URL"),
		Model:      os.Getenv("OPENAI_MODEL_NAME"),
		ImageModel: os.Getenv("OPENAI_IMAGE_MODEL_NAME"),
		Timeout:    30 * time.Second,
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.ImageModel == "" {
		opts.ImageModel = "stabilityai/stable-diffusion-xl-base-1.0"
	}
	return opts
}

// OpenAIService talks to an OpenAI-compatible chat completions API. A
// timeout on the client bounds every generation call; timeouts surface
// as ordinary generation errors.
type OpenAIService struct {
	opts   OpenAIOptions
	client *http.Client
}

func NewOpenAIService(opts OpenAIOptions) *OpenAIService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIService{
		opts:   opts,
		client: &http.Client{Timeout: timeout},
	}
}

// RawItem is one suggestion as returned by the model. Numeric fields
// stay untyped here: models hand back plain numbers, strings and ranges
// like "250-300", coerced later before persisting.
type RawItem struct {
	Name     string      `json:"name"`
	Serving  string      `json:"serving"`
	Calories interface{} `json:"calories"`
	ProteinG interface{} `json:"protein_g"`
	CarbsG   interface{} `json:"carbs_g"`
	FatsG    interface{} `json:"fats_g"`
	Note     string      `json:"note"`
}

type GeneratedMeal struct {
	Items []RawItem
}

const recommenderSystemPrompt = "You are a nutritionist. For the given user, suggest suitable Indian food options " +
	"for one meal (breakfast/lunch/snacks/dinner). " +
	"Follow these rules:\n" +
	"- Strongly respect diet_preference (Veg, Non-Veg, Vegan, Eggetarian, Keto/Low-Carb, High Protein).\n" +
	"- STRICTLY avoid ALL allergens mentioned in allergies list.\n" +
	"- Respect health_conditions (e.g. Diabetes -> avoid sugar, simple carbs).\n" +
	"- Give foods that are realistic, commonly available.\n" +
	"- Respond ONLY as JSON with a single object: " +
	"{ \"items\": [ { \"name\", \"serving\", \"calories\", \"protein_g\", \"carbs_g\", \"fats_g\", \"note\" } ], " +
	"\"image_prompt\": \"A detailed visual description of the main dish recommended, suitable for generating an image\" }.\n" +
	"- calories/macros can be approximate, but reasonable.\n" +
	"- 8 to 10 items max."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for one slot's recommendations.
func (s *OpenAIService) Generate(profile *models.UserProfile, mealType string) (*GeneratedMeal, error) {
	if s.opts.APIKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}

	userPayload := map[string]interface{}{
		"meal_type": mealType,
		"user": map[string]interface{}{
			"name":              profile.Name,
			"age":               profile.Age,
			"weight":            profile.Weight,
			"height_cm":         profile.HeightCm,
			"gender":            profile.Gender,
			"goal":              profile.Goal,
			"diet_preference":   profile.DietPref,
			"health_conditions": profile.HealthConditions,
			"allergies":         profile.Allergies,
		},
	}
	up, err := json.Marshal(userPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user payload: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: s.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: recommenderSystemPrompt},
			{Role: "user", Content: string(up)},
		},
		Temperature: 0.5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequest("POST", s.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat API: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat API error %d: %s", resp.StatusCode, string(respBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBytes, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("empty chat response")
	}

	raw := stripCodeFences(cr.Choices[0].Message.Content)

	// the answer's top-level image_prompt is ignored: per-item images
	// come from ImageService
	var parsed struct {
		Items []RawItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// keep the raw text visible rather than discarding the answer
		return &GeneratedMeal{
			Items: []RawItem{{Name: raw}},
		}, nil
	}

	return &GeneratedMeal{Items: parsed.Items}, nil
}

// stripCodeFences removes a ```json ... ``` wrapper some models add
// around their JSON answer.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dietapp-backend/logger"

	"github.com/sirupsen/logrus"
)

const placeholderImageURL = "https://via.placeholder.com/400x400?text=Food+Image"

// FallbackImageURL builds a deterministic stock-photo URL from the first
// word of an item name. Used whenever image generation is unavailable or
// fails.
func FallbackImageURL(itemName string) string {
	first := strings.Fields(itemName)
	if len(first) == 0 {
		return placeholderImageURL
	}
	return fmt.Sprintf("https://source.unsplash.com/400x400/?%s,food", url.QueryEscape(first[0]))
}

// ImageService produces an image URL for a meal item, best effort: it
// never returns an error, only a fallback URL.
type ImageService struct {
	opts   OpenAIOptions
	client *http.Client
}

func NewImageService(opts OpenAIOptions) *ImageService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ImageService{
		opts:   opts,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *ImageService) ImageFor(name, serving string) string {
	if s.opts.APIKey == "" {
		return FallbackImageURL(name)
	}

	prompt := fmt.Sprintf(
		"Professional food photography of %s (%s), appetizing presentation, studio lighting, on a plate, high quality, professional restaurant style",
		name, serving,
	)

	body, err := json.Marshal(map[string]interface{}{
		"model":  s.opts.ImageModel,
		"prompt": prompt,
		"n":      1,
		"size":   "1024x1024",
	})
	if err != nil {
		return FallbackImageURL(name)
	}

	req, err := http.NewRequest("POST", s.opts.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return FallbackImageURL(name)
	}
	req.Header.Set("Authorization", "Bearer "+s.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("image generation failed, using fallback", logrus.Fields{"item": name, "error": err.Error()})
		return FallbackImageURL(name)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		logger.Warn("image generation failed, using fallback", logrus.Fields{"item": name, "status": resp.StatusCode})
		return FallbackImageURL(name)
	}

	var out struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil || len(out.Data) == 0 || out.Data[0].URL == "" {
		return FallbackImageURL(name)
	}
	return out.Data[0].URL
}

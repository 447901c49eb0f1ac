// Package insights segments the client base with Gemini. The model is
// asked for strict JSON; responses are defensively stripped of Markdown
// fences before decoding.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/obrienteixeira/tokyo-manicure/internal/core"
)

// Segment is one group of clients with a targeted marketing suggestion.
type Segment struct {
	SegmentName         string   `json:"segmentName"`
	Description         string   `json:"description"`
	ClientNames         []string `json:"clientNames"`
	MarketingSuggestion string   `json:"marketingSuggestion"`
}

type Service struct {
	model string
}

func NewService(model string) *Service {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Service{model: model}
}

type clientProfile struct {
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registeredAt"`
	Notes        string    `json:"notes,omitempty"`
}

// SegmentClients asks Gemini to group the salon's clients and propose a
// marketing campaign per group.
func (s *Service) SegmentClients(ctx context.Context, clients []core.Client) ([]Segment, error) {
	if len(clients) == 0 {
		return nil, fmt.Errorf("no clients to segment")
	}

	profiles := make([]clientProfile, len(clients))
	for i, c := range clients {
		profiles[i] = clientProfile{
			Name:         c.Name,
			RegisteredAt: c.RegisteredAt,
			Notes:        c.Notes,
		}
	}

	clientData, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode client data: %w", err)
	}

	prompt := "You are a marketing analyst for a Japanese-themed nail salon called \"Tokyo Nails\".\n" +
		"Based on the following client data, segment the clients into distinct groups.\n" +
		"For each group provide a name, a short description, the list of client names, and a targeted marketing campaign suggestion in Portuguese.\n" +
		"The salon has a Japanese theme, so try to incorporate that in your suggestions.\n\n" +
		"Client data:\n" + string(clientData) + "\n\n" +
		"Output STRICT JSON only: an object with a \"segments\" array, each element having\n" +
		"\"segmentName\" (string), \"description\" (string), \"clientNames\" (array of strings) and \"marketingSuggestion\" (string).\n" +
		"Do NOT wrap the response in code fences.\n"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var parsed struct {
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal model response: %w", err)
	}

	return parsed.Segments, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the no-fence instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = s[start : end+1]
			s = strings.TrimSpace(s)
		}
	}

	return s
}

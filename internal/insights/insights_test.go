package insights

import (
	"encoding/json"
	"testing"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain json",
			raw:  `{"segments":[]}`,
			want: `{"segments":[]}`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"segments\":[]}\n```",
			want: `{"segments":[]}`,
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"segments\":[]}\n```",
			want: `{"segments":[]}`,
		},
		{
			name: "leading prose",
			raw:  "Here is the result:\n{\"segments\":[]}",
			want: `{"segments":[]}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n{\"segments\":[]}\n  ",
			want: `{"segments":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanModelJSON(tt.raw)
			if got != tt.want {
				t.Errorf("cleanModelJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSegmentDecoding(t *testing.T) {
	raw := "```json\n" + `{
		"segments": [
			{
				"segmentName": "Clientes fiéis",
				"description": "Clientes com visitas frequentes",
				"clientNames": ["Ana Tanaka", "Beatriz Sato"],
				"marketingSuggestion": "Programa de fidelidade com tema de flor de cerejeira"
			}
		]
	}` + "\n```"

	var parsed struct {
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		t.Fatalf("unmarshal cleaned response: %v", err)
	}

	if len(parsed.Segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(parsed.Segments))
	}
	seg := parsed.Segments[0]
	if seg.SegmentName != "Clientes fiéis" {
		t.Errorf("SegmentName = %q", seg.SegmentName)
	}
	if len(seg.ClientNames) != 2 {
		t.Errorf("len(ClientNames) = %d, want 2", len(seg.ClientNames))
	}
}

package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       OpenRouterConfig
		wantErr   bool
		wantModel string
	}{
		{
			name:      "default model",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"},
			wantModel: "google/gemini-2.0-flash-exp",
		},
		{
			name:    "empty API key",
			cfg:     OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
			wantErr: true,
		},
		{
			name:      "namespaced model passes through unmapped",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-haiku-4-5"},
			wantModel: "anthropic/claude-haiku-4-5",
		},
		{
			name:      "custom base URL",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp", BaseURL: "https://gateway.example/v1"},
			wantModel: "google/gemini-2.0-flash-exp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.ModelID(); got != tt.wantModel {
				t.Errorf("ModelID() = %q, want %q", got, tt.wantModel)
			}
		})
	}
}

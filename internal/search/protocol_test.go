package search

import "testing"

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantText  string
		wantErr   bool
	}{
		{
			name:      "valid answer",
			input:     "T|Vacinas treinam o sistema imune.",
			wantValid: true,
			wantText:  "Vacinas treinam o sistema imune.",
		},
		{
			name:      "low confidence",
			input:     "F|Não há contexto suficiente.",
			wantValid: false,
			wantText:  "Não há contexto suficiente.",
		},
		{
			name:      "splits on first delimiter only",
			input:     "T|a | b | c",
			wantValid: true,
			wantText:  "a | b | c",
		},
		{
			name:      "unknown flag is not valid",
			input:     "X|alguma coisa",
			wantValid: false,
			wantText:  "alguma coisa",
		},
		{
			name:    "missing delimiter",
			input:   "resposta sem flag",
			wantErr: true,
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, text, err := parseCompletion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", valid, tt.wantValid)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
		})
	}
}

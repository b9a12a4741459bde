package search

import "testing"

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Vacina",
			want:  "vacina",
		},
		{
			name:  "strips punctuation",
			input: "o que é dengue?",
			want:  "o que e dengue",
		},
		{
			name:  "folds accents to ascii",
			input: "São Paulo",
			want:  "sao paulo",
		},
		{
			name:  "keeps digits and spaces",
			input: "covid-19 em 2021",
			want:  "covid19 em 2021",
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeQuery(tt.input); got != tt.want {
				t.Errorf("normalizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLookup(t *testing.T) {
	// Lookup keeps punctuation so URL fragments still match.
	if got := normalizeLookup("Amazônia/queimadas?id=1"); got != "amazonia/queimadas?id=1" {
		t.Errorf("normalizeLookup = %q", got)
	}
}

func TestMemoKeyDistinguishesArguments(t *testing.T) {
	base := memoKey("search", "vacina", false, "")

	if memoKey("search", "vacina", false, "") != base {
		t.Error("identical arguments produced different keys")
	}
	if memoKey("search", "dengue", false, "") == base {
		t.Error("different query produced the same key")
	}
	if memoKey("search", "vacina", true, "") == base {
		t.Error("different summary flag produced the same key")
	}
	if memoKey("search", "vacina", false, "prompt") == base {
		t.Error("different system prompt produced the same key")
	}
}

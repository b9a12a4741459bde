package repository

import "testing"

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  string
	}{
		{
			name:  "empty vector",
			input: []float64{},
			want:  "[]",
		},
		{
			name:  "single component",
			input: []float64{0.5},
			want:  "[0.5]",
		},
		{
			name:  "multiple components",
			input: []float64{0.1, -0.25, 3},
			want:  "[0.1,-0.25,3]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vectorLiteral(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

package graph

import "testing"

func TestEdgeStrokeWidth(t *testing.T) {
	tests := []struct {
		name     string
		strength float64
		want     float64
	}{
		{name: "zero strength", strength: 0, want: 1},
		{name: "full strength", strength: 1, want: 5},
		{name: "mid strength", strength: 0.5, want: 3},
		{name: "clamped below", strength: -0.5, want: 1},
		{name: "clamped above", strength: 1.5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EdgeStrokeWidth(tt.strength); got != tt.want {
				t.Errorf("EdgeStrokeWidth(%v) = %v, want %v", tt.strength, got, tt.want)
			}
		})
	}
}

func TestQualityColor(t *testing.T) {
	tests := []struct {
		name    string
		quality float64
		want    string
	}{
		{name: "high quality", quality: 0.9, want: QualityColorGreen},
		{name: "boundary 0.8 is yellow", quality: 0.8, want: QualityColorYellow},
		{name: "boundary 0.5 is yellow", quality: 0.5, want: QualityColorYellow},
		{name: "just below 0.5 is red", quality: 0.49, want: QualityColorRed},
		{name: "low quality", quality: 0.1, want: QualityColorRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QualityColor(tt.quality); got != tt.want {
				t.Errorf("QualityColor(%v) = %v, want %v", tt.quality, got, tt.want)
			}
		})
	}
}

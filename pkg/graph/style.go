package graph

// Quality color buckets rendered for resource nodes.
const (
	QualityColorGreen  = "#59a14f"
	QualityColorYellow = "#edc948"
	QualityColorRed    = "#e15759"
)

// EdgeStrokeWidth maps an edge strength in [0,1] to a rendered stroke
// width in [1,5]. Out-of-range strengths are clamped.
func EdgeStrokeWidth(strength float64) float64 {
	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}
	return 1 + strength*4
}

// QualityColor maps a quality score to its bucket color: green above 0.8,
// yellow for [0.5, 0.8], red below 0.5.
func QualityColor(quality float64) string {
	switch {
	case quality > 0.8:
		return QualityColorGreen
	case quality >= 0.5:
		return QualityColorYellow
	default:
		return QualityColorRed
	}
}

// Package vision defines the image label detection boundary. The detection
// model itself is an external capability; this package only shapes its input
// and output for the classification pipeline.
package vision

import "context"

// Label is a text tag describing detected image content. Labels arrive in
// descending model-confidence order and that order is preserved everywhere
// downstream.
type Label struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Texts projects the label sequence to its text values, preserving order.
func Texts(labels []Label) []string {
	texts := make([]string, 0, len(labels))
	for _, l := range labels {
		texts = append(texts, l.Text)
	}
	return texts
}

// Detector produces ranked labels for an image.
type Detector interface {
	// DetectLabels annotates the image bytes and returns labels in
	// descending confidence order.
	DetectLabels(ctx context.Context, image []byte) ([]Label, error)

	// Probe verifies the capability is reachable. Invoked explicitly by the
	// hosting process at startup rather than implicitly on construction.
	Probe(ctx context.Context) error
}

package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"
)

const labelDetection = "LABEL_DETECTION"

type googleDetector struct {
	svc        *visionapi.Service
	maxResults int64
	logger     *slog.Logger
}

// NewGoogleDetector creates a Detector backed by the Google Cloud Vision
// REST API. Construction performs no network I/O; call Probe at startup to
// verify connectivity.
func NewGoogleDetector(ctx context.Context, cfg *Config, logger *slog.Logger) (Detector, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}

	return &googleDetector{
		svc:        svc,
		maxResults: int64(cfg.MaxResults),
		logger:     logger.With("system", "vision"),
	}, nil
}

func (d *googleDetector) DetectLabels(ctx context.Context, image []byte) ([]Label, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{{
			Image: &visionapi.Image{
				Content: base64.StdEncoding.EncodeToString(image),
			},
			Features: []*visionapi.Feature{{
				Type:       labelDetection,
				MaxResults: d.maxResults,
			}},
		}},
	}

	resp, err := d.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("annotate image: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("annotate image: empty response")
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return nil, fmt.Errorf("annotate image: %s", annotated.Error.Message)
	}

	labels := make([]Label, 0, len(annotated.LabelAnnotations))
	for _, a := range annotated.LabelAnnotations {
		labels = append(labels, Label{
			Text:       a.Description,
			Confidence: a.Score,
		})
	}

	d.logger.Debug("labels detected", "count", len(labels))
	return labels, nil
}

// Probe issues an empty annotate batch, surfacing transport and credential
// failures without spending detection quota.
func (d *googleDetector) Probe(ctx context.Context) error {
	_, err := d.svc.Images.Annotate(&visionapi.BatchAnnotateImagesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("vision probe: %w", err)
	}
	return nil
}

package classify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Tanmay1202/EnviRon/internal/facilities"
	"github.com/Tanmay1202/EnviRon/internal/metrics"
	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
	"github.com/Tanmay1202/EnviRon/internal/vision"
	"github.com/Tanmay1202/EnviRon/pkg/retry"
)

// System defines the public contract for the classification pipeline.
type System interface {
	Handler() *Handler
	Classify(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	detector  vision.Detector
	locator   facilities.Locator
	retryOpts retry.Options
	logger    *slog.Logger
}

// New creates the classification service. The retry options govern only the
// vision capability call; the facility lookup is a single best-effort query.
func New(
	detector vision.Detector,
	locator facilities.Locator,
	retryOpts retry.Options,
	logger *slog.Logger,
) System {
	scoped := logger.With("system", "classify")
	if retryOpts.Logger == nil {
		retryOpts.Logger = scoped
	}
	return &service{
		detector:  detector,
		locator:   locator,
		retryOpts: retryOpts,
		logger:    scoped,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Classify runs the pipeline: validate image, detect labels under the retry
// policy, resolve the category, then look up facilities when a location was
// supplied. Vision failure is fatal to the request; facility lookup failure
// degrades to an empty list.
func (s *service) Classify(ctx context.Context, req Request) (*Result, error) {
	if req.UserID == "" {
		return nil, ErrMissingUser
	}
	if !decodableImage(req.Image) {
		return nil, ErrInvalidImage
	}

	labels, err := retry.Do(ctx, func(ctx context.Context) ([]vision.Label, error) {
		return s.detector.DetectLabels(ctx, req.Image)
	}, s.retryOpts)
	if err != nil {
		metrics.VisionFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: %v", ErrVisionUnavailable, err)
	}

	texts := vision.Texts(labels)
	category := taxonomy.Classify(texts)
	metrics.ClassificationsTotal.WithLabelValues(string(category)).Inc()

	found := []facilities.Facility{}
	if req.Location != nil {
		found = s.locator.FindNearby(ctx, category, *req.Location)
	}

	s.logger.Info("image classified",
		"user_id", req.UserID,
		"category", category,
		"labels", len(texts),
		"facilities", len(found),
	)

	return &Result{
		Category:     category,
		Labels:       texts,
		Facilities:   found,
		Instructions: taxonomy.Instructions(string(category)),
		Tip:          taxonomy.Tip(string(category)),
	}, nil
}

// decodableImage sniffs the payload's content type. The vision capability
// accepts JPEG and PNG; anything else is rejected before spending a call.
func decodableImage(image []byte) bool {
	if len(image) == 0 {
		return false
	}
	return strings.HasPrefix(http.DetectContentType(image), "image/")
}

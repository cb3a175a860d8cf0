package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// MaxImageSize is the largest accepted image payload.
const MaxImageSize = 5 * 1024 * 1024

// State is the upload lifecycle position.
type State int

const (
	StateIdle State = iota
	StateImageSelected
	StateClassifying
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateImageSelected:
		return "ImageSelected"
	case StateClassifying:
		return "Classifying"
	case StateResult:
		return "Result"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Orchestrator lifecycle errors.
var (
	ErrAuthenticationRequired = errors.New("a valid session is required")
	ErrUnsupportedImage       = errors.New("image must be a JPEG or PNG file")
	ErrImageTooLarge          = errors.New("image exceeds the 5 MiB limit")
	ErrNoImageSelected        = errors.New("no image selected")
	ErrClassificationPending  = errors.New("a classification is already in flight")
)

// Orchestrator owns the interactive upload lifecycle: image validation,
// transport encoding, the classification call, and the follow-on progress
// update. One classification may be in flight at a time.
type Orchestrator struct {
	api    *Client
	userID string
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	image    []byte
	location *LatLng
	result   *ClassifyResponse
	newBadge string
	lastErr  error
}

// NewOrchestrator creates an Orchestrator in the Idle state.
func NewOrchestrator(api *Client, userID string, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		api:    api,
		userID: userID,
		logger: logger.With("system", "upload"),
		state:  StateIdle,
	}
}

// State returns the current lifecycle position.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Result returns the last classification result, or nil before one exists.
func (o *Orchestrator) Result() *ClassifyResponse {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// NewBadge returns the badge awarded by the last classification, or "" when
// none was newly awarded.
func (o *Orchestrator) NewBadge() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.newBadge
}

// Err returns the failure that produced the Error state, or nil.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// SetLocation attaches an optional geographic point used for facility lookup.
func (o *Orchestrator) SetLocation(location *LatLng) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.location = location
}

// SelectImage validates and stages an image, transitioning to ImageSelected.
// A rejected image keeps the current state. Re-selecting from any settled
// state clears the previous result, error, and badge overlay.
func (o *Orchestrator) SelectImage(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateClassifying {
		return ErrClassificationPending
	}

	if !supportedImage(data) {
		return ErrUnsupportedImage
	}
	if len(data) > MaxImageSize {
		return ErrImageTooLarge
	}

	o.image = data
	o.result = nil
	o.newBadge = ""
	o.lastErr = nil
	o.state = StateImageSelected
	return nil
}

// Classify runs the classification for the staged image. On success the
// orchestrator settles in Result and records the event against the user's
// progress; a recording failure is a non-fatal warning and never reverts the
// Result state. On classification failure the orchestrator settles in Error
// and the image selection is preserved so the call may be retried.
func (o *Orchestrator) Classify(ctx context.Context) (*ClassifyResponse, error) {
	o.mu.Lock()
	if o.state == StateClassifying {
		o.mu.Unlock()
		return nil, ErrClassificationPending
	}
	if len(o.image) == 0 {
		o.mu.Unlock()
		return nil, ErrNoImageSelected
	}
	if !o.api.HasSession() {
		o.mu.Unlock()
		return nil, ErrAuthenticationRequired
	}

	req := ClassifyRequest{
		ImageBase64:  base64.StdEncoding.EncodeToString(o.image),
		UserID:       o.userID,
		UserLocation: o.location,
	}
	o.state = StateClassifying
	o.mu.Unlock()

	resp, err := o.api.ClassifyWaste(ctx, req)

	o.mu.Lock()
	if err != nil {
		o.state = StateError
		o.lastErr = err
		o.mu.Unlock()
		return nil, err
	}
	o.state = StateResult
	o.result = resp
	o.mu.Unlock()

	o.recordProgress(ctx, resp.WasteType)
	return resp, nil
}

// recordProgress is the best-effort follow-on to a successful classification.
func (o *Orchestrator) recordProgress(ctx context.Context, category string) {
	record, err := o.api.RecordClassification(ctx, o.userID, category)
	if err != nil {
		o.logger.Warn("progress update failed",
			"user_id", o.userID,
			"category", category,
			"error", err,
		)
		return
	}

	if record.NewBadge != nil {
		o.mu.Lock()
		o.newBadge = *record.NewBadge
		o.mu.Unlock()
	}
}

// supportedImage sniffs the payload for the accepted upload formats.
func supportedImage(data []byte) bool {
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png":
		return true
	default:
		return false
	}
}

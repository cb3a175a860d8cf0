package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

var (
	pngImage  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpegImage = append([]byte("\xff\xd8\xff\xe0"), bytes.Repeat([]byte{0}, 32)...)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type apiStub struct {
	classifyStatus int
	classifyBody   ClassifyResponse
	recordStatus   int
	recordBody     RecordResult
	recordCalls    atomic.Int32
}

func (s *apiStub) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /classify-waste", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if s.classifyStatus != http.StatusOK {
			w.WriteHeader(s.classifyStatus)
			json.NewEncoder(w).Encode(map[string]string{"error": "upstream failure"})
			return
		}
		json.NewEncoder(w).Encode(s.classifyBody)
	})
	mux.HandleFunc("POST /progress/classifications", func(w http.ResponseWriter, r *http.Request) {
		s.recordCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if s.recordStatus != http.StatusOK {
			w.WriteHeader(s.recordStatus)
			json.NewEncoder(w).Encode(map[string]string{"error": "persistence failure"})
			return
		}
		json.NewEncoder(w).Encode(s.recordBody)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSelectImageValidation(t *testing.T) {
	orch := NewOrchestrator(New("http://localhost", "token"), "user-1", testLogger())

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"png accepted", pngImage, nil},
		{"jpeg accepted", jpegImage, nil},
		{"empty payload", nil, ErrUnsupportedImage},
		{"text payload", []byte("this is not an image at all, just text"), ErrUnsupportedImage},
		{"oversize image", append(append([]byte{}, pngImage...), make([]byte, MaxImageSize)...), ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := orch.SelectImage(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && orch.State() != StateImageSelected {
				t.Errorf("state = %v, want %v", orch.State(), StateImageSelected)
			}
		})
	}
}

func TestSelectImageRejectionKeepsState(t *testing.T) {
	orch := NewOrchestrator(New("http://localhost", "token"), "user-1", testLogger())

	if err := orch.SelectImage([]byte("not an image, plain text content")); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("err = %v, want ErrUnsupportedImage", err)
	}
	if orch.State() != StateIdle {
		t.Errorf("state = %v, want %v", orch.State(), StateIdle)
	}
}

func TestClassifyRequiresSession(t *testing.T) {
	orch := NewOrchestrator(New("http://localhost", ""), "user-1", testLogger())
	if err := orch.SelectImage(pngImage); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}

	_, err := orch.Classify(context.Background())
	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("err = %v, want ErrAuthenticationRequired", err)
	}
}

func TestClassifyRequiresImage(t *testing.T) {
	orch := NewOrchestrator(New("http://localhost", "token"), "user-1", testLogger())

	_, err := orch.Classify(context.Background())
	if !errors.Is(err, ErrNoImageSelected) {
		t.Fatalf("err = %v, want ErrNoImageSelected", err)
	}
}

func TestClassifySuccessWithBadge(t *testing.T) {
	badge := "Eco-Warrior"
	stub := &apiStub{
		classifyStatus: http.StatusOK,
		classifyBody: ClassifyResponse{
			Labels:       []string{"plastic bottle"},
			WasteType:    "Recyclable",
			Locations:    []Facility{},
			Instructions: "Clean and place in the recycling bin",
			Tip:          "Consider reusable alternatives",
		},
		recordStatus: http.StatusOK,
		recordBody:   RecordResult{Points: 20, NewBadge: &badge},
	}
	server := stub.server(t)

	orch := NewOrchestrator(New(server.URL, "token"), "user-1", testLogger())
	if err := orch.SelectImage(pngImage); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}

	resp, err := orch.Classify(context.Background())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if orch.State() != StateResult {
		t.Errorf("state = %v, want %v", orch.State(), StateResult)
	}
	if resp.WasteType != "Recyclable" {
		t.Errorf("wasteType = %q, want %q", resp.WasteType, "Recyclable")
	}
	if orch.NewBadge() != badge {
		t.Errorf("badge = %q, want %q", orch.NewBadge(), badge)
	}
	if stub.recordCalls.Load() != 1 {
		t.Errorf("record calls = %d, want 1", stub.recordCalls.Load())
	}
}

func TestClassifyRecordFailureIsNonFatal(t *testing.T) {
	stub := &apiStub{
		classifyStatus: http.StatusOK,
		classifyBody:   ClassifyResponse{WasteType: "Organic"},
		recordStatus:   http.StatusInternalServerError,
	}
	server := stub.server(t)

	orch := NewOrchestrator(New(server.URL, "token"), "user-1", testLogger())
	if err := orch.SelectImage(pngImage); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}

	if _, err := orch.Classify(context.Background()); err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if orch.State() != StateResult {
		t.Errorf("state = %v, want %v after record failure", orch.State(), StateResult)
	}
	if orch.NewBadge() != "" {
		t.Errorf("badge = %q, want none", orch.NewBadge())
	}
}

func TestClassifyFailurePreservesSelection(t *testing.T) {
	stub := &apiStub{classifyStatus: http.StatusInternalServerError}
	server := stub.server(t)

	orch := NewOrchestrator(New(server.URL, "token"), "user-1", testLogger())
	if err := orch.SelectImage(pngImage); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}

	if _, err := orch.Classify(context.Background()); err == nil {
		t.Fatal("expected classification error")
	}

	if orch.State() != StateError {
		t.Errorf("state = %v, want %v", orch.State(), StateError)
	}
	if orch.Err() == nil {
		t.Error("Err() = nil, want failure")
	}
	if stub.recordCalls.Load() != 0 {
		t.Errorf("record calls = %d, want 0", stub.recordCalls.Load())
	}

	// The staged image survives the failure; a retry needs no re-selection.
	stub.classifyStatus = http.StatusOK
	stub.recordStatus = http.StatusOK
	if _, err := orch.Classify(context.Background()); err != nil {
		t.Fatalf("retry Classify: %v", err)
	}
	if orch.State() != StateResult {
		t.Errorf("state = %v, want %v", orch.State(), StateResult)
	}
}

func TestReselectResetsSettledState(t *testing.T) {
	badge := "Eco-Warrior"
	stub := &apiStub{
		classifyStatus: http.StatusOK,
		classifyBody:   ClassifyResponse{WasteType: "Recyclable"},
		recordStatus:   http.StatusOK,
		recordBody:     RecordResult{Points: 20, NewBadge: &badge},
	}
	server := stub.server(t)

	orch := NewOrchestrator(New(server.URL, "token"), "user-1", testLogger())
	if err := orch.SelectImage(pngImage); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}
	if _, err := orch.Classify(context.Background()); err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if err := orch.SelectImage(jpegImage); err != nil {
		t.Fatalf("re-select: %v", err)
	}

	if orch.State() != StateImageSelected {
		t.Errorf("state = %v, want %v", orch.State(), StateImageSelected)
	}
	if orch.Result() != nil {
		t.Error("result not cleared by re-select")
	}
	if orch.NewBadge() != "" {
		t.Error("badge overlay not cleared by re-select")
	}
	if orch.Err() != nil {
		t.Error("error not cleared by re-select")
	}
}

func TestClassifyAuthenticationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	orch := NewOrchestrator(New(server.URL, "expired-token"), "user-1", testLogger())
	if err := orch.SelectImage(pngImage); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}

	_, err := orch.Classify(context.Background())
	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("err = %v, want ErrAuthenticationRequired", err)
	}
}

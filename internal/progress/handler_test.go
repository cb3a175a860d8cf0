package progress

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tanmay1202/EnviRon/pkg/pagination"
)

type fakeSystem struct {
	recordResult *RecordResult
	recordErr    error
	progress     *Progress
	findErr      error
	history      *pagination.PageResult[Event]
	historyErr   error

	lastUserID   string
	lastCategory string
}

func (f *fakeSystem) Handler() *Handler { return nil }

func (f *fakeSystem) Record(_ context.Context, userID, category string) (*RecordResult, error) {
	f.lastUserID = userID
	f.lastCategory = category
	return f.recordResult, f.recordErr
}

func (f *fakeSystem) Find(_ context.Context, userID string) (*Progress, error) {
	f.lastUserID = userID
	return f.progress, f.findErr
}

func (f *fakeSystem) History(
	_ context.Context,
	userID string,
	_ pagination.PageRequest,
) (*pagination.PageResult[Event], error) {
	f.lastUserID = userID
	return f.history, f.historyErr
}

func testHandler(sys System) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	mux := http.NewServeMux()
	for _, route := range h.Routes().Routes {
		mux.HandleFunc(route.Method+" /progress"+route.Pattern, route.Handler)
	}
	return mux
}

func TestRecordHandler(t *testing.T) {
	badge := BadgeEcoWarrior

	tests := []struct {
		name       string
		body       string
		sys        *fakeSystem
		wantStatus int
		wantBadge  bool
	}{
		{
			name:       "awards badge on first recyclable",
			body:       `{"userId":"user-1","category":"Recyclable"}`,
			sys:        &fakeSystem{recordResult: &RecordResult{Points: 20, NewBadge: &badge}},
			wantStatus: http.StatusOK,
			wantBadge:  true,
		},
		{
			name:       "no badge on subsequent events",
			body:       `{"userId":"user-1","category":"Organic"}`,
			sys:        &fakeSystem{recordResult: &RecordResult{Points: 25}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing user id",
			body:       `{"category":"Recyclable"}`,
			sys:        &fakeSystem{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing category",
			body:       `{"userId":"user-1"}`,
			sys:        &fakeSystem{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			sys:        &fakeSystem{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown user",
			body:       `{"userId":"ghost","category":"Recyclable"}`,
			sys:        &fakeSystem{recordErr: ErrUserNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "persistence failure",
			body:       `{"userId":"user-1","category":"Recyclable"}`,
			sys:        &fakeSystem{recordErr: ErrPersistence},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/progress/classifications", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			testHandler(tt.sys).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			var result RecordResult
			if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if tt.wantBadge && (result.NewBadge == nil || *result.NewBadge != BadgeEcoWarrior) {
				t.Errorf("NewBadge = %v, want %q", result.NewBadge, BadgeEcoWarrior)
			}
			if !tt.wantBadge && result.NewBadge != nil {
				t.Errorf("NewBadge = %q, want nil", *result.NewBadge)
			}
		})
	}
}

func TestFindHandler(t *testing.T) {
	sys := &fakeSystem{progress: &Progress{
		UserID: "user-1",
		Points: 45,
		Badges: []string{BadgeEcoWarrior},
	}}

	req := httptest.NewRequest("GET", "/progress/user-1", nil)
	rec := httptest.NewRecorder()
	testHandler(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if sys.lastUserID != "user-1" {
		t.Errorf("user id = %q, want %q", sys.lastUserID, "user-1")
	}

	var p Progress
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if p.Points != 45 {
		t.Errorf("points = %d, want 45", p.Points)
	}
	if len(p.Badges) != 1 || p.Badges[0] != BadgeEcoWarrior {
		t.Errorf("badges = %v, want [%q]", p.Badges, BadgeEcoWarrior)
	}
}

func TestFindHandlerNotFound(t *testing.T) {
	sys := &fakeSystem{findErr: ErrUserNotFound}

	req := httptest.NewRequest("GET", "/progress/ghost", nil)
	rec := httptest.NewRecorder()
	testHandler(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHistoryHandler(t *testing.T) {
	history := pagination.NewPageResult([]Event{
		{UserID: "user-1", Category: "Recyclable", Result: OutcomeRecyclable, Weight: 0.1},
	}, 1, 1, 20)
	sys := &fakeSystem{history: &history}

	req := httptest.NewRequest("GET", "/progress/user-1/history?page=1&page_size=20", nil)
	rec := httptest.NewRecorder()
	testHandler(sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var result pagination.PageResult[Event]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("total = %d, want 1", result.Total)
	}
	if len(result.Data) != 1 || result.Data[0].Result != OutcomeRecyclable {
		t.Errorf("data = %+v", result.Data)
	}
}

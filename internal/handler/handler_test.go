package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/ctxkeys"
	"github.com/templui/focusflow/internal/db/dbtest"
	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/respond"
	"github.com/templui/focusflow/internal/schema"
	"github.com/templui/focusflow/internal/service"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		value  string
		wantID int64
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/goals/x", nil)
			req.SetPathValue("id", tt.value)
			rec := httptest.NewRecorder()

			id, ok := pathID(rec, req)
			if id != tt.wantID || ok != tt.wantOK {
				t.Fatalf("pathID = %d, %v", id, ok)
			}
			if !ok && strings.TrimSpace(rec.Body.String()) != `{"message":"Invalid id","field":"id"}` {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestBindQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/resources?search=+focus+&type=tip", nil)

	filter, err := bind[schema.ResourceFilter](httptest.NewRecorder(), req, contract.API.Resources.List)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if filter.Search != "focus" || filter.Type != "tip" {
		t.Errorf("filter = %+v", filter)
	}
}

func TestBindBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{"title":"Read","category":"daily"}`))

	in, err := bind[schema.CreateGoal](httptest.NewRecorder(), req, contract.API.Goals.Create)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if in.Title != "Read" || in.Category != "daily" {
		t.Errorf("input = %+v", in)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{"category":"daily"}`))
	_, err = bind[schema.CreateGoal](httptest.NewRecorder(), req, contract.API.Goals.Create)

	var verr *schema.ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("err = %v", err)
	}
}

func TestBindBodyTooLarge(t *testing.T) {
	body := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `","category":"daily"}`
	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(body))
	rec := httptest.NewRecorder()

	_, err := bind[schema.CreateGoal](rec, req, contract.API.Goals.Create)

	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("err = %v, want *http.MaxBytesError", err)
	}
	if !respond.Invalid(rec, err) || rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestBindInputMismatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{}`))

	_, err := bind[schema.UpdateGoal](httptest.NewRecorder(), req, contract.API.Goals.Create)
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"up", nil, http.StatusOK},
		{"down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(stubPinger{tt.err}).Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d", rec.Code)
			}
			err := contract.API.System.Health.ValidateResponse(context.Background(), rec.Code, rec.Body.Bytes())
			if err != nil {
				t.Error(err)
			}
		})
	}
}

func TestGoalCreateLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	conn := dbtest.New(t)
	dbtest.CreateUser(t, conn, "alice")
	store := repository.NewStorage(conn)
	h := NewGoalHandler(service.NewGoalService(store.Goals, time.Now))

	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{"title":"Read","category":"daily"}`))
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "alice"}))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if n := strings.Count(buf.String(), `msg="goal created"`); n != 1 {
		t.Errorf("goal created logged %d times:\n%s", n, buf.String())
	}
}

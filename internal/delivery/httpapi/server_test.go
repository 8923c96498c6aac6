package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubFirms struct {
	n   int
	err error
}

func (s stubFirms) Count(ctx context.Context) (int, error) { return s.n, s.err }

type stubSessions int

func (s stubSessions) ActiveSessions() int { return int(s) }

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealth(t *testing.T) {
	r := NewRouter(stubFirms{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: kutilgan=200, natija=%d", w.Code)
	}
}

func TestStats(t *testing.T) {
	cases := []struct {
		name     string
		firms    stubFirms
		sessions SessionCounter
		code     int
		wantN    float64
		wantAct  float64
	}{
		{"oddiy", stubFirms{n: 3}, stubSessions(2), http.StatusOK, 3, 2},
		{"sessiyasiz", stubFirms{n: 1}, nil, http.StatusOK, 1, 0},
		{"baza xatosi", stubFirms{err: errors.New("down")}, nil, http.StatusInternalServerError, 0, 0},
	}
	for _, tc := range cases {
		r := NewRouter(tc.firms, tc.sessions)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
		if w.Code != tc.code {
			t.Errorf("%s: status kutilgan=%d, natija=%d", tc.name, tc.code, w.Code)
			continue
		}
		if tc.code != http.StatusOK {
			continue
		}
		var body map[string]float64
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: json xato: %v", tc.name, err)
		}
		if body["firms"] != tc.wantN || body["active_sessions"] != tc.wantAct {
			t.Errorf("%s: natija=%v", tc.name, body)
		}
	}
}

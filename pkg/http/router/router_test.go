package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/http/usecases"
	"github.com/lintang-b-s/pathcompare/pkg/metrics"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePathCompareService struct {
	comparison *usecases.PathComparison
	err        error
	panicMsg   string
	gotFixes   []*datastructure.GPSPoint
}

func (f *fakePathCompareService) PathCompare(ctx context.Context, userID string,
	fixes []*datastructure.GPSPoint) (*usecases.PathComparison, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.gotFixes = fixes
	return f.comparison, f.err
}

func newTestHandler(svc *fakePathCompareService) http.Handler {
	return NewAPI(zap.NewNop()).Handler(svc, prometheus.NewRegistry())
}

const validBody = `{"user_id":"17","fixes":[
	{"time":"2014-02-01T08:00:00Z","lat":45.46,"lon":9.19},
	{"time":"2014-02-01T08:20:00Z","lat":45.47,"lon":9.20}]}`

func TestPathCompareEndpoint(t *testing.T) {
	t0 := time.Date(2014, 2, 1, 8, 0, 0, 0, time.UTC)
	scored := &usecases.PathComparison{
		Record: metrics.Score("17", []datastructure.Index{0, 1}, []datastructure.Index{0, 1}, 1000, 1000),
		Stops: []*datastructure.StayPoint{
			datastructure.NewStayPoint("17", 45.46, 9.19, t0, t0.Add(15*time.Minute)),
			datastructure.NewStayPoint("17", 45.47, 9.20, t0.Add(20*time.Minute), t0.Add(40*time.Minute)),
		},
		Legs:             1,
		ModeledPolyline:  "_p~iF~ps|U_ulLnnqC",
		ObservedPolyline: "_p~iF~ps|U_ulLnnqC",
	}
	undefined := &usecases.PathComparison{
		Record:  metrics.Score("17", nil, nil, 0, 0),
		Warning: "1 stay points detected",
	}

	testCases := []struct {
		name        string
		contentType string
		body        string
		svc         *fakePathCompareService
		wantStatus  int
		wantInBody  []string
	}{
		{
			name:        "scored user",
			contentType: "application/json",
			body:        validBody,
			svc:         &fakePathCompareService{comparison: scored},
			wantStatus:  http.StatusOK,
			wantInBody:  []string{`"jaccard":1`, `"legs":1`, `"modeled_route":"_p~iF~ps|U_ulLnnqC"`, `"arrival":"2014-02-01T08:20:00Z"`},
		},
		{
			name:        "undefined jaccard is null",
			contentType: "application/json; charset=utf-8",
			body:        validBody,
			svc:         &fakePathCompareService{comparison: undefined},
			wantStatus:  http.StatusOK,
			wantInBody:  []string{`"jaccard":null`, `"warning":"1 stay points detected"`},
		},
		{
			name:        "latitude out of range",
			contentType: "application/json",
			body:        `{"user_id":"17","fixes":[{"time":"2014-02-01T08:00:00Z","lat":95,"lon":9.19}]}`,
			svc:         &fakePathCompareService{},
			wantStatus:  http.StatusBadRequest,
			wantInBody:  []string{"validation error", "Lat"},
		},
		{
			name:        "no fixes",
			contentType: "application/json",
			body:        `{"user_id":"17","fixes":[]}`,
			svc:         &fakePathCompareService{},
			wantStatus:  http.StatusBadRequest,
			wantInBody:  []string{"validation error", "Fixes"},
		},
		{
			name:        "unknown field",
			contentType: "application/json",
			body:        `{"user":"17"}`,
			svc:         &fakePathCompareService{},
			wantStatus:  http.StatusBadRequest,
			wantInBody:  []string{"unknown field"},
		},
		{
			name:        "not json",
			contentType: "text/plain",
			body:        validBody,
			svc:         &fakePathCompareService{},
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "unconnected stays",
			contentType: "application/json",
			body:        validBody,
			svc:         &fakePathCompareService{err: util.WrapErrorf(errors.New("no path"), util.ErrNotFound, "not connected")},
			wantStatus:  http.StatusNotFound,
			wantInBody:  []string{"not connected"},
		},
		{
			name:        "service failure",
			contentType: "application/json",
			body:        validBody,
			svc:         &fakePathCompareService{err: errors.New("boom")},
			wantStatus:  http.StatusInternalServerError,
			wantInBody:  []string{util.MessageInternalServerError},
		},
		{
			name:        "service panic",
			contentType: "application/json",
			body:        validBody,
			svc:         &fakePathCompareService{panicMsg: "index out of range"},
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/pathCompare", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			newTestHandler(tt.svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			body := rec.Body.String()
			assert.True(t, json.Valid([]byte(body)), body)
			for _, s := range tt.wantInBody {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestPathCompareEndpointPassesFixes(t *testing.T) {
	svc := &fakePathCompareService{comparison: &usecases.PathComparison{Record: metrics.Score("17", nil, nil, 0, 0)}}
	req := httptest.NewRequest(http.MethodPost, "/api/pathCompare", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newTestHandler(svc).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, svc.gotFixes, 2)
	assert.Equal(t, "17", svc.gotFixes[1].UserId())
	assert.Equal(t, 45.47, svc.gotFixes[1].Lat())
	assert.Equal(t, time.Date(2014, 2, 1, 8, 20, 0, 0, time.UTC), svc.gotFixes[1].Time().UTC())
}

func TestOperationalEndpoints(t *testing.T) {
	handler := newTestHandler(&fakePathCompareService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-1", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pathcompare_http_requests_total")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwaggerDoc(t *testing.T) {
	handler := newTestHandler(&fakePathCompareService{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doc/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
		Info     struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "/api", doc.BasePath)
	assert.Equal(t, "pathcompare API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/pathCompare")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doc/index.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/pkg/config"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

func sampleRequest() *dto.EngineRequest {
	return &dto.EngineRequest{
		Metadata: dto.EngineMetadata{DaysPerWeek: 5, SlotsPerDay: 6},
		Requirements: []dto.EngineRequirement{
			{GroupID: "g1", TeacherID: "t1", CourseID: "c1", DurationSlots: 1, SessionsPerWeek: 4},
		},
	}
}

func newClient(url string) *Client {
	return New(config.EngineConfig{URL: url, Timeout: 2 * time.Second}, nil)
}

func TestSolveSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received dto.EngineRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, 5, received.Metadata.DaysPerWeek)

		day, slot := 0, 1
		_ = json.NewEncoder(w).Encode(dto.EngineResponse{
			Status: dto.EngineStatusSuccess,
			Schedule: []dto.EngineScheduleEntry{
				{Day: &day, Slot: &slot, RoomID: "r1", TeacherID: "t1", CourseID: "c1", GroupID: "g1"},
			},
		})
	}))
	defer server.Close()

	resp, err := newClient(server.URL).Solve(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, dto.EngineStatusSuccess, resp.Status)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, "r1", resp.Schedule[0].RoomID)
}

func TestSolveInfeasibleMapsBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No solution found (Constraints too tight)"})
	}))
	defer server.Close()

	_, err := newClient(server.URL).Solve(context.Background(), sampleRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNoFeasibleSchedule.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "No solution found")
}

func TestSolveServerErrorIsIntegrationFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newClient(server.URL).Solve(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEngineUnavailable.Code, appErrors.FromError(err).Code)
}

func TestSolveGarbageBodyIsMalformedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := newClient(server.URL).Solve(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResult.Code, appErrors.FromError(err).Code)
}

func TestSolveUnreachableEngine(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1/generate").Solve(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEngineUnavailable.Code, appErrors.FromError(err).Code)
}

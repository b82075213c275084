package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/journal"
	"github.com/justt1n/driffle-tool/internal/server"
	"github.com/justt1n/driffle-tool/pkg/rest"
	"github.com/justt1n/driffle-tool/pkg/tests"
)

type fakeTrigger struct {
	fired bool
}

func (f *fakeTrigger) TriggerRound() bool {
	f.fired = true
	return true
}

func newTestClient(t *testing.T, jrnl *journal.Journal, trigger *fakeTrigger) tests.APIClient {
	t.Helper()

	srv := server.NewServer("driffle-tool", "test", jrnl)
	if trigger != nil {
		srv = srv.WithRoundTrigger(trigger)
	}

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(ts.URL, ts.Client())
}

func TestGetV1Status(t *testing.T) {
	rq := require.New(t)

	jrnl := journal.New(10)
	jrnl.RoundFinished(journal.RoundSummary{
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		Rows:       3,
		Updates:    1,
		Holds:      2,
	})

	client := newTestClient(t, jrnl, nil)

	var status rest.Status

	resp, err := client.Get(context.Background(), "/v1/status", nil, &status, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("driffle-tool", status.Name)
	rq.NotNil(status.LastRound)
	rq.Equal(3, status.LastRound.Rows)
	rq.Equal(1, status.LastRound.Updates)
}

func TestGetV1Decisions(t *testing.T) {
	rq := require.New(t)

	jrnl := journal.New(10)
	jrnl.Record(entity.Decision{
		Status:      entity.DecisionUpdate,
		Rule:        entity.PricingRule{RowIndex: 2, ProductName: "Elden Ring", CurrentPrice: 10},
		Target:      &entity.CompareTarget{Name: "Alpha", Price: 8},
		LogMessage:  "Update 10.000 -> 8.000 following Alpha.",
		OfferID:     "700583",
		EvaluatedAt: time.Now(),
	})
	jrnl.Record(entity.Decision{
		Status:      entity.DecisionHold,
		Rule:        entity.PricingRule{RowIndex: 3, ProductName: "Hades II"},
		LogMessage:  "Hold",
		EvaluatedAt: time.Now(),
	})

	client := newTestClient(t, jrnl, nil)

	var records []rest.DecisionRecord

	resp, err := client.Get(context.Background(), "/v1/decisions?limit=1", nil, &records, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(records, 1)
	rq.Equal("Hades II", records[0].ProductName, "newest first")
	rq.Equal("hold", records[0].Status)
}

func TestGetV1DecisionsBadLimit(t *testing.T) {
	rq := require.New(t)

	client := newTestClient(t, journal.New(10), nil)

	var restError rest.Error

	resp, err := client.Get(context.Background(), "/v1/decisions?limit=banana", nil, nil, &restError)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestPostV1Rounds(t *testing.T) {
	rq := require.New(t)

	trigger := &fakeTrigger{}
	client := newTestClient(t, journal.New(10), trigger)

	resp, err := client.Post(context.Background(), "/v1/rounds", nil, nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(trigger.fired)

	resp, err = client.Post(context.Background(), "/v1/rounds", nil,
		rest.RoundRequest{Reason: "price war on row 7"}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
}

func TestPostV1RoundsUnavailable(t *testing.T) {
	rq := require.New(t)

	client := newTestClient(t, journal.New(10), nil)

	var restError rest.Error

	resp, err := client.Post(context.Background(), "/v1/rounds", nil, nil, nil, &restError)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

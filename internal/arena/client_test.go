package arena

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mwiater/arenaboard/internal/appconfig"
	"github.com/mwiater/arenaboard/internal/arenaserver"
	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answersCSV = "id,answer\np1,42\np2,7\n"

const runsCSV = `problem_idx,problem,model_name,idx_answer,answer,input_tokens,output_tokens,cost,input_cost_per_tokens,output_cost_per_tokens,parsed_answer,correct
p1,Six times seven?,gpt 5,0,42,10,20,0.1,1,2,42,true
p2,Seven?,gpt 5,0,7,10,20,0.1,1,2,7,true
p1,Six times seven?,org/model,0,41,10,20,0.1,1,2,41,false
`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	answers, err := arenaserver.ReadAnswers(strings.NewReader(answersCSV))
	require.NoError(t, err)
	runs, err := arenaserver.ReadRuns(strings.NewReader(runsCSV))
	require.NoError(t, err)

	comps := []arenaserver.Source{
		{Competition: arenaserver.Competition{Key: "alpha", NiceName: "Alpha", Index: 1, MedalThresholds: []float64{75, 50, 25}, Contaminated: []string{"org/model"}}, Answers: answers, Runs: runs},
		{Competition: arenaserver.Competition{Key: "beta", NiceName: "Beta", Index: 2, MedalThresholds: []float64{75, 50, 25}}, Answers: answers, Runs: runs},
	}
	srv := httptest.NewServer(arenaserver.NewHandler(arenaserver.Build("overall", []float64{75, 50, 25}, comps)))
	t.Cleanup(srv.Close)
	return srv
}

func clientFor(url string) *Client {
	cfg := appconfig.Config{APIBaseURL: url + "/"}
	cfg.ApplyDefaults()
	return NewClient(cfg, nil)
}

func TestLoadAgainstFixtureServer(t *testing.T) {
	srv := fixtureServer(t)
	d, err := clientFor(srv.URL).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"overall", "alpha", "beta"}, d.Competitions())
	assert.Equal(t, "overall", d.AggregateID())
	assert.True(t, d.Dates.Flagged("alpha", "org/model"))
	require.Contains(t, d.Secondary, "alpha")

	table, err := leaderboard.BuildCompetitionTable(d, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "gpt 5", table.Rows[0].Model)
	assert.Equal(t, leaderboard.ContaminationWarning, table.Warning)

	secondary, err := leaderboard.BuildSecondaryTable(d, "beta")
	require.NoError(t, err)
	assert.Len(t, secondary.Rows, 2)
}

func TestTraceEscapesModelNames(t *testing.T) {
	srv := fixtureServer(t)
	c := clientFor(srv.URL)

	assert.Equal(t, "/traces/alpha/org%2Fmodel/1", c.TracePath("alpha", "org/model", 1))
	assert.Equal(t, "/traces/alpha/gpt%205/2", c.TracePath("alpha", "gpt 5", 2))

	rec, err := c.Trace(context.Background(), "alpha", "org/model", 1)
	require.NoError(t, err)
	assert.Equal(t, "Six times seven?", rec.Statement)
	require.Len(t, rec.Outputs, 1)
	assert.False(t, rec.Outputs[0].Correct)

	_, err = c.Trace(context.Background(), "alpha", "org/model", 2)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "traces", statusErr.Endpoint)
	assert.Contains(t, statusErr.Body, "trace not found")
}

func TestLoadIsSequentialAndAtomic(t *testing.T) {
	var mu sync.Mutex
	var order []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		order = append(order, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/results":
			_, _ = w.Write([]byte(`{"results": {"a": [{"question": "Avg", "m": 1}]}, "competition_info": {"a": {"num_problems": 1}}}`))
		case "/secondary":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	d, err := clientFor(srv.URL).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, d.Results, "a failed load returns no partial dataset")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "secondary", statusErr.Endpoint)
	assert.Equal(t, "boom", statusErr.Body)
	assert.Equal(t, []string{"/results", "/secondary"}, order, "dates must not be requested after a failure")
}

func TestSchemaRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"/results":           `{"results": {"a": [{"m": 1}]}, "competition_info": {}}`,
		"/secondary":         `{"a": {"question": "Acc"}}`,
		"/competition_dates": `{"a": {"m": "yes"}}`,
	}
	for path, body := range cases {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == path {
					_, _ = w.Write([]byte(body))
					return
				}
				switch r.URL.Path {
				case "/results":
					_, _ = w.Write([]byte(`{"results": {}, "competition_info": {}}`))
				default:
					_, _ = w.Write([]byte(`{}`))
				}
			}))
			defer srv.Close()

			_, err := clientFor(srv.URL).Load(context.Background())
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestTraceSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"model_outputs": []}`))
	}))
	t.Cleanup(srv.Close)

	_, err := clientFor(srv.URL).Trace(context.Background(), "a", "m", 1)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestSchemaAcceptsLooseValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/results":
			_, _ = w.Write([]byte(`{"results": {"a": [{"question": "1", "m": true}, {"question": "Avg", "m": 50}]}, "competition_info": {"a": {"num_problems": 1}}}`))
		case "/secondary":
			_, _ = w.Write([]byte(`{"a": [{"question": "Acc", "m": false}]}`))
		case "/competition_dates":
			_, _ = w.Write([]byte(`{"a": {"m": false}}`))
		default:
			_, _ = w.Write([]byte(`{"statement": null, "model_outputs": [{"correct": true, "solution": "42"}]}`))
		}
	}))
	t.Cleanup(srv.Close)

	d, err := clientFor(srv.URL).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Results["a"], 2)
	assert.False(t, d.Results["a"][0].Values["m"].Valid, "booleans decode as absent")
	assert.False(t, d.Secondary["a"][0].Values["m"].Valid)

	rec, err := clientFor(srv.URL).Trace(context.Background(), "a", "m", 1)
	require.NoError(t, err)
	assert.Empty(t, rec.Statement)
	require.Len(t, rec.Outputs, 1)
	assert.Equal(t, "42", rec.Outputs[0].Solution)
}

func TestEndpointOverrides(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/api/results" {
			_, _ = w.Write([]byte(`{"results": {}, "competition_info": {}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg := appconfig.Config{
		APIBaseURL: srv.URL,
		Endpoints: appconfig.Endpoints{
			Results:          "api/results",
			Secondary:        "/api/secondary",
			CompetitionDates: "/api/dates",
		},
	}
	cfg.ApplyDefaults()
	_, err := NewClient(cfg, srv.Client()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/results", "/api/secondary", "/api/dates"}, seen)
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Endpoint: "results", StatusCode: 502}
	assert.Equal(t, "results: unexpected status 502", err.Error())
	err.Body = "bad gateway"
	assert.Equal(t, "results: unexpected status 502: bad gateway", err.Error())
}

func TestRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := clientFor(url).Results(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

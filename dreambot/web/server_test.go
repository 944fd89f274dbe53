package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/schedule"
)

const testSchedule = `Match No,Date,Day,Start,Home,Away,Venue
1,2025-03-22,Sat,7:30 PM,Kolkata Knight Riders,Royal Challengers Bengaluru,Eden Gardens
2,2025-03-23,Sun,3:30 PM,Sunrisers Hyderabad,Rajasthan Royals,Hyderabad
3,2025-03-23,Sun,7:30 PM,Chennai Super Kings,Mumbai Indians,Chepauk
`

var testNow = time.Date(2025, 3, 23, 10, 0, 0, 0, time.UTC)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeStandings struct {
	standings []ledger.Standing
	results   []*models.MatchResult
	err       error
}

func (f fakeStandings) Leaderboard(context.Context) ([]ledger.Standing, error) {
	return f.standings, f.err
}

func (f fakeStandings) MatchLog(context.Context) ([]*models.MatchResult, error) {
	return f.results, f.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func newTestServer(t *testing.T, pinger Pinger, st Standings) *Server {
	t.Helper()
	sched, err := schedule.Parse(strings.NewReader(testSchedule), time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return New(Deps{
		DB:       pinger,
		Ledger:   st,
		Schedule: sched,
		Version:  "test",
		Now:      func() time.Time { return testNow },
	})
}

func get(t *testing.T, s *Server, target string) (int, envelope) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("GET %s error = %v", target, err)
	}
	defer resp.Body.Close()

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", target, err)
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		wantStatus  int
		wantSuccess bool
	}{
		{name: "database up", wantStatus: http.StatusOK, wantSuccess: true},
		{name: "database down", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, fakePinger{err: tt.pingErr}, fakeStandings{})
			status, body := get(t, s, "/healthz")
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", body.Success, tt.wantSuccess)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	st := fakeStandings{standings: []ledger.Standing{
		{Rank: 1, Username: "rahul", Points: 5},
		{Rank: 1, Username: "priya", Points: 5},
		{Rank: 3, Username: "amit", Points: 2},
	}}
	s := newTestServer(t, fakePinger{}, st)

	status, body := get(t, s, "/api/leaderboard")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var got []ledger.Standing
	if err := json.Unmarshal(body.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(got) != 3 || got[1].Username != "priya" || got[2].Rank != 3 {
		t.Errorf("standings = %+v", got)
	}
}

func TestLeaderboardError(t *testing.T) {
	s := newTestServer(t, fakePinger{}, fakeStandings{err: errors.New("boom")})

	status, body := get(t, s, "/api/leaderboard")
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body.Success || body.Error == nil {
		t.Fatalf("body = %+v, want error envelope", body)
	}
	if body.Error.Message != "Internal Server Error" {
		t.Errorf("message = %q, internal errors must not leak", body.Error.Message)
	}
}

func TestMatches(t *testing.T) {
	st := fakeStandings{results: []*models.MatchResult{
		{MatchNumber: 1, Winner: "rahul"},
		{MatchNumber: 2, Winner: "priya"},
		{MatchNumber: 2, Winner: "amit"},
	}}

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantNumbers []int
	}{
		{name: "today by default", target: "/api/matches", wantStatus: http.StatusOK, wantNumbers: []int{2, 3}},
		{name: "explicit date", target: "/api/matches?date=2025-03-22", wantStatus: http.StatusOK, wantNumbers: []int{1}},
		{name: "no fixtures", target: "/api/matches?date=2025-05-01", wantStatus: http.StatusOK, wantNumbers: []int{}},
		{name: "whole season", target: "/api/matches?all=true", wantStatus: http.StatusOK, wantNumbers: []int{1, 2, 3}},
		{name: "bad date", target: "/api/matches?date=yesterday", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, fakePinger{}, st)
			status, body := get(t, s, tt.target)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantNumbers == nil {
				return
			}

			var got []MatchView
			if err := json.Unmarshal(body.Data, &got); err != nil {
				t.Fatalf("unmarshal data: %v", err)
			}
			if len(got) != len(tt.wantNumbers) {
				t.Fatalf("got %d matches, want %d", len(got), len(tt.wantNumbers))
			}
			for i, n := range tt.wantNumbers {
				if got[i].Number != n {
					t.Errorf("match[%d] = %d, want %d", i, got[i].Number, n)
				}
			}
		})
	}
}

func TestMatchesCarryWinners(t *testing.T) {
	st := fakeStandings{results: []*models.MatchResult{
		{MatchNumber: 2, Winner: "priya"},
		{MatchNumber: 2, Winner: "amit"},
	}}
	s := newTestServer(t, fakePinger{}, st)

	_, body := get(t, s, "/api/matches")
	var got []MatchView
	if err := json.Unmarshal(body.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(got[0].Winners) != 2 || got[0].Winners[0] != "priya" {
		t.Errorf("match 2 winners = %v", got[0].Winners)
	}
	if len(got[1].Winners) != 0 {
		t.Errorf("match 3 winners = %v, want none", got[1].Winners)
	}
}

func TestResults(t *testing.T) {
	st := fakeStandings{results: []*models.MatchResult{{MatchNumber: 4, Winner: "rahul"}}}
	s := newTestServer(t, fakePinger{}, st)

	_, body := get(t, s, "/api/results")
	var got []*models.MatchResult
	if err := json.Unmarshal(body.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(got) != 1 || got[0].Winner != "rahul" {
		t.Errorf("results = %+v", got)
	}
}

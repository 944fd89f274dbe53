// Package schedule holds the season fixture list loaded from CSV.
package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"

	colNumber = "Match No"
	colDate   = "Date"
	colDay    = "Day"
	colStart  = "Start"
	colHome   = "Home"
	colAway   = "Away"
	colVenue  = "Venue"
)

var startLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

type Match struct {
	Number   int
	Day      string
	Start    string
	Home     string
	Away     string
	Venue    string
	StartsAt time.Time
}

func (m Match) HomeShort() string { return Acronym(m.Home) }
func (m Match) AwayShort() string { return Acronym(m.Away) }

// AlertAt is when members who opted in get notified about m.
func (m Match) AlertAt(lead time.Duration) time.Time {
	return m.StartsAt.Add(-lead)
}

type Schedule struct {
	loc     *time.Location
	matches map[int]Match
}

// Empty returns a schedule with no fixtures.
func Empty(loc *time.Location) *Schedule {
	if loc == nil {
		loc = time.UTC
	}
	return &Schedule{loc: loc, matches: map[int]Match{}}
}

// Load reads the fixture CSV at path. Times in the file are local to loc. A
// missing file is not an error: the bot runs without a schedule.
func Load(path string, loc *time.Location) (*Schedule, error) {
	if path == "" {
		return Empty(loc), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Schedule file not found, running without fixtures",
				slog.String("type", "sys"),
				slog.String("path", path))
			return Empty(loc), nil
		}
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()

	s, err := Parse(f, loc)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	slog.Info("Schedule loaded",
		slog.String("type", "sys"),
		slog.String("path", path),
		slog.Int("matches", s.Len()))
	return s, nil
}

func Parse(r io.Reader, loc *time.Location) (*Schedule, error) {
	s := Empty(loc)

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{colNumber, colDate, colStart, colHome, colAway} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		n, err := strconv.Atoi(field(rec, colNumber))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("line %d: bad match number %q", line, field(rec, colNumber))
		}
		startsAt, err := combine(field(rec, colDate), field(rec, colStart), s.loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := s.matches[n]; dup {
			return nil, fmt.Errorf("line %d: match %d listed twice", line, n)
		}

		s.matches[n] = Match{
			Number:   n,
			Day:      field(rec, colDay),
			Start:    field(rec, colStart),
			Home:     field(rec, colHome),
			Away:     field(rec, colAway),
			Venue:    field(rec, colVenue),
			StartsAt: startsAt,
		}
	}
	return s, nil
}

func combine(date, start string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", date)
	}
	for _, layout := range startLayouts {
		clock, err := time.Parse(layout, strings.ToUpper(start))
		if err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad start time %q", start)
}

func (s *Schedule) Len() int {
	return len(s.matches)
}

func (s *Schedule) Location() *time.Location {
	return s.loc
}

func (s *Schedule) Match(n int) (Match, bool) {
	m, ok := s.matches[n]
	return m, ok
}

// On returns the matches on the calendar day of t in the schedule's time zone,
// ordered by match number.
func (s *Schedule) On(t time.Time) []Match {
	y, mo, d := t.In(s.loc).Date()
	var out []Match
	for _, m := range s.matches {
		my, mm, md := m.StartsAt.Date()
		if my == y && mm == mo && md == d {
			out = append(out, m)
		}
	}
	sortByNumber(out)
	return out
}

// IsOn reports whether match n is scheduled on the day of t.
func (s *Schedule) IsOn(n int, t time.Time) bool {
	m, ok := s.matches[n]
	if !ok {
		return false
	}
	y, mo, d := t.In(s.loc).Date()
	my, mm, md := m.StartsAt.Date()
	return my == y && mm == mo && md == d
}

// AlertsBetween returns the matches whose alert time falls in (from, to].
func (s *Schedule) AlertsBetween(from, to time.Time, lead time.Duration) []Match {
	var out []Match
	for _, m := range s.matches {
		at := m.AlertAt(lead)
		if at.After(from) && !at.After(to) {
			out = append(out, m)
		}
	}
	sortByNumber(out)
	return out
}

// All returns every match ordered by number.
func (s *Schedule) All() []Match {
	out := make([]Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	sortByNumber(out)
	return out
}

func sortByNumber(ms []Match) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Number < ms[j].Number })
}

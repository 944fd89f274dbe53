package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/schedule"
)

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), config.DefaultQueryTimeout)
	defer cancel()

	status := fiber.Map{
		"status":  "ok",
		"version": s.deps.Version,
		"commit":  s.deps.Commit,
	}
	if err := s.deps.DB.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(APIResponse{
			Data:      status,
			Error:     &APIError{Code: fiber.StatusServiceUnavailable, Message: "database unreachable"},
			Timestamp: s.deps.Now().UTC(),
		})
	}
	status["database"] = "ok"
	return s.ok(c, status)
}

func (s *Server) leaderboard(c *fiber.Ctx) error {
	standings, err := s.deps.Ledger.Leaderboard(c.UserContext())
	if err != nil {
		return err
	}
	return s.ok(c, standings)
}

func (s *Server) results(c *fiber.Ctx) error {
	results, err := s.deps.Ledger.MatchLog(c.UserContext())
	if err != nil {
		return err
	}
	return s.ok(c, results)
}

// matches lists the fixtures of ?date=YYYY-MM-DD, today by default, or the
// whole season with ?all=true.
func (s *Server) matches(c *fiber.Ctx) error {
	sched := s.deps.Schedule
	results, err := s.deps.Ledger.MatchLog(c.UserContext())
	if err != nil {
		return err
	}
	if c.QueryBool("all") {
		return s.ok(c, matchViews(sched.All(), results))
	}

	day := s.deps.Now()
	if raw := c.Query("date"); raw != "" {
		d, err := time.ParseInLocation(dateLayout, raw, sched.Location())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must look like 2025-03-22")
		}
		day = d.Add(12 * time.Hour)
	}
	return s.ok(c, matchViews(sched.On(day), results))
}

func matchViews(matches []schedule.Match, results []*models.MatchResult) []MatchView {
	winners := make(map[int][]string)
	for _, r := range results {
		winners[r.MatchNumber] = append(winners[r.MatchNumber], r.Winner)
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, MatchView{
			Number:   m.Number,
			Home:     m.Home,
			Away:     m.Away,
			Venue:    m.Venue,
			StartsAt: m.StartsAt,
			Winners:  winners[m.Number],
		})
	}
	return views
}

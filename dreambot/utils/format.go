package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/prd11/dream11-bot/dreambot/config"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/schedule"
)

const maxDescriptionLength = 4000

// DisplayName renders a stored username. Mentions are left for Discord to
// resolve, plain names get an @.
func DisplayName(username string) string {
	if ledger.IsMention(username) {
		return username
	}
	return "@" + username
}

func FormatPoints(n int64) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d point", n)
	}
	return fmt.Sprintf("%d points", n)
}

func rankBadge(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("`%2d.`", rank)
	}
}

// StandingLines renders one line per standing.
func StandingLines(standings []ledger.Standing) []string {
	lines := make([]string, len(standings))
	for i, st := range standings {
		lines[i] = fmt.Sprintf("%s %s: **%s**", rankBadge(st.Rank), DisplayName(st.Username), FormatPoints(st.Points))
	}
	return lines
}

// LeaderboardPage fills embed with page (zero based) of standings.
func LeaderboardPage(embed *discord.EmbedBuilder, standings []ledger.Standing, page, pageSize int) {
	start := page * pageSize
	end := min(start+pageSize, len(standings))
	if start > end {
		start = end
	}
	pages := max(1, (len(standings)+pageSize-1)/pageSize)

	embed.
		SetTitle("🏆 Dream11 Leaderboard 🏆").
		SetDescription(strings.Join(StandingLines(standings[start:end]), "\n")).
		SetColor(config.EmbedDefaultColor).
		SetFooter(fmt.Sprintf("Page %d/%d • %d players", page+1, pages, len(standings)), "")
}

func LeaderboardEmbed(standings []ledger.Standing) discord.Embed {
	if len(standings) == 0 {
		return discord.Embed{
			Title:       "🏆 Dream11 Leaderboard 🏆",
			Description: "No points recorded yet!",
			Color:       config.EmbedDefaultColor,
		}
	}
	return discord.Embed{
		Title:       "🏆 Dream11 Leaderboard 🏆",
		Description: joinLimited(StandingLines(standings), maxDescriptionLength),
		Color:       config.EmbedDefaultColor,
	}
}

// MatchLogEmbed lists winners grouped by match.
func MatchLogEmbed(results []*models.MatchResult) discord.Embed {
	embed := discord.Embed{
		Title: "📜 Match Results Log",
		Color: config.InfoColor,
	}
	if len(results) == 0 {
		embed.Description = "No match results recorded yet."
		return embed
	}

	winners := make(map[int][]string)
	for _, r := range results {
		winners[r.MatchNumber] = append(winners[r.MatchNumber], DisplayName(r.Winner))
	}
	matches := make([]int, 0, len(winners))
	for n := range winners {
		matches = append(matches, n)
	}
	sort.Ints(matches)

	lines := make([]string, len(matches))
	for i, n := range matches {
		lines[i] = fmt.Sprintf("**Match %d**: %s", n, strings.Join(winners[n], ", "))
	}
	embed.Description = joinLimited(lines, maxDescriptionLength)
	embed.Footer = &discord.EmbedFooter{Text: fmt.Sprintf("%d results across %d matches", len(results), len(matches))}
	return embed
}

func TodayEmbed(matches []schedule.Match) discord.Embed {
	embed := discord.Embed{
		Title: "🏏 Today's Matches 🏏",
		Color: config.InfoColor,
	}
	if len(matches) == 0 {
		embed.Description = "No matches scheduled for today."
		return embed
	}

	var b strings.Builder
	b.WriteString("```\n")
	fmt.Fprintf(&b, "%-8s %-14s %s\n", "Match #", "Teams", "Start")
	b.WriteString(strings.Repeat("-", 34) + "\n")
	for _, m := range matches {
		teams := m.HomeShort() + " vs " + m.AwayShort()
		fmt.Fprintf(&b, "%-8d %-14s %s\n", m.Number, teams, m.Start)
	}
	b.WriteString("```")
	embed.Description = b.String()
	return embed
}

func StatsEmbed(stats *ledger.Stats) discord.Embed {
	var recent strings.Builder
	if len(stats.Recent) == 0 {
		recent.WriteString("No activity yet.")
	}
	for _, h := range stats.Recent {
		what := "Adjustment"
		if h.Kind == models.HistoryKindWin {
			what = fmt.Sprintf("Won match %d", h.MatchNumber)
		}
		fmt.Fprintf(&recent, "%s: %+d (by %s, %s)\n", what, h.Points, h.UpdatedBy, h.CreatedAt.Format("02 Jan 15:04"))
	}

	return discord.Embed{
		Title: "📊 Stats for " + stats.Username,
		Color: config.InfoColor,
		Fields: []discord.EmbedField{
			{Name: "Points", Value: FormatPoints(stats.Points), Inline: Ptr(true)},
			{Name: "Rank", Value: fmt.Sprintf("#%d", stats.Rank), Inline: Ptr(true)},
			{Name: "Match Wins", Value: fmt.Sprintf("%d", stats.Wins), Inline: Ptr(true)},
			{Name: "Recent Activity", Value: recent.String()},
		},
	}
}

func AboutEmbed(prefix string) discord.Embed {
	regular := []string{
		prefix + "win <username> <match_number>: record a win for today's match",
		prefix + "leaderboard or " + prefix + "d11: show the leaderboard",
		prefix + "mystats [username]: show points, rank and recent activity",
		prefix + "tdy: show today's matches",
		prefix + "alerts [on|off]: match start DMs",
		prefix + "about: show this help",
	}
	admin := []string{
		prefix + "win <username> <match_number>: record a win for any match",
		prefix + "points <username> <points>: add or remove points",
		prefix + "undo: undo the last change",
		prefix + "clear or " + prefix + "clearpoints: archive and reset all points",
		prefix + "adminlog: show the match results log",
	}

	return discord.Embed{
		Title:       "📋 Dream11 Bot Commands",
		Description: "Here is the list of Dream11 commands you can use:",
		Color:       config.InfoColor,
		Fields: []discord.EmbedField{
			{Name: "Regular Commands", Value: "`" + strings.Join(regular, "`\n`") + "`"},
			{Name: "Admin Commands", Value: "`" + strings.Join(admin, "`\n`") + "`"},
			{Name: "Slash Commands", Value: "`/leaderboard`, `/alerts`, `/version`"},
		},
	}
}

// joinLimited joins lines up to limit bytes and notes how many were dropped.
func joinLimited(lines []string, limit int) string {
	var b strings.Builder
	for i, l := range lines {
		if b.Len()+len(l)+1 > limit {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "…and %d more", len(lines)-i)
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}
	return b.String()
}

package utils

import (
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/ledger"
)

func TestDisplayName(t *testing.T) {
	if got := DisplayName("<@123>"); got != "<@123>" {
		t.Errorf("DisplayName(mention) = %q", got)
	}
	if got := DisplayName("rahul"); got != "@rahul" {
		t.Errorf("DisplayName(rahul) = %q", got)
	}
}

func TestFormatPoints(t *testing.T) {
	tests := map[int64]string{1: "1 point", -1: "-1 point", 0: "0 points", 12: "12 points"}
	for n, want := range tests {
		if got := FormatPoints(n); got != want {
			t.Errorf("FormatPoints(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLeaderboardPage(t *testing.T) {
	standings := []ledger.Standing{
		{Rank: 1, Username: "cal", Points: 9},
		{Rank: 2, Username: "amy", Points: 4},
		{Rank: 2, Username: "bob", Points: 4},
	}

	embed := discord.NewEmbedBuilder()
	LeaderboardPage(embed, standings, 1, 2)
	got := embed.Build()

	if !strings.Contains(got.Description, "@bob") || strings.Contains(got.Description, "@cal") {
		t.Errorf("second page description = %q", got.Description)
	}
	if got.Footer == nil || !strings.HasPrefix(got.Footer.Text, "Page 2/2") {
		t.Errorf("footer = %+v", got.Footer)
	}
}

func TestMatchLogEmbedGroupsWinners(t *testing.T) {
	embed := MatchLogEmbed([]*models.MatchResult{
		{MatchNumber: 2, Winner: "amy"},
		{MatchNumber: 1, Winner: "cal"},
		{MatchNumber: 2, Winner: "<@5>"},
	})

	lines := strings.Split(embed.Description, "\n")
	if len(lines) != 2 {
		t.Fatalf("description = %q", embed.Description)
	}
	if lines[0] != "**Match 1**: @cal" || lines[1] != "**Match 2**: @amy, <@5>" {
		t.Errorf("lines = %q", lines)
	}
}

func TestJoinLimited(t *testing.T) {
	lines := []string{"aaaa", "bbbb", "cccc"}
	if got := joinLimited(lines, 100); got != "aaaa\nbbbb\ncccc" {
		t.Errorf("joinLimited() = %q", got)
	}
	if got := joinLimited(lines, 10); got != "aaaa\nbbbb\n…and 1 more" {
		t.Errorf("joinLimited(10) = %q", got)
	}
}

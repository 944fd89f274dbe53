package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/prd11/dream11-bot/dreambot/ledger"
)

type fakePutter struct {
	key  string
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = *in.Key
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

var takenAt = time.Date(2025, 5, 25, 18, 4, 5, 0, time.UTC)

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: "season-20250525T180405Z.json"},
		{prefix: "dream11", want: "dream11/season-20250525T180405Z.json"},
		{prefix: "/backups/dream11/", want: "backups/dream11/season-20250525T180405Z.json"},
	}
	for _, tt := range tests {
		if got := Key(tt.prefix, takenAt); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}

	ist := time.FixedZone("IST", 5*3600+1800)
	if got := Key("", takenAt.In(ist)); got != "season-20250525T180405Z.json" {
		t.Errorf("Key() with non-UTC time = %q", got)
	}
}

func TestArchiveUploadsSnapshot(t *testing.T) {
	putter := &fakePutter{}
	s := &Spaces{client: putter, bucket: "bets", prefix: "dream11"}

	snap := &ledger.Snapshot{
		TakenAt:   takenAt,
		Standings: []ledger.Standing{{Rank: 1, Username: "amy", Points: 3}},
		Results:   []*models.MatchResult{{ID: 1, HistoryID: 1, MatchNumber: 4, Winner: "amy"}},
	}

	key, err := s.Archive(context.Background(), snap)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if key != "dream11/season-20250525T180405Z.json" || putter.key != key {
		t.Errorf("Archive() key = %q, uploaded as %q", key, putter.key)
	}

	var decoded ledger.Snapshot
	if err := json.Unmarshal(putter.body, &decoded); err != nil {
		t.Fatalf("uploaded body is not JSON: %v", err)
	}
	if len(decoded.Standings) != 1 || decoded.Standings[0].Username != "amy" || len(decoded.Results) != 1 {
		t.Errorf("uploaded snapshot = %+v", decoded)
	}
}

func TestArchiveUploadError(t *testing.T) {
	s := &Spaces{client: &fakePutter{err: errors.New("access denied")}, bucket: "bets"}
	if _, err := s.Archive(context.Background(), &ledger.Snapshot{TakenAt: takenAt}); err == nil {
		t.Fatal("Archive() swallowed the upload error")
	}
}

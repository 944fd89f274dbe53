package ledger

import (
	"fmt"
	"regexp"
	"strings"
)

const maxUsernameLength = 32

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// ValidationError is returned for input a command user can fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NormalizeUsername accepts a Discord mention or a plain name of letters and
// digits. Mentions come back as <@id>, plain names without a leading @.
func NormalizeUsername(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if m := mentionPattern.FindStringSubmatch(raw); m != nil {
		return "<@" + m[1] + ">", nil
	}

	name := strings.TrimPrefix(raw, "@")
	if name == "" || len(name) > maxUsernameLength || !isAlnum(name) {
		return "", &ValidationError{
			Field:   "username",
			Message: "use only letters and numbers or mention a user",
		}
	}
	return name, nil
}

// IsMention reports whether a stored username is a Discord mention.
func IsMention(username string) bool {
	return mentionPattern.MatchString(username)
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func (s *Service) validateMatch(matchNumber int) error {
	if matchNumber < 1 || matchNumber > s.limits.MaxMatchNumber {
		return &ValidationError{
			Field:   "match number",
			Message: fmt.Sprintf("must be between 1 and %d", s.limits.MaxMatchNumber),
		}
	}
	return nil
}

func (s *Service) validateDelta(delta int64) error {
	if delta == 0 {
		return &ValidationError{Field: "points", Message: "must not be zero"}
	}
	if delta > s.limits.MaxPointsPerUpdate || delta < -s.limits.MaxPointsPerUpdate {
		return &ValidationError{
			Field:   "points",
			Message: fmt.Sprintf("must be between -%d and %d", s.limits.MaxPointsPerUpdate, s.limits.MaxPointsPerUpdate),
		}
	}
	return nil
}

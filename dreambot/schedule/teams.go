package schedule

import "strings"

var teamAcronyms = map[string]string{
	"Kolkata Knight Riders":       "KKR",
	"Royal Challengers Bengaluru": "RCB",
	"Sunrisers Hyderabad":         "SRH",
	"Rajasthan Royals":            "RR",
	"Chennai Super Kings":         "CSK",
	"Mumbai Indians":              "MI",
	"Delhi Capitals":              "DC",
	"Lucknow Super Giants":        "LSG",
	"Gujarat Titans":              "GT",
	"Punjab Kings":                "PBKS",
}

// Acronym returns the short form of a franchise name. Unknown names are
// returned trimmed but otherwise unchanged.
func Acronym(team string) string {
	team = strings.TrimSpace(team)
	if a, ok := teamAcronyms[team]; ok {
		return a
	}
	return team
}

// Package params holds the static allow-lists for ballchasing API query
// parameters and validates filter values before any request is made.
package params

import (
	"fmt"
	"strconv"
	"strings"
)

// Playlists are the playlist identifiers accepted by the replay filters.
var Playlists = []string{
	"unranked-duels", "unranked-doubles", "unranked-standard", "unranked-chaos",
	"private", "season", "offline",
	"ranked-duels", "ranked-doubles", "ranked-solo-standard", "ranked-standard",
	"snowday", "rocketlabs", "hoops", "rumble", "tournament", "dropshot",
	"ranked-hoops", "ranked-rumble", "ranked-dropshot", "ranked-snowday",
	"dropshot-rumble", "heatseeker",
}

// Ranks are the rank identifiers accepted by the min-rank/max-rank filters.
var Ranks = []string{
	"unranked",
	"bronze-1", "bronze-2", "bronze-3",
	"silver-1", "silver-2", "silver-3",
	"gold-1", "gold-2", "gold-3",
	"platinum-1", "platinum-2", "platinum-3",
	"diamond-1", "diamond-2", "diamond-3",
	"champion-1", "champion-2", "champion-3",
	"grand-champion",
}

// MatchResults are the accepted match-result filter values.
var MatchResults = []string{"win", "loss"}

// Visibilities are the accepted replay/group visibility values.
var Visibilities = []string{"public", "unlisted", "private"}

// PlayerIdentifications are the accepted group player-identification modes.
var PlayerIdentifications = []string{"by-id", "by-name"}

// TeamIdentifications are the accepted group team-identification modes.
var TeamIdentifications = []string{"by-distinct-players", "by-player-clusters"}

// ReplaySortFields are the accepted sort-by values for replay listings.
var ReplaySortFields = []string{"replay-date", "upload-date"}

// GroupSortFields are the accepted sort-by values for group listings.
var GroupSortFields = []string{"created", "name"}

// SortDirections are the accepted sort-dir values.
var SortDirections = []string{"asc", "desc"}

var (
	playlistSet      = toSet(Playlists)
	rankSet          = toSet(Ranks)
	matchResultSet   = toSet(MatchResults)
	visibilitySet    = toSet(Visibilities)
	playerIdentSet   = toSet(PlayerIdentifications)
	teamIdentSet     = toSet(TeamIdentifications)
	replaySortSet    = toSet(ReplaySortFields)
	groupSortSet     = toSet(GroupSortFields)
	sortDirectionSet = toSet(SortDirections)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidationError reports a parameter value outside its allowed set, or a
// missing required parameter combination. It is raised before any network
// call is made.
type ValidationError struct {
	Param   string
	Value   string
	Allowed []string
	Reason  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s %q: must be one of %s",
		e.Param, e.Value, strings.Join(e.Allowed, ", "))
}

func checkAllowed(param, value string, set map[string]struct{}, allowed []string) error {
	if value == "" {
		return nil
	}
	if _, ok := set[value]; !ok {
		return &ValidationError{Param: param, Value: value, Allowed: allowed}
	}
	return nil
}

// CheckPlaylist validates a playlist identifier.
func CheckPlaylist(value string) error {
	return checkAllowed("playlist", value, playlistSet, Playlists)
}

// CheckRank validates a rank identifier.
func CheckRank(param, value string) error {
	return checkAllowed(param, value, rankSet, Ranks)
}

// CheckSeason validates a season identifier. Seasons are "1".."14" for the
// pre-free-to-play era and "f1", "f2", ... afterwards.
func CheckSeason(value string) error {
	if value == "" {
		return nil
	}
	num := value
	free := strings.HasPrefix(value, "f")
	if free {
		num = value[1:]
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || (!free && n > 14) {
		return &ValidationError{
			Param:  "season",
			Value:  value,
			Reason: fmt.Sprintf("invalid season %q: must be 1-14 or f1, f2, ...", value),
		}
	}
	return nil
}

// CheckMatchResult validates a match-result value.
func CheckMatchResult(value string) error {
	return checkAllowed("match-result", value, matchResultSet, MatchResults)
}

// CheckVisibility validates a visibility value.
func CheckVisibility(value string) error {
	return checkAllowed("visibility", value, visibilitySet, Visibilities)
}

// CheckPlayerIdentification validates a group player-identification mode.
func CheckPlayerIdentification(value string) error {
	return checkAllowed("player-identification", value, playerIdentSet, PlayerIdentifications)
}

// CheckTeamIdentification validates a group team-identification mode.
func CheckTeamIdentification(value string) error {
	return checkAllowed("team-identification", value, teamIdentSet, TeamIdentifications)
}

// CheckSortDir validates a sort direction.
func CheckSortDir(value string) error {
	return checkAllowed("sort-dir", value, sortDirectionSet, SortDirections)
}

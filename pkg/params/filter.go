package params

import (
	"net/url"
	"strconv"
	"time"
)

// ErrPlayerRequired is returned when a replay listing is requested without
// any player to filter by.
var ErrPlayerRequired = &ValidationError{
	Reason: "at least one of player-name or player-id must be supplied",
}

// ReplayFilter holds the query parameters accepted by the replay listing
// endpoint. Zero values are omitted from the request.
type ReplayFilter struct {
	// PlayerName and PlayerID filter by participating player. At least one
	// of the two is required.
	PlayerName string
	PlayerID   string

	Title       string
	Playlist    string
	Season      string
	MatchResult string
	MinRank     string
	MaxRank     string
	Map         string
	Uploader    string
	Pro         bool

	CreatedBefore    time.Time
	CreatedAfter     time.Time
	ReplayDateBefore time.Time
	ReplayDateAfter  time.Time

	SortBy  string
	SortDir string
}

// Values validates the filter and renders it as URL query parameters.
func (f ReplayFilter) Values() (url.Values, error) {
	if f.PlayerName == "" && f.PlayerID == "" {
		return nil, ErrPlayerRequired
	}
	checks := []error{
		CheckPlaylist(f.Playlist),
		CheckSeason(f.Season),
		CheckMatchResult(f.MatchResult),
		CheckRank("min-rank", f.MinRank),
		CheckRank("max-rank", f.MaxRank),
		checkAllowed("sort-by", f.SortBy, replaySortSet, ReplaySortFields),
		CheckSortDir(f.SortDir),
	}
	for _, err := range checks {
		if err != nil {
			return nil, err
		}
	}

	v := url.Values{}
	setNonEmpty(v, "player-name", f.PlayerName)
	setNonEmpty(v, "player-id", f.PlayerID)
	setNonEmpty(v, "title", f.Title)
	setNonEmpty(v, "playlist", f.Playlist)
	setNonEmpty(v, "season", f.Season)
	setNonEmpty(v, "match-result", f.MatchResult)
	setNonEmpty(v, "min-rank", f.MinRank)
	setNonEmpty(v, "max-rank", f.MaxRank)
	setNonEmpty(v, "map", f.Map)
	setNonEmpty(v, "uploader", f.Uploader)
	if f.Pro {
		v.Set("pro", strconv.FormatBool(f.Pro))
	}
	setTime(v, "created-before", f.CreatedBefore)
	setTime(v, "created-after", f.CreatedAfter)
	setTime(v, "replay-date-before", f.ReplayDateBefore)
	setTime(v, "replay-date-after", f.ReplayDateAfter)
	setNonEmpty(v, "sort-by", f.SortBy)
	setNonEmpty(v, "sort-dir", f.SortDir)
	return v, nil
}

// GroupFilter holds the query parameters accepted by the group listing
// endpoint. Zero values are omitted from the request.
type GroupFilter struct {
	Name    string
	Creator string

	// Group restricts the listing to direct children of a parent group.
	Group string

	CreatedBefore time.Time
	CreatedAfter  time.Time

	SortBy  string
	SortDir string
}

// Values validates the filter and renders it as URL query parameters.
func (f GroupFilter) Values() (url.Values, error) {
	if err := checkAllowed("sort-by", f.SortBy, groupSortSet, GroupSortFields); err != nil {
		return nil, err
	}
	if err := CheckSortDir(f.SortDir); err != nil {
		return nil, err
	}

	v := url.Values{}
	setNonEmpty(v, "name", f.Name)
	setNonEmpty(v, "creator", f.Creator)
	setNonEmpty(v, "group", f.Group)
	setTime(v, "created-before", f.CreatedBefore)
	setTime(v, "created-after", f.CreatedAfter)
	setNonEmpty(v, "sort-by", f.SortBy)
	setNonEmpty(v, "sort-dir", f.SortDir)
	return v, nil
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setTime(v url.Values, key string, t time.Time) {
	if !t.IsZero() {
		v.Set(key, t.UTC().Format(time.RFC3339))
	}
}

package kilometrikisa

// User is the profile of the logged-in account.
type User struct {
	Nickname  string
	FirstName string
	LastName  string
	Email     string
	// Municipality is always empty for now, the profile page stopped
	// rendering it as a plain input field.
	Municipality string
}

// Contest is one entry of the site-wide contest menu. Link is the
// stable identifier used to resolve the internal numeric contest id.
type Contest struct {
	Name string
	Link string
}

// LogEntry is one day of logged kilometers, produced from the
// log_list_json feed.
type LogEntry struct {
	// Date in YYYY-MM-DD format.
	Date string
	Km   float64
}

// TeamSummary is one row of the my-teams page. ContestID is resolved
// with a secondary fetch of the contest's public teams page.
type TeamSummary struct {
	TeamName  string
	Contest   string
	Time      string
	Link      string
	Year      string
	ContestID string
}

// TeamMemberResult is one row of a team's internal roster table. Rank
// is assigned by the site, not recomputed.
type TeamMemberResult struct {
	Rank int
	Name string
	Km   float64
	Days int
}

// TeamStatus is a snapshot of one team's page at fetch time.
type TeamStatus struct {
	Name string
	// Rank is kept as the digits-only string rendered on the page.
	Rank    string
	Results []TeamMemberResult
}

// LeaderboardEntry is one row of the paginated contest-wide team
// leaderboard. Ordering is authoritative from the source page.
type LeaderboardEntry struct {
	Rank        int
	Name        string
	KmPerPerson float64
	KmTotal     float64
	Days        float64
}

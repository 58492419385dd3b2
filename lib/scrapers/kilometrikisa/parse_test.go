package kilometrikisa

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/front.html
var frontPage string

//go:embed testdata/myteams.html
var myTeamsPage string

//go:embed testdata/team.html
var teamPage string

//go:embed testdata/leaderboard.html
var leaderboardPage string

//go:embed testdata/contest_teams.html
var contestTeamsPage string

func document(t *testing.T, contents string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	require.NoError(t, err)
	return doc
}

func TestParseContests(t *testing.T) {
	contests, err := ParseContests(document(t, frontPage))
	require.NoError(t, err)

	expected := []Contest{
		{Name: "Kilometrikisa 2018", Link: "/contests/kilometrikisa-2018/teams/"},
		{Name: "Talvikilometrikisa 2018", Link: "/contests/talvikisa-2018/teams/"},
		{Name: "Kilometrikisa 2017", Link: "/contests/kilometrikisa-2017/teams/"},
	}
	if diff := cmp.Diff(expected, contests); diff != "" {
		t.Fatalf("contest list mismatch (-expected +got):\n%s", diff)
	}
}

func TestParseContestsMissingMenu(t *testing.T) {
	_, err := ParseContests(document(t, `<html><body><ul><li>a</li></ul></body></html>`))
	require.ErrorIs(t, err, StructureMismatch)
}

func TestParseMyTeams(t *testing.T) {
	teams, err := ParseMyTeams(document(t, myTeamsPage))
	require.NoError(t, err)
	require.Len(t, teams, 4)

	require.Equal(t, TeamSummary{
		TeamName: "Polkijat",
		Contest:  "Kilometrikisa 2018",
		Time:     "1.5. - 22.9.2018",
		Link:     "/teams/polkijat/",
		Year:     "2018",
	}, teams[0])

	for _, team := range teams {
		require.Equal(t, team.Contest[len(team.Contest)-4:], team.Year)
	}
}

func TestParseMyTeamsMissingTable(t *testing.T) {
	_, err := ParseMyTeams(document(t, `<html><body><table id="other"></table></body></html>`))
	require.ErrorIs(t, err, StructureMismatch)
}

func TestParseTeamPage(t *testing.T) {
	status, err := ParseTeamPage(document(t, teamPage))
	require.NoError(t, err)

	require.Equal(t, "Polkijat", status.Name)
	require.Equal(t, "37", status.Rank)

	expected := []TeamMemberResult{
		{Rank: 1, Name: "Jane Doe", Km: 1204.5, Days: 98},
		{Rank: 2, Name: "Matti Meikäläinen", Km: 987.25, Days: 76},
		{Rank: 3, Name: "Maija Mallikas", Km: 450, Days: 51},
	}
	if diff := cmp.Diff(expected, status.Results); diff != "" {
		t.Fatalf("roster mismatch (-expected +got):\n%s", diff)
	}
}

func TestParseTeamPageOptionalHeader(t *testing.T) {
	// name and rank widgets absent, roster present
	status, err := ParseTeamPage(document(t, `
		<html><body>
		<div data-slug="my-team"><table><tbody>
			<tr><td>1</td><td>Jane</td><td>10,5 km</td><td>3</td></tr>
		</tbody></table></div>
		</body></html>
	`))
	require.NoError(t, err)
	require.Empty(t, status.Name)
	require.Empty(t, status.Rank)
	require.Len(t, status.Results, 1)
}

func TestParseTeamPageMissingRoster(t *testing.T) {
	_, err := ParseTeamPage(document(t, `<html><body><div class="widget"><h4>x</h4></div></body></html>`))
	require.ErrorIs(t, err, StructureMismatch)
}

func TestParseLeaderboardPage(t *testing.T) {
	entries, err := ParseLeaderboardPage(document(t, leaderboardPage))
	require.NoError(t, err)

	expected := []LeaderboardEntry{
		{Rank: 1, Name: "Vauhtipyörä", KmPerPerson: 1208.75, KmTotal: 12087.5, Days: 312},
		{Rank: 2, Name: "Ketjureaktio", KmPerPerson: 1104.2, KmTotal: 8833.6, Days: 287.5},
		{Rank: 3, Name: "Polkijat", KmPerPerson: 998, KmTotal: 6986, Days: 244},
	}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatalf("leaderboard mismatch (-expected +got):\n%s", diff)
	}
}

func TestParseLeaderboardPageMissingTable(t *testing.T) {
	_, err := ParseLeaderboardPage(document(t, `<html><body><table class="other"></table></body></html>`))
	require.ErrorIs(t, err, StructureMismatch)
}

func TestParseLeaderboardPageShortRow(t *testing.T) {
	// a data row missing columns is a format change, not a header row
	_, err := ParseLeaderboardPage(document(t, `<html><body><table class="result-table">
		<tr><th>Sija</th><th>Joukkue</th><th>km/hlö</th><th>km yht.</th><th>päiviä</th></tr>
		<tr><td>1</td><td>Polkijat</td><td>998</td><td>6 986</td></tr>
	</table></body></html>`))
	require.ErrorIs(t, err, StructureMismatch)
}

func TestCleanTeamName(t *testing.T) {
	require.Equal(t, "Vauhtipyörä", cleanTeamName("Vauhtipyörä TOP-10 (Helsinki)"))
	require.Equal(t, "Ketjureaktio", cleanTeamName("Ketjureaktio (Tampere)"))
	require.Equal(t, "Polkijat", cleanTeamName("Polkijat"))
}

func TestParseContestId(t *testing.T) {
	id, err := ParseContestId(document(t, contestTeamsPage))
	require.NoError(t, err)
	require.Equal(t, "31", id)
}

func TestParseContestIdNotFound(t *testing.T) {
	_, err := ParseContestId(document(t, `<html><head><script>var x = 1;</script></head></html>`))
	require.ErrorIs(t, err, ContestIdNotFound)

	_, err = ParseContestId(document(t, `<html><body><p>no scripts</p></body></html>`))
	require.ErrorIs(t, err, ContestIdNotFound)
}

func TestMapUserLog(t *testing.T) {
	entries, err := mapUserLog([]logFeedEntry{
		{Start: "2018-06-01", Title: "42.5"},
		{Start: "2018-06-02", Title: "0"},
	})
	require.NoError(t, err)
	require.Equal(t, []LogEntry{
		{Date: "2018-06-01", Km: 42.5},
		{Date: "2018-06-02", Km: 0},
	}, entries)

	_, err = mapUserLog([]logFeedEntry{{Start: "2018-06-03", Title: "ei yhtään"}})
	require.ErrorIs(t, err, InvalidNumber)
}

func TestPublicTeamsLink(t *testing.T) {
	require.Equal(t, "/contests/polkijat/teams/", publicTeamsLink("/teams/polkijat/"))
}

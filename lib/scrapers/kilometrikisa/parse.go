package kilometrikisa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"kilometrikisa-backend/lib/htmlutil"
	"kilometrikisa-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Extractors in this file are pure functions from an already-fetched
// document to typed records. They never retry or downgrade failures:
// a scraper that silently returns garbled data is worse than one that
// fails loudly.

func parseNumber(text string) (float64, error) {
	v, err := strconv.ParseFloat(textutil.OnlyNumbers(strings.TrimSpace(text)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", InvalidNumber, text)
	}
	return v, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseContests reads the site-wide contest menu off the front page:
// the second top-level list, then its last nested list.
func ParseContests(doc *goquery.Document) ([]Contest, error) {
	menu := doc.Find("ul").Eq(1).Find("ul").Last()
	if menu.Length() == 0 {
		return nil, fmt.Errorf("%w: contest menu list is missing", StructureMismatch)
	}

	var contests []Contest
	for _, a := range htmlutil.GetAnchors(menu.Find("li a")) {
		contests = append(contests, Contest{
			Name: a.Name,
			Link: a.Href,
		})
	}
	return contests, nil
}

// ParseMyTeams reads the rows of the my-teams table. Year is the last
// four characters of the contest label, which always ends with a
// 4-digit Gregorian year.
func ParseMyTeams(doc *goquery.Document) ([]TeamSummary, error) {
	table := doc.Find("table#teams")
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: teams table is missing", StructureMismatch)
	}

	var teams []TeamSummary
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := htmlutil.CellTexts(row)
		if len(cols) < 3 {
			return
		}

		contest := cols[1]
		year := ""
		if runes := []rune(contest); len(runes) >= 4 {
			year = string(runes[len(runes)-4:])
		}

		teams = append(teams, TeamSummary{
			TeamName: cols[0],
			Contest:  contest,
			Time:     cols[2],
			Link:     row.Find("td a").First().AttrOr("href", ""),
			Year:     year,
		})
	})
	return teams, nil
}

// ParseTeamPage reads a single team's page: the widget header for the
// team name, the contest table for the team's overall rank and the
// my-team roster for member rows. Name and rank are optional, the
// roster is not.
func ParseTeamPage(doc *goquery.Document) (TeamStatus, error) {
	name := strings.TrimSpace(doc.Find("div.widget h4").First().Text())
	rank := digitsOnly(doc.Find("div.team-contest-table strong").First().Text())

	tbody := doc.Find(`div[data-slug="my-team"] tbody`).First()
	if tbody.Length() == 0 {
		return TeamStatus{}, fmt.Errorf("%w: my-team roster is missing", StructureMismatch)
	}

	var results []TeamMemberResult
	var rowErr error
	tbody.ChildrenFiltered("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		// team admins see an extra member email column
		row.Find("td.memberEmail").Remove()

		cols := htmlutil.CellTexts(row)
		if len(cols) < 4 {
			rowErr = fmt.Errorf("%w: roster row %d has %d columns", StructureMismatch, i, len(cols))
			return false
		}

		memberRank, err := strconv.Atoi(strings.TrimSpace(cols[0]))
		if err != nil {
			rowErr = fmt.Errorf("%w: roster rank %q", InvalidNumber, cols[0])
			return false
		}
		km, err := parseNumber(cols[2])
		if err != nil {
			rowErr = err
			return false
		}
		days, err := strconv.Atoi(textutil.OnlyNumbers(cols[3]))
		if err != nil {
			rowErr = fmt.Errorf("%w: roster days %q", InvalidNumber, cols[3])
			return false
		}

		results = append(results, TeamMemberResult{
			Rank: memberRank,
			Name: textutil.TrimPersonName(cols[1]),
			Km:   km,
			Days: days,
		})
		return true
	})
	if rowErr != nil {
		return TeamStatus{}, rowErr
	}

	return TeamStatus{
		Name:    name,
		Rank:    rank,
		Results: results,
	}, nil
}

func cleanTeamName(name string) string {
	name = strings.ReplaceAll(name, " TOP-10", "")
	if i := strings.LastIndex(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// ParseLeaderboardPage reads one page of the contest-wide team
// leaderboard. Row order is kept as rendered.
func ParseLeaderboardPage(doc *goquery.Document) ([]LeaderboardEntry, error) {
	table := doc.Find("table.result-table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: result-table is missing", StructureMismatch)
	}

	var entries []LeaderboardEntry
	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			// header row, th cells only
			return true
		}
		if cells.Length() < 5 {
			rowErr = fmt.Errorf("%w: leaderboard row %d has %d columns", StructureMismatch, i, cells.Length())
			return false
		}

		// the first cell carries a rank-trend icon before the number
		cells.Eq(0).Find("div").First().Remove()

		rank, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			rowErr = fmt.Errorf("%w: leaderboard rank %q", InvalidNumber, cells.Eq(0).Text())
			return false
		}
		kmpp, err := parseNumber(cells.Eq(2).Text())
		if err != nil {
			rowErr = err
			return false
		}
		kmTotal, err := parseNumber(cells.Eq(3).Text())
		if err != nil {
			rowErr = err
			return false
		}
		days, err := parseNumber(cells.Eq(4).Text())
		if err != nil {
			rowErr = err
			return false
		}

		entries = append(entries, LeaderboardEntry{
			Rank:        rank,
			Name:        cleanTeamName(strings.TrimSpace(cells.Eq(1).Text())),
			KmPerPerson: kmpp,
			KmTotal:     kmTotal,
			Days:        days,
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return entries, nil
}

var contestIdRegex = regexp.MustCompile(`json-search/(\d+)/`)

// ParseContestId pulls the internal numeric contest id out of the
// first inline script block of a contest teams page.
func ParseContestId(doc *goquery.Document) (string, error) {
	script := doc.Find("script").First()
	if script.Length() == 0 {
		return "", fmt.Errorf("%w: page has no script block", ContestIdNotFound)
	}
	groups := contestIdRegex.FindStringSubmatch(script.Text())
	if len(groups) < 2 {
		return "", ContestIdNotFound
	}
	return groups[1], nil
}

// logFeedEntry is the wire shape of one element of the log_list_json
// feed.
type logFeedEntry struct {
	Start string `json:"start"`
	Title string `json:"title"`
}

func mapUserLog(feed []logFeedEntry) ([]LogEntry, error) {
	entries := make([]LogEntry, len(feed))
	for i, e := range feed {
		km, err := strconv.ParseFloat(strings.TrimSpace(e.Title), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: log feed title %q", InvalidNumber, e.Title)
		}
		entries[i] = LogEntry{
			Date: e.Start,
			Km:   km,
		}
	}
	return entries, nil
}

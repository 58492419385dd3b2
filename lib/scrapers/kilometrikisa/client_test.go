package kilometrikisa

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kilometrikisa-backend/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "embed"
)

const (
	testUsername = "kilometrikisatesti"
	testPassword = "kilometrikisatesti"
	testToken    = "2Iq5Sb2McTVCB8v9kQir7qvLTArjbBFe"
)

// fakeSite mimics the contest site's session protocol: csrf token on
// the login form, cookie echo validation on posts, session cookie on
// authenticated pages.
type fakeSite struct {
	mux                *http.ServeMux
	myTeamsBody        string
	leaderboardFetches atomic.Int64
}

func newFakeSite(t *testing.T) *fakeSite {
	s := &fakeSite{mux: http.NewServeMux(), myTeamsBody: myTeamsPage}

	s.mux.HandleFunc("GET /accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.UserAgent(), "Mozilla/5.0")
		fmt.Fprint(w, loginFixture)
	})

	s.mux.HandleFunc("POST /accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("csrfmiddlewaretoken") != testToken ||
			!strings.Contains(r.Header.Get("Cookie"), "csrftoken="+testToken) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.PostFormValue("username") != testUsername || r.PostFormValue("password") != testPassword {
			fmt.Fprintf(w, "<html><body>%s</body></html>", loginErrorReply)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "fake-session", Path: "/"})
		fmt.Fprint(w, "<html><body>ok</body></html>")
	})

	s.mux.HandleFunc("GET /accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("sessionid"); err != nil {
			fmt.Fprint(w, `<html><body><div id="signup">Luo tili</div></body></html>`)
			return
		}
		fmt.Fprint(w, profileFixture)
	})

	s.mux.HandleFunc("GET /accounts/myteams/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, s.myTeamsBody)
	})

	s.mux.HandleFunc("GET /contests/rikkinaiset/teams/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>ei sisältöä</p></body></html>")
	})

	s.mux.HandleFunc("GET /contests/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, contestTeamsPage)
	})

	s.mux.HandleFunc("GET /toplist/", func(w http.ResponseWriter, r *http.Request) {
		s.leaderboardFetches.Add(1)
		page := r.URL.Query().Get("page")

		// later pages respond faster, so completion order is the
		// reverse of page order
		switch page {
		case "1":
			time.Sleep(60 * time.Millisecond)
		case "2":
			time.Sleep(40 * time.Millisecond)
		case "3":
			time.Sleep(20 * time.Millisecond)
		}

		if r.URL.Query().Get("broken") != "" && page == "2" {
			fmt.Fprint(w, "<html><body><p>maintenance</p></body></html>")
			return
		}
		fmt.Fprintf(w, `<html><body><table class="result-table">
			<tr><td><div class="icon"></div> %s</td><td>Team %s</td><td>100</td><td>1 000</td><td>10</td></tr>
		</table></body></html>`, page, page)
	})

	s.mux.HandleFunc("GET /contest/log_list_json/31/", func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("start"))
		require.NotEmpty(t, r.URL.Query().Get("end"))
		fmt.Fprint(w, `[{"start": "2018-06-01", "title": "42.5"}, {"start": "2018-06-02", "title": "12"}]`)
	})

	s.mux.HandleFunc("GET /contest/log_list_json/offline/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html><body>palvelinvirhe</body></html>", http.StatusInternalServerError)
	})

	s.mux.HandleFunc("POST /contest/log-save/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("csrfmiddlewaretoken") != testToken {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return s
}

//go:embed testdata/login.html
var loginFixture string

//go:embed testdata/profile.html
var profileFixture string

func testClient(t *testing.T) (*Client, *fakeSite) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/kilometrikisa")
	t.Cleanup(cleanup)

	site := newFakeSite(t)
	server := httptest.NewServer(site.mux)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: server.URL,
	})
	require.NoError(t, err)
	return client, site
}

func TestLoginToken(t *testing.T) {
	client, _ := testClient(t)

	token, err := client.LoginToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, testToken, token)
}

func TestLogin(t *testing.T) {
	client, _ := testClient(t)

	user, err := client.Login(context.Background(), testUsername, testPassword)
	require.NoError(t, err)
	require.Equal(t, "Kilometri", user.FirstName)
	require.Equal(t, "Kisa", user.LastName)
	require.Equal(t, "kilometrikisatesti", user.Nickname)
	require.Equal(t, "testi@kilometrikisa.fi", user.Email)
	require.Empty(t, user.Municipality)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client, _ := testClient(t)

	_, err := client.Login(context.Background(), "invaliduser", "invalidpw")
	require.ErrorIs(t, err, InvalidCredentials)
}

func TestProfileWithoutLogin(t *testing.T) {
	client, _ := testClient(t)

	_, err := client.Profile(context.Background())
	require.ErrorIs(t, err, NotAuthenticated)
}

func TestMyTeams(t *testing.T) {
	client, _ := testClient(t)

	teams, err := client.MyTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 4)
	for _, team := range teams {
		require.Equal(t, "31", team.ContestID)
		require.Equal(t, team.Contest[len(team.Contest)-4:], team.Year)
	}
}

func TestMyTeamsPartialResolution(t *testing.T) {
	client, site := testClient(t)
	site.myTeamsBody = `<html><body><table id="teams"><tbody>
		<tr>
			<td><a href="/teams/polkijat/">Polkijat</a></td>
			<td>Kilometrikisa 2018</td>
			<td>1.5. - 22.9.2018</td>
		</tr>
		<tr>
			<td><a href="/teams/rikkinaiset/">Rikkinäiset</a></td>
			<td>Kilometrikisa 2018</td>
			<td>1.5. - 22.9.2018</td>
		</tr>
	</tbody></table></body></html>`

	teams, err := client.MyTeams(context.Background())
	require.ErrorIs(t, err, ContestIdNotFound)
	require.Contains(t, err.Error(), "Rikkinäiset")

	// the failed row is still listed, just without a contest id
	require.Len(t, teams, 2)
	require.Equal(t, "Polkijat", teams[0].TeamName)
	require.Equal(t, "31", teams[0].ContestID)
	require.Equal(t, "Rikkinäiset", teams[1].TeamName)
	require.Empty(t, teams[1].ContestID)
}

func TestLeaderboardPagesOrder(t *testing.T) {
	client, site := testClient(t)

	entries, err := client.LeaderboardPages(
		context.Background(),
		client.BaseUrl.String()+"/toplist/?sort=rank&order=asc",
		4,
	)
	require.NoError(t, err)
	require.EqualValues(t, 4, site.leaderboardFetches.Load())

	require.Len(t, entries, 4)
	for i, entry := range entries {
		require.Equal(t, i+1, entry.Rank)
		require.Equal(t, fmt.Sprintf("Team %d", i+1), entry.Name)
	}
}

func TestLeaderboardPagesFailAggregate(t *testing.T) {
	client, _ := testClient(t)

	_, err := client.LeaderboardPages(
		context.Background(),
		client.BaseUrl.String()+"/toplist/?sort=rank&order=asc&broken=1",
		3,
	)
	require.ErrorIs(t, err, StructureMismatch)
}

func TestUserResults(t *testing.T) {
	client, _ := testClient(t)

	entries, err := client.UserResults(context.Background(), "31", 2018)
	require.NoError(t, err)
	require.Equal(t, []LogEntry{
		{Date: "2018-06-01", Km: 42.5},
		{Date: "2018-06-02", Km: 12},
	}, entries)
}

func TestUserResultsServerError(t *testing.T) {
	client, _ := testClient(t)

	// a transport-level failure must not be reported as a feed shape
	// mismatch
	_, err := client.UserResults(context.Background(), "offline", 2018)
	require.Error(t, err)
	require.NotErrorIs(t, err, StructureMismatch)
	require.Contains(t, err.Error(), "log feed fetch failed")
}

func TestUpdateLog(t *testing.T) {
	client, _ := testClient(t)

	err := client.UpdateLog(context.Background(), "31", "2018-06-01", 100.5)
	require.NoError(t, err)
}

package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<ul>
			<li><a href="/contests/kilometrikisa-2018/">Kilometrikisa  2018</a></li>
			<li><a href="/contests/talvikisa-2019/">
				Talvikisa 2019
			</a></li>
		</ul>
	`))
	require.NoError(t, err)

	anchors := GetAnchors(doc.Find("li a"))
	require.Equal(t, []Anchor{
		{Name: "Kilometrikisa 2018", Href: "/contests/kilometrikisa-2018/"},
		{Name: "Talvikisa 2019", Href: "/contests/talvikisa-2019/"},
	}, anchors)
}

func TestCellTexts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table><tr><td> 1 </td><td>Team</td><td>208,75</td></tr></table>`,
	))
	require.NoError(t, err)

	cells := CellTexts(doc.Find("tr").First())
	require.Equal(t, []string{"1", "Team", "208,75"}, cells)
}

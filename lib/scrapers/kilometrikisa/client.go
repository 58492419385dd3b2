package kilometrikisa

import (
	"bytes"
	"context"
	"net/http/cookiejar"
	"net/url"
	"time"

	"kilometrikisa-backend/lib/restyutil"
	"kilometrikisa-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://www.kilometrikisa.fi"

const (
	loginPath   = "/accounts/login/"
	myTeamsPath = "/accounts/myteams/"
	profilePath = "/accounts/profile/"
	logSavePath = "/contest/log-save/"
)

// the server varies behavior by client fingerprint, so a desktop
// browser user agent is required
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"

// Client holds one cookie-bearing session against the contest site.
// Login must complete before concurrent use; after that, GET-based
// calls are safe to run concurrently since they do not mutate session
// state.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// BaseUrl defaults to the production site when empty.
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", acceptHeader)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/kilometrikisa/http")
	restyutil.DumpClient(client, restyDumpOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

func (c *Client) loginUrl() string {
	return c.BaseUrl.JoinPath(loginPath).String()
}

// getDocument fetches a page and hands it to goquery. `link` may be a
// site-relative path or an absolute url.
func (c *Client) getDocument(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}

package historical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
)

const (
	DefaultBaseURL   = "https://disease.sh"
	DefaultUserAgent = "covidtracker/1.0"
	DefaultTimeout   = 30 * time.Second

	// AllLocations asks for the worldwide figures.
	AllLocations = "all"
)

var (
	ErrNotFound    = errors.New("location not found")
	ErrNoTimeline  = errors.New("response has no timeline")
	// ErrBadResponse marks a reply whose body does not have the expected shape.
	ErrBadResponse = errors.New("bad response")
)

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Response is a single historical snapshot for one location.
type Response struct {
	Country  string
	Timeline covidstats.Timeline
}

type Client struct {
	baseURL   string
	lastDays  int
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

type Option func(*Client)

// WithLastDays limits the history to n days; n <= 0 requests everything.
func WithLastDays(n int) Option {
	return func(c *Client) {
		c.lastDays = n
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithTransport(t http.RoundTripper) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) historicalURL(country string) string {
	days := "all"
	if c.lastDays > 0 {
		days = fmt.Sprint(c.lastDays)
	}
	return fmt.Sprintf("%s/v3/covid-19/historical/%s?lastdays=%s", c.baseURL, url.PathEscape(country), days)
}

func (c *Client) populationURL(country string) string {
	if isAll(country) {
		return c.baseURL + "/v3/covid-19/all"
	}
	return fmt.Sprintf("%s/v3/covid-19/countries/%s", c.baseURL, url.PathEscape(country))
}

func isAll(country string) bool {
	return strings.EqualFold(country, AllLocations)
}

// Historical loads the cumulative cases, deaths and recoveries of a country.
func (c *Client) Historical(ctx context.Context, country string) (*Response, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: empty country", ErrNotFound)
	}

	body, err := c.get(ctx, "historical", c.historicalURL(country))
	if err != nil {
		return nil, err
	}

	if isAll(country) {
		var tl timelineDTO
		if err := json.Unmarshal(body, &tl); err != nil {
			return nil, fmt.Errorf("%w: cannot decode worldwide timeline: %w", ErrBadResponse, err)
		}
		return &Response{Country: "World", Timeline: tl.toTimeline()}, nil
	}

	var dto historicalDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: cannot decode timeline of %q: %w", ErrBadResponse, country, err)
	}
	if dto.Timeline == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTimeline, country)
	}
	name := dto.Country
	if name == "" {
		name = country
	}
	return &Response{Country: name, Timeline: dto.Timeline.toTimeline()}, nil
}

// Population returns the population the source reports for a country.
func (c *Client) Population(ctx context.Context, country string) (int64, error) {
	body, err := c.get(ctx, "population", c.populationURL(strings.TrimSpace(country)))
	if err != nil {
		return 0, err
	}
	var dto countryDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return 0, fmt.Errorf("%w: cannot decode country info of %q: %w", ErrBadResponse, country, err)
	}
	if dto.Population <= 0 {
		return 0, fmt.Errorf("no population known for %q", country)
	}
	return dto.Population, nil
}

func (c *Client) get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	collector := colly.NewCollector(colly.UserAgent(c.userAgent), colly.AllowURLRevisit())
	collector.WithTransport(&contextTransport{ctx: ctx, base: c.transport})

	var body []byte
	var status int
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	log.WithFields(log.Fields{"url": rawURL}).Debug("requesting covid data")
	err := collector.Visit(rawURL)
	observeFetch(endpoint, status, err, time.Since(start))
	if err != nil {
		if status >= 300 {
			return nil, &StatusError{Code: status, URL: rawURL}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request to %s aborted: %w", rawURL, ctxErr)
		}
		log.WithFields(log.Fields{"url": rawURL, "err": err}).Error("covid data request failed")
		return nil, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	log.WithFields(log.Fields{"url": rawURL, "bytes": len(body), "took": time.Since(start)}).Debug("covid data received")
	return body, nil
}

// contextTransport binds every request made by the collector to ctx.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

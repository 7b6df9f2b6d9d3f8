package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ErrEventNotFound is returned when a slug lookup matches no open event.
// Callers distinguish it from transport failures to decide whether a broader
// listing fallback makes sense.
var ErrEventNotFound = errors.New("event not found")

// GammaAPI provides methods for interacting with Polymarket's Gamma API
type GammaAPI struct {
	client  *HTTPClient
	baseURL string
}

// NewGammaAPI creates a new Gamma API client
func NewGammaAPI() *GammaAPI {
	return NewGammaAPIWithBase("https://gamma-api.polymarket.com")
}

// NewGammaAPIWithBase creates a client against a custom base URL
func NewGammaAPIWithBase(baseURL string) *GammaAPI {
	return &GammaAPI{
		client:  NewHTTPClient(10 * time.Second),
		baseURL: baseURL,
	}
}

// GammaTag is a category label attached to an event
type GammaTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// GammaEvent is a top-level listing entity with its nested markets
type GammaEvent struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Volume      float64       `json:"volume"`
	Volume24hr  float64       `json:"volume24hr"`
	Featured    bool          `json:"featured"`
	Closed      bool          `json:"closed"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Tags        []GammaTag    `json:"tags"`
	Markets     []GammaMarket `json:"markets"`
}

// GammaMarket is one tradable outcome within an event
type GammaMarket struct {
	ID             string     `json:"id"`
	Question       string     `json:"question"`
	GroupItemTitle string     `json:"groupItemTitle"`
	ConditionID    string     `json:"conditionId"`
	Slug           string     `json:"slug"`
	Active         bool       `json:"active"`
	Closed         bool       `json:"closed"`
	CreatedAt      *time.Time `json:"createdAt"`
	EndDate        *time.Time `json:"endDate"`

	// Prices / top-of-book (Gamma)
	LastTradePrice float64 `json:"lastTradePrice"`
	BestBid        float64 `json:"bestBid"`
	BestAsk        float64 `json:"bestAsk"`

	// Rolling price deltas (fractions of 1.0, may be absent)
	OneDayPriceChange   float64 `json:"oneDayPriceChange"`
	OneWeekPriceChange  float64 `json:"oneWeekPriceChange"`
	OneMonthPriceChange float64 `json:"oneMonthPriceChange"`

	// Liquidity / volume (Gamma)
	VolumeNum    float64 `json:"volumeNum"`
	LiquidityNum float64 `json:"liquidityNum"`
	Volume24hr   float64 `json:"volume24hr"`

	ClobTokenIds string `json:"clobTokenIds"`

	// Gamma serializes this as a JSON string of a string array; see
	// common.ParseOutcomePrices for the decoded form.
	OutcomePrices json.RawMessage `json:"outcomePrices,omitempty"`
}

// EventQuery holds the query parameters for a bulk /events listing
type EventQuery struct {
	Slug      string
	Closed    *bool
	Featured  *bool
	Order     string
	Ascending *bool
	Limit     int
	Offset    int
}

// ListEvents fetches a bulk listing of events from the Gamma API
func (g *GammaAPI) ListEvents(q EventQuery) ([]GammaEvent, error) {
	params := url.Values{}
	if q.Slug != "" {
		params.Set("slug", q.Slug)
	}
	if q.Closed != nil {
		params.Set("closed", strconv.FormatBool(*q.Closed))
	}
	if q.Featured != nil {
		params.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.Ascending != nil {
		params.Set("ascending", strconv.FormatBool(*q.Ascending))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	requestURL := g.baseURL + "/events"
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	var events []GammaEvent
	if err := g.client.MakeJSONRequest(requestURL, nil, &events); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// GetEventBySlug fetches a single event by its exact slug. Returns
// ErrEventNotFound when the slug matches nothing.
func (g *GammaAPI) GetEventBySlug(slug string) (*GammaEvent, error) {
	events, err := g.ListEvents(EventQuery{Slug: slug})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == 404 {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if len(events) == 0 {
		return nil, ErrEventNotFound
	}

	return &events[0], nil
}

// ListOpenEvents fetches up to limit open events, the bulk candidate list the
// matcher filters over.
func (g *GammaAPI) ListOpenEvents(limit int) ([]GammaEvent, error) {
	closed := false
	return g.ListEvents(EventQuery{Closed: &closed, Limit: limit})
}

// ListTrendingEvents fetches open events ordered by 24h volume descending
func (g *GammaAPI) ListTrendingEvents(limit int) ([]GammaEvent, error) {
	closed := false
	asc := false
	return g.ListEvents(EventQuery{
		Closed:    &closed,
		Order:     "volume24hr",
		Ascending: &asc,
		Limit:     limit,
	})
}

// ListFeaturedEvents fetches open events carrying the featured flag
func (g *GammaAPI) ListFeaturedEvents(limit int) ([]GammaEvent, error) {
	closed := false
	featured := true
	return g.ListEvents(EventQuery{Closed: &closed, Featured: &featured, Limit: limit})
}

// ListEventsByVolume fetches open events ordered by total volume descending,
// used as the fallback when the featured list comes back empty.
func (g *GammaAPI) ListEventsByVolume(limit int) ([]GammaEvent, error) {
	closed := false
	asc := false
	return g.ListEvents(EventQuery{
		Closed:    &closed,
		Order:     "volume",
		Ascending: &asc,
		Limit:     limit,
	})
}

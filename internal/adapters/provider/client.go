package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rexbot/internal/domain/model"
	"github.com/okian/rexbot/pkg/logger"
	"github.com/okian/rexbot/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultFetchLimit  = 4
	defaultHTTPTimeout = 30 * time.Second
)

// HTTPClient implements RosterProvider and UnitResolver against the
// game data HTTP API.
type HTTPClient struct {
	baseURL    string
	token      string
	fetchLimit int
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPClient creates a client for the given API base URL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    baseURL,
		fetchLimit: defaultFetchLimit,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("provider")
	}

	return c
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	default:
		return fmt.Errorf("%w: %s returned %d", ErrProviderStatus, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderDecode, err)
	}
	return nil
}

// Players fetches rosters for the given ally codes, fanning out with a
// bounded number of concurrent requests and preserving input order.
func (c *HTTPClient) Players(ctx context.Context, allyCodes []string) ([]model.PlayerRosterEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRosterFetchDuration(float64(time.Since(start).Milliseconds()))
	}()

	players := make([]model.PlayerRosterEntry, len(allyCodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fetchLimit)

	for i, code := range allyCodes {
		i, code := i, code
		g.Go(func() error {
			var entry model.PlayerRosterEntry
			if err := c.getJSON(gctx, "/player/"+url.PathEscape(NormalizeAllyCode(code)), &entry); err != nil {
				return err
			}
			players[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RecordRosterFetchError()
		return nil, err
	}

	c.logger.Debug(ctx, "fetched players", logger.Int("count", len(players)))
	return players, nil
}

// guildPayload mirrors the provider's guild document.
type guildPayload struct {
	Name   string `json:"name"`
	Roster []struct {
		AllyCode string `json:"allyCode"`
		Name     string `json:"name"`
	} `json:"roster"`
}

// GuildAllyCodes returns the guild name and member ally codes for the
// guild the given ally code belongs to.
func (c *HTTPClient) GuildAllyCodes(ctx context.Context, allyCode string) (string, []string, error) {
	var guild guildPayload
	if err := c.getJSON(ctx, "/guild/"+url.PathEscape(NormalizeAllyCode(allyCode)), &guild); err != nil {
		return "", nil, err
	}

	codes := make([]string, 0, len(guild.Roster))
	for _, member := range guild.Roster {
		codes = append(codes, member.AllyCode)
	}
	return guild.Name, codes, nil
}

// FindUnit resolves a unit name or acronym to its canonical unit info.
func (c *HTTPClient) FindUnit(ctx context.Context, nameOrAcronym string) (model.UnitInfo, error) {
	var unit model.UnitInfo
	if err := c.getJSON(ctx, "/unit/"+url.PathEscape(nameOrAcronym), &unit); err != nil {
		return model.UnitInfo{}, err
	}
	return unit, nil
}

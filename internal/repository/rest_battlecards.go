package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/octobees/battlecards/internal/entity"
)

// invalidTextRepresentation is the Postgres code reported for a malformed uuid.
const invalidTextRepresentation = "22P02"

// RESTBattlecardsRepository implements BattlecardsRepository against a
// PostgREST table endpoint such as the one Supabase exposes.
type RESTBattlecardsRepository struct {
	baseURL string
	apiKey  string
	client  *retryablehttp.Client
	now     func() time.Time
}

// NewRetryableClient builds the HTTP client used by RESTBattlecardsRepository.
// Inserts are only retried when the connection could not be established.
func NewRetryableClient(retryMax int, logger retryablehttp.LeveledLogger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.Logger = logger
	client.CheckRetry = retryPolicy
	client.HTTPClient.Timeout = 30 * time.Second
	return client
}

type insertRequestKey struct{}

func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if insert, _ := ctx.Value(insertRequestKey{}).(bool); insert {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		var opErr *net.OpError
		return errors.As(err, &opErr) && opErr.Op == "dial", nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// NewRESTBattlecardsRepository targets {baseURL}/rest/v1/battlecards.
func NewRESTBattlecardsRepository(baseURL, apiKey string, client *retryablehttp.Client) *RESTBattlecardsRepository {
	if client == nil {
		client = NewRetryableClient(retryablehttp.NewClient().RetryMax, nil)
	}
	return &RESTBattlecardsRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		now:     time.Now,
	}
}

var _ BattlecardsRepository = (*RESTBattlecardsRepository)(nil)

// List returns every battlecard, most recently updated first.
func (r *RESTBattlecardsRepository) List(ctx context.Context) ([]entity.Battlecard, error) {
	body, err := r.do(ctx, http.MethodGet, url.Values{"select": {"*"}, "order": {"updated_at.desc"}}, nil)
	if err != nil {
		return nil, fmt.Errorf("list battlecards: %w", err)
	}
	return decodeRESTBattlecards(body), nil
}

// Get fetches a single battlecard by id.
func (r *RESTBattlecardsRepository) Get(ctx context.Context, id string) (*entity.Battlecard, error) {
	body, err := r.do(ctx, http.MethodGet, url.Values{"select": {"*"}, "id": {"eq." + id}}, nil)
	if err != nil {
		return nil, fmt.Errorf("query battlecard by id: %w", err)
	}
	return firstRESTBattlecard(body)
}

// Create inserts a new battlecard and returns the stored representation.
func (r *RESTBattlecardsRepository) Create(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := validateForWrite(card); err != nil {
		return nil, err
	}
	payload := restPayload(card, r.now().UTC())

	body, err := r.do(ctx, http.MethodPost, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("insert battlecard %q: %w", card.CompanyName, err)
	}
	saved, err := firstRESTBattlecard(body)
	if err != nil {
		return nil, fmt.Errorf("insert battlecard %q: no row returned", card.CompanyName)
	}
	return saved, nil
}

// Update replaces every attribute of the battlecard identified by card.ID.
func (r *RESTBattlecardsRepository) Update(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := validateForWrite(card); err != nil {
		return nil, err
	}
	if card.ID == "" {
		return nil, ErrBattlecardNotFound
	}
	now := r.now().UTC()
	payload := restPayload(card, now)
	payload["updated_at"] = now

	body, err := r.do(ctx, http.MethodPatch, url.Values{"id": {"eq." + card.ID}}, payload)
	if err != nil {
		return nil, fmt.Errorf("update battlecard %q: %w", card.CompanyName, err)
	}
	return firstRESTBattlecard(body)
}

// Delete removes a battlecard by id.
func (r *RESTBattlecardsRepository) Delete(ctx context.Context, id string) error {
	body, err := r.do(ctx, http.MethodDelete, url.Values{"id": {"eq." + id}}, nil)
	if err != nil {
		return fmt.Errorf("delete battlecard: %w", err)
	}
	if len(gjson.ParseBytes(body).Array()) == 0 {
		return ErrBattlecardNotFound
	}
	return nil
}

func restPayload(card *entity.Battlecard, now time.Time) map[string]any {
	payload := make(map[string]any, len(entity.Fields)+1)
	for _, f := range entity.Fields {
		payload[f.Column] = f.StoredValue(card)
	}
	lastUpdated := now
	if card.LastUpdated != nil {
		lastUpdated = card.LastUpdated.UTC()
	}
	payload["last_updated"] = lastUpdated
	return payload
}

func (r *RESTBattlecardsRepository) do(ctx context.Context, method string, query url.Values, payload map[string]any) ([]byte, error) {
	endpoint := r.baseURL + "/rest/v1/battlecards"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	if method == http.MethodPost {
		ctx = context.WithValue(ctx, insertRequestKey{}, true)
	}

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		parsed := gjson.ParseBytes(body)
		if parsed.Get("code").String() == invalidTextRepresentation {
			return nil, ErrBattlecardNotFound
		}
		message := parsed.Get("message").String()
		if message == "" {
			message = strings.TrimSpace(string(body))
		}
		return nil, fmt.Errorf("%s %s: status %d: %s", method, req.URL.Path, resp.StatusCode, message)
	}
	return body, nil
}

func firstRESTBattlecard(body []byte) (*entity.Battlecard, error) {
	cards := decodeRESTBattlecards(body)
	if len(cards) == 0 {
		return nil, ErrBattlecardNotFound
	}
	return &cards[0], nil
}

func decodeRESTBattlecards(body []byte) []entity.Battlecard {
	cards := []entity.Battlecard{}
	for _, item := range gjson.ParseBytes(body).Array() {
		if !item.IsObject() {
			continue
		}
		cards = append(cards, decodeRESTBattlecard(item))
	}
	return cards
}

func decodeRESTBattlecard(item gjson.Result) entity.Battlecard {
	card := entity.Battlecard{ID: item.Get("id").String()}
	for _, f := range entity.Fields {
		f.SetFlat(&card, restFlat(f, item.Get(f.Column)))
	}
	card.EnsureDefaults()

	card.CreatedAt = parseTimestamp(item.Get("created_at").String())
	card.UpdatedAt = parseTimestamp(item.Get("updated_at").String())
	if value := item.Get("last_updated"); value.Exists() && value.Type != gjson.Null {
		ts := parseTimestamp(value.String())
		card.LastUpdated = &ts
	}
	return card
}

// restFlat reads a column in flat text form. Tables that keep lists as text
// arrays or mappings as jsonb are accepted as well.
func restFlat(f entity.Field, value gjson.Result) string {
	switch {
	case !value.Exists() || value.Type == gjson.Null:
		return ""
	case f.Kind == entity.KindList && value.IsArray():
		items := make([]string, 0, len(value.Array()))
		for _, item := range value.Array() {
			items = append(items, item.String())
		}
		return entity.JoinList(items)
	case value.IsObject() || value.IsArray():
		return value.Raw
	default:
		return value.String()
	}
}

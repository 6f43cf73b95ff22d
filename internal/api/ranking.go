package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"ranking-dashboard/internal/config"
	"ranking-dashboard/internal/constants"
	"ranking-dashboard/internal/domain"
	"ranking-dashboard/internal/middleware"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	opFetchRanking = "fetch ranking"
	opSubmitPlayer = "submit player"
)

type RankingClient struct {
	baseURL string
	client  middleware.Doer
	logger  zerolog.Logger
}

func NewRankingClient(cfg *config.Config, logger zerolog.Logger) *RankingClient {
	transport := &fasthttp.Client{
		Name:                constants.UserAgent,
		MaxConnsPerHost:     constants.MaxConnsPerHost,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: constants.MaxIdleConnDuration,
	}
	return NewRankingClientWithDoer(cfg.APIBaseURL, middleware.RequestID(logger)(transport), logger)
}

func NewRankingClientWithDoer(baseURL string, doer middleware.Doer, logger zerolog.Logger) *RankingClient {
	return &RankingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  doer,
		logger:  logger,
	}
}

// FetchRanking returns the ranking in backend order, best first.
func (c *RankingClient) FetchRanking(ctx context.Context) ([]domain.Player, error) {
	status, body, err := doRequest(ctx, c, opFetchRanking, fasthttp.MethodGet, "/ranking", nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(opFetchRanking, status, body, KindServer)
	}

	var payload []playerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &Error{Kind: KindServer, Op: opFetchRanking, StatusCode: status, Err: fmt.Errorf("failed to decode ranking: %w", err)}
	}

	players := make([]domain.Player, len(payload))
	for i, p := range payload {
		players[i] = p.toDomain()
	}

	c.logger.Debug().Int("count", len(players)).Msg("ranking fetched")
	return players, nil
}

// SubmitPlayer registers name#tag. When the backend answers with an acknowledgement
// instead of a player record, the submitted identity is echoed back as an unranked player.
func (c *RankingClient) SubmitPlayer(ctx context.Context, name, tag string) (*domain.Player, error) {
	status, body, err := doRequest(ctx, c, opSubmitPlayer, fasthttp.MethodPost, "/players", newPlayerPayload{GameName: name, TagLine: tag})
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 400 && status < 500:
		return nil, statusError(opSubmitPlayer, status, body, KindValidation)
	case !isSuccess(status):
		return nil, statusError(opSubmitPlayer, status, body, KindServer)
	}

	echo := &domain.Player{GameName: name, TagLine: tag, Tier: domain.TierUnranked}
	if len(bytes.TrimSpace(body)) == 0 {
		return echo, nil
	}

	var payload playerPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.GameName == "" {
		c.logger.Debug().Str("name", name).Str("tag", tag).Msg("submit answered without a player record, echoing input")
		return echo, nil
	}

	player := payload.toDomain()
	c.logger.Info().Str("player", player.Key()).Str("tier", string(player.Tier)).Msg("player registered")
	return &player, nil
}

func doRequest(ctx context.Context, c *RankingClient, op, method, path string, payload any) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: failed to encode payload: %w", op, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	// resp goes back to the pool on return
	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusError(op string, status int, body []byte, kind ErrorKind) *Error {
	return &Error{Kind: kind, Op: op, StatusCode: status, Detail: extractDetail(body)}
}

func extractDetail(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return s
		}
		body = payload.Detail
	}

	const maxDetail = 200
	if len(body) > maxDetail {
		n := maxDetail
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		return string(body[:n]) + "..."
	}
	return string(body)
}

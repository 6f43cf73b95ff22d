package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"ranking-dashboard/internal/config"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rankingJSON = `[
  {"game_name":"Faker","tag_line":"KR1","tier":"CHALLENGER","rank":"","lp":1200,"win_rate":61.5,
   "wins":320,"losses":200,"profile_icon_id":6,"top_champions":[7,157,"112"],"initial_lp":1100},
  {"game_name":"Chovy","tag_line":"KR2","tier":"grandmaster","rank":"","lp":1100,"win_rate":58,
   "wins":290,"losses":210,"profile_icon_id":"29","top_champions":null}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *RankingClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRankingClient(&config.Config{APIBaseURL: srv.URL + "/api"}, zerolog.Nop())
}

func TestFetchRanking(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ranking", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, rankingJSON)
	})

	players, err := client.FetchRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)

	faker := players[0]
	assert.Equal(t, "Faker#KR1", faker.Key())
	assert.Equal(t, "CHALLENGER", string(faker.Tier))
	assert.Equal(t, 1200, faker.LP)
	assert.InDelta(t, 61.5, faker.WinRate, 0.001)
	assert.Equal(t, 320, faker.Wins)
	assert.Equal(t, 200, faker.Losses)
	assert.Equal(t, "6", faker.ProfileIconID)
	assert.Equal(t, []string{"7", "157", "112"}, faker.TopChampions)
	assert.Equal(t, 1100, faker.InitialLP)

	chovy := players[1]
	assert.Equal(t, "GRANDMASTER", string(chovy.Tier))
	assert.Equal(t, "29", chovy.ProfileIconID)
	assert.NotNil(t, chovy.TopChampions)
	assert.Empty(t, chovy.TopChampions)
}

func TestFetchRankingEmpty(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})

		players, err := client.FetchRanking(context.Background())
		require.NoError(t, err, body)
		assert.Empty(t, players, body)
	}
}

func TestFetchRankingErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"not found", http.StatusNotFound, `{"detail":"Not Found"}`, "Not Found"},
		{"internal", http.StatusInternalServerError, "boom", "boom"},
		{"malformed", http.StatusOK, `{"not":"a list"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			players, err := client.FetchRanking(context.Background())
			assert.Nil(t, players)
			assert.Equal(t, KindServer, KindOf(err))
			assert.ErrorIs(t, err, ErrServer)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}
}

func TestFetchRankingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewRankingClient(&config.Config{APIBaseURL: url + "/api"}, zerolog.Nop())
	_, err := client.FetchRanking(context.Background())
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchRankingCancelled(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRanking(ctx)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubmitPlayer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/players", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, map[string]string{"game_name": "Padeira", "tag_line": "Nagai"}, in)

		io.WriteString(w, `{"game_name":"Padeira","tag_line":"Nagai","tier":"GOLD","rank":"II","lp":42,
			"win_rate":50.0,"wins":10,"losses":10,"profile_icon_id":29,"top_champions":[266]}`)
	})

	player, err := client.SubmitPlayer(context.Background(), "Padeira", "Nagai")
	require.NoError(t, err)
	assert.Equal(t, "Padeira#Nagai", player.Key())
	assert.Equal(t, "GOLD II", player.Division())
	assert.Equal(t, 42, player.LP)
	assert.Equal(t, []string{"266"}, player.TopChampions)
}

func TestSubmitPlayerAcknowledgement(t *testing.T) {
	for _, body := range []string{"", `{"status":"ok"}`, `"created"`} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, body)
		})

		player, err := client.SubmitPlayer(context.Background(), "Naju", "Anaju")
		require.NoError(t, err, body)
		assert.Equal(t, "Naju#Anaju", player.Key(), body)
		assert.Equal(t, "UNRANKED", string(player.Tier), body)
	}
}

func TestSubmitPlayerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   ErrorKind
		detail string
	}{
		{"unknown account", http.StatusNotFound, `{"detail":"Conta Riot não encontrada"}`, KindValidation, "Conta Riot não encontrada"},
		{"unprocessable", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","tag_line"],"msg":"field required"}]}`, KindValidation, `[{"loc":["body","tag_line"],"msg":"field required"}]`},
		{"bad gateway", http.StatusBadGateway, "", KindServer, ""},
		{"internal", http.StatusInternalServerError, `{"detail":"Erro Riot API"}`, KindServer, "Erro Riot API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			player, err := client.SubmitPlayer(context.Background(), "Larapio", "Larap")
			assert.Nil(t, player)
			assert.Equal(t, tt.kind, KindOf(err))

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindValidation, Op: opSubmitPlayer, StatusCode: 404, Detail: "account not found"}
	assert.Equal(t, "submit player: validation error (status 404): account not found", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrServer)
	assert.Equal(t, KindUnknown, KindOf(io.EOF))
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		desc string
		body string
		want string
	}{
		{"fastapi detail", `{"detail":"Conta Riot não encontrada"}`, "Conta Riot não encontrada"},
		{"structured detail", `{"detail":[{"loc":["body"]}]}`, `[{"loc":["body"]}]`},
		{"plain text", "  bad gateway \n", "bad gateway"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDetail([]byte(tt.body)))
		})
	}
}

func TestExtractDetailTruncatesOnRuneBoundary(t *testing.T) {
	// "ã" is two bytes and straddles the cut
	body := strings.Repeat("a", 199) + "ã" + strings.Repeat("b", 50)

	detail := extractDetail([]byte(body))

	assert.True(t, utf8.ValidString(detail))
	assert.Equal(t, strings.Repeat("a", 199)+"...", detail)
}

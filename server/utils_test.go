package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/tupelo/auth"
	"github.com/minaorangina/tupelo/protocol"
	"github.com/minaorangina/tupelo/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*GameServer, *store.InMemoryGameStore) {
	str := store.NewInMemoryGameStore(store.Opts{Issuer: auth.NewIssuer("secret", time.Hour)})
	return NewServer(str, Opts{}), str
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct status, got %d, want %d", got, want)
	}
}

func mustMakeJson(t *testing.T, input interface{}) string {
	t.Helper()

	data, err := json.Marshal(input)
	require.NoError(t, err)

	return string(data)
}

func mustDecode(t *testing.T, response *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), v), response.Body.String())
}

func newAPIRequest(method, path string, params url.Values) *http.Request {
	if method == http.MethodPost {
		request, _ := http.NewRequest(method, "/api/"+path, strings.NewReader(params.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return request
	}
	request, _ := http.NewRequest(method, "/api/"+path+"?"+params.Encode(), nil)
	return request
}

func call(server http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	server.ServeHTTP(response, newAPIRequest(http.MethodGet, path, params))
	return response
}

func mustRegister(t *testing.T, server http.Handler, name string) protocol.Registration {
	t.Helper()

	response := call(server, "player/register", url.Values{"player": {mustMakeJson(t, map[string]string{"player_name": name})}})
	assertStatus(t, response.Code, http.StatusOK)

	var reg protocol.Registration
	mustDecode(t, response, &reg)
	return reg
}

func mustCreateGame(t *testing.T, server http.Handler, akey string) string {
	t.Helper()

	response := call(server, "game/create", url.Values{"akey": {akey}})
	assertStatus(t, response.Code, http.StatusOK)

	var gameID string
	mustDecode(t, response, &gameID)
	return gameID
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("could not open a ws connection on %s %v", url, err)
	}

	return ws
}

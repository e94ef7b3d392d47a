package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ottoh/crazyeights"
	utils "github.com/ottoh/crazyeights/internal"
)

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)
	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()

	if got != want {
		t.Errorf("Got status %d, want %d", got, want)
	}
}

// newServerWithRoom returns a server whose store already holds a room
// with one pending player, plus that room's id and the player's id.
func newServerWithRoom(t *testing.T) (*GameServer, string, string) {
	t.Helper()

	gameID := NewGameID()
	playerID := crazyeights.NewID()

	store := crazyeights.NewInMemoryGameStore()
	server := NewServer(store, DefaultConfig())

	room, err := crazyeights.NewRoom(crazyeights.RoomOpts{
		ID:        gameID,
		CreatorID: playerID,
		Ruleset:   DefaultConfig().Ruleset(),
		OnClose:   store.RemoveRoom,
	})
	utils.AssertNoError(t, err)
	t.Cleanup(room.Close)

	go room.Listen()

	utils.AssertNoError(t, store.AddRoom(room))
	utils.AssertNoError(t, room.AddPendingPlayer(playerID, "Elton"))

	return server, gameID, playerID
}

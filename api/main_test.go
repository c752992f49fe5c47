package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/controller"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

var (
	testWsUrl          string
	testMock           sqlmock.Sqlmock
	testRp             *api.RequestProcessor
	testGameManager    *mb.BattleshipGameManager
	testSessionManager *mc.BattleshipSessionManager
	dialer             = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

func TestMain(m *testing.M) {
	db, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}
	testMock = mock

	testSessionManager = mc.NewBattleshipSessionManager()
	testGameManager = mb.NewBattleshipGameManager()

	// Everything a request triggers happens before the next read.
	testRp = api.NewRequestProcessor(
		testSessionManager,
		testGameManager,
		sqlc.New(db),
		api.WithDelays(0, 0),
		api.WithScheduler(controller.ImmediateScheduler{}),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", testRp)
	server := httptest.NewServer(mux)
	testWsUrl = "ws" + strings.TrimPrefix(server.URL, "http") + "/battleship"

	code := m.Run()
	server.Close()
	db.Close()
	os.Exit(code)
}

package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func TestSessionLifecycle(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	session := bsm.GenerateNewSession(nil)
	require.NotEmpty(t, session.Id())
	assert.NotContains(t, session.Id(), "=", "session ids are url safe")
	assert.Equal(t, 1, bsm.Count())

	found, err := bsm.FindSession(session.Id())
	require.NoError(t, err)
	assert.Same(t, session, found)

	other := bsm.GenerateNewSession(nil)
	assert.NotEqual(t, session.Id(), other.Id())

	bsm.TerminateSession(session)
	_, err = bsm.FindSession(session.Id())
	assert.ErrorIs(t, err, cerr.ErrSessionNotFound)
	assert.Equal(t, 1, bsm.Count())
}

func TestRemoveStaleSessions(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Minute))
	stale := bsm.GenerateNewSession(nil)
	fresh := bsm.GenerateNewSession(nil)
	stale.createdAt = time.Now().Add(-time.Hour)

	assert.Equal(t, 1, bsm.removeStaleSessions(time.Now()))
	_, err := bsm.FindSession(stale.Id())
	assert.Error(t, err)
	_, err = bsm.FindSession(fresh.Id())
	assert.NoError(t, err)
}

func TestCleanupPeriodicallyStopsWithContext(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Millisecond * 5))
	bsm.GenerateNewSession(nil).createdAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bsm.CleanupPeriodically(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return bsm.Count() == 0 }, time.Second*2, time.Millisecond*5)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second * 2):
		t.Fatal("cleanup did not stop")
	}
}

func TestFetchCodeFromMsg(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	tests := []struct {
		name    string
		payload string
		code    uint8
		wantErr bool
	}{
		{name: "shoot", payload: `{"code":3,"payload":{"x":1,"y":2}}`, code: CodeShoot},
		{name: "session id code is zero", payload: `{"code":0}`, code: CodeSessionID},
		{name: "missing code", payload: `{"payload":{}}`, code: InvalidCode, wantErr: true},
		{name: "not json", payload: `shoot C4`, code: InvalidCode, wantErr: true},
		{name: "code out of range", payload: `{"code":300}`, code: InvalidCode, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, err := bsm.FetchCodeFromMsg([]byte(test.payload))
			assert.Equal(t, test.code, code)
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteAndReadSessionConn(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	upgrader := websocket.Upgrader{}

	echoed := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		session := bsm.GenerateNewSession(conn)
		msg := NewMessage[RespSessionId](CodeSessionID)
		msg.AddPayload(RespSessionId{SessionID: session.Id()})
		if err := bsm.WriteToSessionConn(session, msg, MessageTypeJSON); err != nil {
			return
		}

		_, payload, err := bsm.ReadFromSessionConn(session)
		if err != nil {
			return
		}
		echoed <- payload

		_ = bsm.WriteToSessionConn(session, payload, MessageTypeBytes)
		_ = bsm.WriteToSessionConn(session, 42, MessageTypeBytes)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var resp Message[RespSessionId]
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, CodeSessionID, resp.Code)
	assert.NotEmpty(t, resp.Payload.SessionID)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"code":7}`)))
	assert.Equal(t, `{"code":7}`, string(<-echoed))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"code":7}`, string(raw))
}

func TestWriteRejectsWrongBytesType(t *testing.T) {
	session := NewSession("id", nil, nil)
	err := session.writeToConnWithRetry(42, MessageTypeBytes)
	var connErr ConnErr
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ConnInvalidMsgType, connErr.Code())
}

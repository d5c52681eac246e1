package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"disc-quiz-service/internal/domain"
	"disc-quiz-service/internal/infra/memory"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestWebSocketSubmitFlow(t *testing.T) {
	results := memory.NewResultStore()
	wsHandler := NewWSHandler(newTestService(results, "Ws123456"), domain.DISCQuestionnaireID, zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dial(t, server, "/ws")
	defer conn.Close()

	// Expect session event first.
	_, payload := readNext(conn, t, "session")
	if payload["state"] != "collecting" {
		t.Fatalf("expected collecting session, got %v", payload["state"])
	}

	for _, answer := range []map[string]string{
		{"questionId": "q1", "optionId": "q1-d"},
		{"questionId": "q2", "optionId": "q2-d"},
		{"questionId": "q3", "optionId": "q3-i"},
		{"questionId": "q4", "optionId": "q4-s"},
		{"questionId": "q5", "optionId": "q5-c"},
	} {
		if err := conn.WriteJSON(map[string]any{"type": "answer", "payload": answer}); err != nil {
			t.Fatalf("write answer: %v", err)
		}
		readNext(conn, t, "session")
	}

	if err := conn.WriteJSON(map[string]any{"type": "submit"}); err != nil {
		t.Fatalf("write submit: %v", err)
	}
	_, payload = readNext(conn, t, "result")
	if payload["accessCode"] != "Ws123456" {
		t.Fatalf("expected access code Ws123456, got %v", payload["accessCode"])
	}
	dist, ok := payload["distribution"].([]any)
	if !ok || len(dist) != 4 {
		t.Fatalf("expected 4 distribution entries, got %v", payload["distribution"])
	}
	first := dist[0].(map[string]any)
	if first["category"] != "Dominância" || first["percent"] != 40.0 {
		t.Fatalf("unexpected first entry %v", first)
	}
	if len(results.Results()) != 1 {
		t.Fatalf("expected result stored")
	}

	// Submitting again reports an error and keeps the socket open.
	if err := conn.WriteJSON(map[string]any{"type": "submit"}); err != nil {
		t.Fatalf("write submit: %v", err)
	}
	readNext(conn, t, "error")
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	wsHandler := NewWSHandler(newTestService(memory.NewResultStore(), "Ws123456"), domain.DISCQuestionnaireID, zap.NewNop())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dial(t, server, "/ws")
	defer conn.Close()
	readNext(conn, t, "session")

	if err := conn.WriteJSON(map[string]any{"type": "answer", "payload": map[string]string{"questionId": "q1", "optionId": "nope"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, payload := readNext(conn, t, "error")
	if payload["message"] != domain.ErrOptionNotFound.Error() {
		t.Fatalf("expected option error, got %v", payload["message"])
	}

	if err := conn.WriteJSON(map[string]any{"type": "dance"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readNext(conn, t, "error")
}

func TestWebSocketUnknownQuestionnaire(t *testing.T) {
	wsHandler := NewWSHandler(newTestService(memory.NewResultStore(), "Ws123456"), domain.DISCQuestionnaireID, zap.NewNop())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dial(t, server, "/ws?questionnaireId=big-five")
	defer conn.Close()
	_, payload := readNext(conn, t, "error")
	if payload["message"] != domain.ErrQuestionnaireNotFound.Error() {
		t.Fatalf("expected questionnaire error, got %v", payload["message"])
	}
}

func dial(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + path
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

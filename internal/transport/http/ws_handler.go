package http

import (
	"encoding/json"
	"net/http"

	"disc-quiz-service/internal/app"
	"disc-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler runs one quiz session per socket connection.
type WSHandler struct {
	service         *app.QuizService
	questionnaireID string
	upgrader        websocket.Upgrader
	logger          *zap.Logger
}

func NewWSHandler(service *app.QuizService, questionnaireID string, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service:         service,
		questionnaireID: questionnaireID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type sessionPayload struct {
	SessionID     string               `json:"sessionId"`
	State         app.SessionState     `json:"state"`
	Answers       map[string]string    `json:"answers"`
	Questionnaire domain.Questionnaire `json:"questionnaire"`
}

type resultPayload struct {
	AccessCode   string                     `json:"accessCode"`
	ResultID     int64                      `json:"resultId"`
	Distribution []domain.DistributionEntry `json:"distribution"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	questionnaireID := r.URL.Query().Get("questionnaireId")
	if questionnaireID == "" {
		questionnaireID = h.questionnaireID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	session, questionnaire, err := h.service.Start(r.Context(), questionnaireID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// Single writer goroutine; gorilla connections do not allow concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("ws write error", zap.String("session_id", session.ID), zap.Error(err))
				return
			}
		}
	}()

	// emit stops queueing once the writer has given up on the connection.
	emit := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	emit(outboundMessage[any]{Type: "session", Payload: newSessionPayload(session, questionnaire)})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				emit(errorMessage("invalid answer payload"))
				continue
			}
			updated, err := h.service.Select(r.Context(), session.ID, payload.QuestionID, payload.OptionID)
			if err != nil {
				emit(errorMessage(err.Error()))
				continue
			}
			emit(outboundMessage[any]{Type: "session", Payload: newSessionPayload(updated, questionnaire)})
		case "submit":
			sub, err := h.service.Submit(r.Context(), session.ID)
			if err != nil {
				emit(errorMessage(err.Error()))
				continue
			}
			emit(outboundMessage[any]{Type: "result", Payload: resultPayload{
				AccessCode:   sub.Result.Code,
				ResultID:     sub.Result.ID,
				Distribution: sub.Result.Distribution.Entries(),
			}})
		default:
			emit(errorMessage("unsupported message type"))
		}
	}

	close(send)
	<-writerDone
}

func newSessionPayload(session *app.Session, questionnaire domain.Questionnaire) sessionPayload {
	return sessionPayload{
		SessionID:     session.ID,
		State:         session.State,
		Answers:       session.Answers,
		Questionnaire: questionnaire,
	}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}

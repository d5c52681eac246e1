package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"disc-quiz-service/internal/app"
	"disc-quiz-service/internal/domain"
	"disc-quiz-service/internal/infra/memory"
	"go.uber.org/zap"
)

func TestFormSubmitFlow(t *testing.T) {
	results := memory.NewResultStore()
	server := newFormServer(t, newTestService(results, "AbCd1234"))

	resp, body := get(t, server.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	sessionPath := resp.Request.URL.Path
	if !strings.HasPrefix(sessionPath, "/sessions/") {
		t.Fatalf("expected redirect to session page, got %s", sessionPath)
	}
	for _, want := range []string{"Teste DISC Online", "Quando estou sob pressão", "Ser assertivo e direto (D)", `value="submit"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("form page missing %q", want)
		}
	}

	form := url.Values{
		"q1":     {"q1-d"},
		"q2":     {"q2-d"},
		"q3":     {"q3-i"},
		"q4":     {"q4-s"},
		"q5":     {"q5-c"},
		"action": {"submit"},
	}
	resp, body = postForm(t, server.URL+sessionPath, form)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after submit, got %d: %s", resp.StatusCode, body)
	}
	for _, want := range []string{
		"Resultados do Teste DISC",
		"Distribuição do Perfil DISC",
		"Seu código de acesso aos resultados",
		"AbCd1234",
		"Dominância",
		"40,00",
		"20,00",
		`fill="red"`,
		`fill="orange"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("result page missing %q", want)
		}
	}

	stored := results.Results()
	if len(stored) != 1 || stored[0].Distribution.Dominance != 40 {
		t.Fatalf("expected one stored result with 40%% dominance, got %+v", stored)
	}

	// A second submit shows the same result and stores nothing new.
	resp, body = postForm(t, server.URL+sessionPath, form)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "AbCd1234") {
		t.Fatalf("expected stored result on resubmit, got %d", resp.StatusCode)
	}
	if len(results.Results()) != 1 {
		t.Fatalf("expected no second row")
	}
}

func TestFormSaveKeepsSelections(t *testing.T) {
	server := newFormServer(t, newTestService(memory.NewResultStore(), "AbCd1234"))

	resp, _ := get(t, server.URL+"/")
	sessionPath := resp.Request.URL.Path

	resp, body := postForm(t, server.URL+sessionPath, url.Values{"q2": {"q2-s"}, "action": {"save"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `value="q2-s" checked`) {
		t.Fatalf("expected saved option to be checked")
	}
	if strings.Contains(body, "Resultados do Teste DISC") {
		t.Fatalf("save must not submit")
	}
}

func TestFormErrors(t *testing.T) {
	server := newFormServer(t, newTestService(memory.NewResultStore(), "AbCd1234"))

	resp, _ := get(t, server.URL+"/sessions/unknown")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", resp.StatusCode)
	}

	resp, _ = get(t, server.URL+"/")
	sessionPath := resp.Request.URL.Path
	resp, _ = postForm(t, server.URL+sessionPath, url.Values{"q1": {"q9-x"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown option, got %d", resp.StatusCode)
	}
}

func TestFormStoreFailure(t *testing.T) {
	questionnaires := memory.NewQuestionnaireRepository(
		memory.NewStaticQuestionnaireLoader(domain.DISCQuestionnaire()), time.Minute)
	service := app.NewQuizService(memory.NewSessionStore(), questionnaires, failingResults{}, fixedCode("AbCd1234"), zap.NewNop())
	server := newFormServer(t, service)

	resp, _ := get(t, server.URL+"/")
	sessionPath := resp.Request.URL.Path

	resp, body := postForm(t, server.URL+sessionPath, url.Values{"q1": {"q1-d"}, "action": {"submit"}})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "não foi possível enviar as respostas") {
		t.Fatalf("expected generic failure message")
	}
	if !strings.Contains(body, `value="q1-d" checked`) {
		t.Fatalf("expected selections kept after failure")
	}
}

func newFormServer(t *testing.T, service *app.QuizService) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewFormHandler(service, domain.DISCQuestionnaireID, zap.NewNop()).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, u string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("get %s: %v", u, err)
	}
	return resp, readBody(t, resp)
}

func postForm(t *testing.T, u string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := http.PostForm(u, form)
	if err != nil {
		t.Fatalf("post %s: %v", u, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

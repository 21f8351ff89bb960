package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Lambda-Link/internal/session"
	"Lambda-Link/internal/translate"
	"Lambda-Link/internal/vocab"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := translate.NewService(
		vocab.Builtin(),
		session.NewMemoryStore(),
		translate.NewMemoryStore(),
		translate.NewMemoryQueue(16),
		3,
	)
	srv := httptest.NewServer(NewServer("", service).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("编码请求失败: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
}

func TestTranslateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/translate", map[string]string{"text": "?Uk/co"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("期望 200, got %d", resp.StatusCode)
	}
	var result translate.TranslateResult
	decodeJSON(t, resp, &result)
	if result.Result.Type != "question" {
		t.Fatalf("消息类型应为 question, got %q", result.Result.Type)
	}
	if !strings.Contains(result.Result.Text, "know") {
		t.Fatalf("译文应包含 know, got %q", result.Result.Text)
	}
}

func TestTranslateEndpointBadLanguage(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/translate", map[string]string{"text": "?Uk", "lang": "fr"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("不支持的语言应返回 400, got %d", resp.StatusCode)
	}
}

func TestSessionEndpointLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/sessions", struct{}{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("创建会话应返回 201, got %d", resp.StatusCode)
	}
	var sess session.Session
	decodeJSON(t, resp, &sess)
	if sess.ID == "" {
		t.Fatalf("会话 ID 不应为空")
	}

	// 通过会话串联两次请求，命名空间跨请求保留。
	resp = postJSON(t, srv.URL+"/api/v1/translate", map[string]string{"text": "{ns:cd}", "session_id": sess.ID})
	resp.Body.Close()
	resp = postJSON(t, srv.URL+"/api/v1/translate", map[string]string{"text": "!Ifbg", "session_id": sess.ID})
	var result translate.TranslateResult
	decodeJSON(t, resp, &result)
	if !strings.Contains(result.Result.Text, "bug") {
		t.Fatalf("会话上下文应保留命名空间, got %q", result.Result.Text)
	}

	getResp, err := http.Get(srv.URL + "/api/v1/sessions?id=" + sess.ID)
	if err != nil {
		t.Fatalf("查询会话失败: %v", err)
	}
	var stored session.Session
	decodeJSON(t, getResp, &stored)
	if len(stored.State.Domains) != 1 || stored.State.Domains[0] != "cd" {
		t.Fatalf("会话状态应记录激活域, got %+v", stored.State.Domains)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/sessions?id="+sess.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("删除会话失败: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("删除会话应返回 204, got %d", delResp.StatusCode)
	}

	missing, err := http.Get(srv.URL + "/api/v1/sessions?id=" + sess.ID)
	if err != nil {
		t.Fatalf("查询会话失败: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("删除后的会话应返回 404, got %d", missing.StatusCode)
	}
}

func TestEncodeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/encode", map[string]string{"text": "do you know?"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("期望 200, got %d", resp.StatusCode)
	}
	var result struct {
		Encoded string `json:"encoded"`
	}
	decodeJSON(t, resp, &result)
	if !strings.HasPrefix(result.Encoded, "?") {
		t.Fatalf("疑问句应以 ? 开头, got %q", result.Encoded)
	}
}

func TestJobEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/jobs", map[string]any{"direction": "sideways", "messages": []string{"?Uk"}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("非法方向应返回 400, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/v1/jobs", map[string]any{"direction": "to_en", "messages": []string{"?Uk", "!Ik"}})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("提交任务应返回 202, got %d", resp.StatusCode)
	}
	var job translate.Job
	decodeJSON(t, resp, &job)
	if job.ID == "" || job.Status != translate.StatusPending {
		t.Fatalf("新任务状态异常: %+v", job)
	}

	getResp, err := http.Get(srv.URL + "/api/v1/jobs?id=" + job.ID)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	var got translate.Job
	decodeJSON(t, getResp, &got)
	if got.ID != job.ID {
		t.Fatalf("任务 ID 不一致: %q vs %q", got.ID, job.ID)
	}

	listResp, err := http.Get(srv.URL + "/api/v1/jobs?limit=10")
	if err != nil {
		t.Fatalf("列出任务失败: %v", err)
	}
	var jobs []translate.Job
	decodeJSON(t, listResp, &jobs)
	if len(jobs) != 1 {
		t.Fatalf("期望 1 个任务, got %d", len(jobs))
	}

	missing, err := http.Get(srv.URL + "/api/v1/jobs?id=nope")
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("缺失任务应返回 404, got %d", missing.StatusCode)
	}
}

func TestVocabEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/vocab")
	if err != nil {
		t.Fatalf("查询词汇表失败: %v", err)
	}
	var table vocab.Table
	decodeJSON(t, resp, &table)
	if len(table.Entities) == 0 || len(table.Extended) == 0 {
		t.Fatalf("词汇表不应为空")
	}
	if _, ok := table.Domains["cd"]; !ok {
		t.Fatalf("内置词汇表应包含 cd 域")
	}
}

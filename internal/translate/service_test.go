package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"Lambda-Link/internal/session"
	"Lambda-Link/internal/vocab"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(vocab.Builtin(), session.NewMemoryStore(), NewMemoryStore(), NewMemoryQueue(16), 3)
}

func TestServiceTranslateStateless(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Translate(ctx, TranslateRequest{Text: "?Uk"})
	if err != nil {
		t.Fatalf("翻译失败: %v", err)
	}
	if res.Result.Type != "question" {
		t.Fatalf("消息类型应为 question, got %q", res.Result.Type)
	}
	if !strings.Contains(res.Result.Text, "know") {
		t.Fatalf("译文应包含 know, got %q", res.Result.Text)
	}

	// 无会话时命名空间激活不跨请求保留。
	if _, err := svc.Translate(ctx, TranslateRequest{Text: "{ns:cd}"}); err != nil {
		t.Fatalf("翻译失败: %v", err)
	}
	res, err = svc.Translate(ctx, TranslateRequest{Text: "!Icd:bg"})
	if err != nil {
		t.Fatalf("翻译失败: %v", err)
	}
	if !strings.Contains(res.Result.Text, "bug") {
		t.Fatalf("显式域前缀应解析, got %q", res.Result.Text)
	}
}

func TestServiceTranslateWithSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx)
	if err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}

	if _, err := svc.Translate(ctx, TranslateRequest{Text: "{ns:cd}", SessionID: sess.ID}); err != nil {
		t.Fatalf("翻译失败: %v", err)
	}
	// 激活的命名空间通过会话对后续请求可见。
	res, err := svc.Translate(ctx, TranslateRequest{Text: "!Ifbg", SessionID: sess.ID})
	if err != nil {
		t.Fatalf("翻译失败: %v", err)
	}
	if !strings.Contains(res.Result.Text, "bug") {
		t.Fatalf("会话中的命名空间应保留, got %q", res.Result.Text)
	}

	stored, err := svc.Session(ctx, sess.ID)
	if err != nil {
		t.Fatalf("查询会话失败: %v", err)
	}
	if len(stored.State.Domains) != 1 || stored.State.Domains[0] != "cd" {
		t.Fatalf("会话状态应记录激活域, got %+v", stored.State.Domains)
	}

	if err := svc.CloseSession(ctx, sess.ID); err != nil {
		t.Fatalf("删除会话失败: %v", err)
	}
	if _, err := svc.Session(ctx, sess.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("删除后的会话应不存在, got %v", err)
	}
}

func TestServiceTranslateUnknownSession(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Translate(context.Background(), TranslateRequest{Text: "?Uk", SessionID: "missing"})
	if !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("未知会话应返回 not found, got %v", err)
	}
}

func TestServiceTranslateBadLanguage(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Translate(context.Background(), TranslateRequest{Text: "?Uk", Lang: "fr"}); err == nil {
		t.Fatalf("不支持的语言应报错")
	}
}

func TestServiceEncode(t *testing.T) {
	svc := newTestService(t)
	encoded, err := svc.Encode(context.Background(), "do you know?")
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	if !strings.HasPrefix(encoded, "?") {
		t.Fatalf("疑问句应以 ? 开头, got %q", encoded)
	}
}

func TestServiceSubmitJobValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SubmitJob(ctx, Direction("sideways"), []string{"?Uk"}); err == nil {
		t.Fatalf("非法方向应报错")
	}
	if _, err := svc.SubmitJob(ctx, DirectionToEN, nil); err == nil {
		t.Fatalf("空消息列表应报错")
	}

	job, err := svc.SubmitJob(ctx, DirectionToEN, []string{"?Uk", "!Ik"})
	if err != nil {
		t.Fatalf("提交任务失败: %v", err)
	}
	if job.Status != StatusPending || job.ID == "" {
		t.Fatalf("新任务状态异常: %+v", job)
	}

	got, err := svc.Job(ctx, job.ID)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if got.ID != job.ID || len(got.Messages) != 2 {
		t.Fatalf("任务内容不一致: %+v", got)
	}
}

func TestServiceRunJobSharesContext(t *testing.T) {
	svc := newTestService(t)

	job := &Job{
		ID:        "job-ctx",
		Direction: DirectionToEN,
		Messages:  []string{"{ns:cd}!If", "!Ifbg"},
	}
	results, err := svc.RunJob(context.Background(), job)
	if err != nil {
		t.Fatalf("执行任务失败: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("期望 2 条结果, got %d", len(results))
	}
	if !strings.Contains(results[1].Output, "bug") {
		t.Fatalf("第一条消息的命名空间应对第二条生效, got %q", results[1].Output)
	}
}

func TestServiceRunJobEncode(t *testing.T) {
	svc := newTestService(t)

	job := &Job{
		ID:        "job-enc",
		Direction: DirectionEncode,
		Messages:  []string{"do you know?"},
	}
	results, err := svc.RunJob(context.Background(), job)
	if err != nil {
		t.Fatalf("执行任务失败: %v", err)
	}
	if len(results) != 1 || !strings.HasPrefix(results[0].Output, "?") {
		t.Fatalf("编码结果异常: %+v", results)
	}
}

package translate

import (
	"context"
	"errors"
	"testing"

	xerrors "Lambda-Link/internal/errors"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	job := &Job{
		ID:         "job-1",
		Direction:  DirectionToEN,
		Messages:   []string{"?Uk"},
		Status:     StatusPending,
		MaxRetries: 2,
	}
	if err := store.Create(ctx, job); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if err := store.Create(ctx, job); !errors.Is(err, ErrJobConflict) {
		t.Fatalf("重复创建应返回冲突, got %v", err)
	}

	claimed, err := store.Claim(ctx, "job-1")
	if err != nil {
		t.Fatalf("领取任务失败: %v", err)
	}
	if claimed.Status != StatusRunning || claimed.Attempts != 1 {
		t.Fatalf("领取后的状态异常: %+v", claimed)
	}
	if _, err := store.Claim(ctx, "job-1"); !errors.Is(err, ErrJobConflict) {
		t.Fatalf("运行中的任务不应可再次领取, got %v", err)
	}

	results := []RenderedMessage{{Input: "?Uk", Output: "you know", Type: "question"}}
	if err := store.MarkSucceeded(ctx, "job-1", results); err != nil {
		t.Fatalf("标记成功失败: %v", err)
	}
	got, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if got.Status != StatusSucceeded || len(got.Results) != 1 || got.Results[0].Output != "you know" {
		t.Fatalf("成功后的任务状态异常: %+v", got)
	}
	if _, err := store.Claim(ctx, "job-1"); !errors.Is(err, ErrJobCompleted) {
		t.Fatalf("已完成任务应返回 completed, got %v", err)
	}

	// 读取结果的副本不应影响存储内的任务。
	got.Results[0].Output = "mutated"
	again, _ := store.Get(ctx, "job-1")
	if again.Results[0].Output != "you know" {
		t.Fatalf("存储应返回隔离的副本")
	}
}

func TestMemoryStoreRetryExhaustion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	job := &Job{ID: "job-2", Direction: DirectionToEN, Messages: []string{"!Ik"}, Status: StatusPending, MaxRetries: 1}
	if err := store.Create(ctx, job); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	if _, err := store.Claim(ctx, "job-2"); err != nil {
		t.Fatalf("首次领取失败: %v", err)
	}
	if err := store.MarkFailed(ctx, "job-2", CodeJobProcessing, "boom", false); err != nil {
		t.Fatalf("标记失败出错: %v", err)
	}
	if _, err := store.Claim(ctx, "job-2"); !errors.Is(err, ErrJobExhausted) {
		t.Fatalf("重试耗尽应返回 exhausted, got %v", err)
	}
	got, _ := store.Get(ctx, "job-2")
	if got.ErrorCode != string(CodeJobProcessing) || got.LastError != "boom" {
		t.Fatalf("失败信息未写入: %+v", got)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"a", "b", "c"} {
		job := &Job{ID: id, Direction: DirectionToEN, Messages: []string{"?Uk"}, Status: StatusPending, MaxRetries: 3}
		if err := store.Create(ctx, job); err != nil {
			t.Fatalf("创建任务 %s 失败: %v", id, err)
		}
	}
	jobs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("列出任务失败: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("期望 2 个任务, got %d", len(jobs))
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("缺失任务应返回 not found, got %v", err)
	}
	if code := xerrors.CodeOf(ErrJobNotFound); code != CodeJobNotFound {
		t.Fatalf("错误码不匹配: %s", code)
	}
}

package translate

import (
	xerrors "Lambda-Link/internal/errors"
)

// Direction 表示批量任务的翻译方向。
type Direction string

const (
	// DirectionToEN 将符号消息渲染为英文。
	DirectionToEN Direction = "to_en"
	// DirectionToZH 将符号消息渲染为中文。
	DirectionToZH Direction = "to_zh"
	// DirectionEncode 将英文消息编码为符号串。
	DirectionEncode Direction = "encode"
)

// IsValidDirection 检查给定的翻译方向是否为支持的枚举值。
func IsValidDirection(direction Direction) bool {
	switch direction {
	case DirectionToEN, DirectionToZH, DirectionEncode:
		return true
	default:
		return false
	}
}

// Status 表示任务在生命周期中的状态。
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsValidStatus 检查给定的任务状态是否为支持的枚举值。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusRunning, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}

// RenderedMessage 保存批量任务中单条消息的翻译结果。
type RenderedMessage struct {
	Input      string   `json:"input"`
	Output     string   `json:"output"`
	Type       string   `json:"type,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Job 描述了排队执行的批量翻译任务。任务内的消息按顺序共享同一个
// 解析上下文，前一条消息激活的命名空间对后续消息可见。
type Job struct {
	ID         string            `json:"id"`
	Direction  Direction         `json:"direction"`
	Messages   []string          `json:"messages"`
	Status     Status            `json:"status"`
	Attempts   int               `json:"attempts"`
	MaxRetries int               `json:"max_retries"`
	LastError  string            `json:"last_error,omitempty"`
	ErrorCode  string            `json:"error_code,omitempty"`
	Results    []RenderedMessage `json:"results,omitempty"`
	CreatedAt  int64             `json:"created_at"`
	UpdatedAt  int64             `json:"updated_at"`
}

var (
	// ErrJobNotFound 表示指定的任务不存在。
	ErrJobNotFound = xerrors.New(CodeJobNotFound, "job not found")
	// ErrJobConflict 表示任务在当前状态下无法进行所请求的操作。
	ErrJobConflict = xerrors.New(CodeJobConflict, "job conflict", xerrors.WithSeverity(xerrors.SeverityWarning))
	// ErrJobCompleted 表示任务已经成功完成。
	ErrJobCompleted = xerrors.New(CodeJobCompleted, "job already completed", xerrors.WithSeverity(xerrors.SeverityInfo))
	// ErrJobExhausted 表示任务的重试次数已经耗尽。
	ErrJobExhausted = xerrors.New(CodeJobExhausted, "job retries exhausted", xerrors.WithSeverity(xerrors.SeverityCritical))
)

const (
	CodeJobNotFound   xerrors.Code = "JOB_NOT_FOUND"
	CodeJobConflict   xerrors.Code = "JOB_CONFLICT"
	CodeJobCompleted  xerrors.Code = "JOB_COMPLETED"
	CodeJobExhausted  xerrors.Code = "JOB_RETRIES_EXHAUSTED"
	CodeJobValidation xerrors.Code = "JOB_VALIDATION_FAILED"
	CodeJobPublish    xerrors.Code = "JOB_PUBLISH_FAILED"
	CodeJobProcessing xerrors.Code = "JOB_PROCESSING_FAILED"
)

func init() {
	xerrors.Register(CodeJobNotFound, xerrors.Attributes{
		Message:   "job not found",
		Severity:  xerrors.SeverityInfo,
		Retryable: false,
		Alert:     false,
	})
	xerrors.Register(CodeJobConflict, xerrors.Attributes{
		Message:   "job conflict",
		Severity:  xerrors.SeverityWarning,
		Retryable: false,
		Alert:     false,
	})
	xerrors.Register(CodeJobCompleted, xerrors.Attributes{
		Message:   "job already completed",
		Severity:  xerrors.SeverityInfo,
		Retryable: false,
		Alert:     false,
	})
	xerrors.Register(CodeJobExhausted, xerrors.Attributes{
		Message:   "job retries exhausted",
		Severity:  xerrors.SeverityCritical,
		Retryable: false,
		Alert:     true,
	})
	xerrors.Register(CodeJobValidation, xerrors.Attributes{
		Message:   "job validation failed",
		Severity:  xerrors.SeverityInfo,
		Retryable: false,
		Alert:     false,
	})
	xerrors.Register(CodeJobPublish, xerrors.Attributes{
		Message:   "failed to publish job",
		Severity:  xerrors.SeverityCritical,
		Retryable: true,
		Alert:     true,
	})
	xerrors.Register(CodeJobProcessing, xerrors.Attributes{
		Message:   "job processing failed",
		Severity:  xerrors.SeverityWarning,
		Retryable: true,
		Alert:     true,
	})
}

func cloneJob(job *Job) *Job {
	clone := *job
	if job.Messages != nil {
		clone.Messages = append([]string(nil), job.Messages...)
	}
	if job.Results != nil {
		clone.Results = make([]RenderedMessage, len(job.Results))
		for i, result := range job.Results {
			clone.Results[i] = result
			if result.Unresolved != nil {
				clone.Results[i].Unresolved = append([]string(nil), result.Unresolved...)
			}
		}
	}
	return &clone
}

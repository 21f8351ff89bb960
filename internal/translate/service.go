package translate

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	xerrors "Lambda-Link/internal/errors"
	"Lambda-Link/internal/notation"
	"Lambda-Link/internal/session"
	"Lambda-Link/internal/vocab"
	"Lambda-Link/pkg/logger"
)

// TranslateRequest 描述一次同步翻译请求。SessionID 为空时使用
// 一次性的空上下文，非空时读取并回写对应会话的上下文状态。
type TranslateRequest struct {
	Text      string
	Lang      vocab.Language
	SessionID string
}

// TranslateResult 返回渲染结果以及承载上下文的会话 ID（若有）。
type TranslateResult struct {
	SessionID string          `json:"session_id,omitempty"`
	Result    notation.Result `json:"result"`
}

// Service 负责翻译请求的受理、会话管理与批量任务的创建查询。
type Service struct {
	table      *vocab.Table
	renderer   *notation.Renderer
	encoder    *notation.Encoder
	sessions   session.Store
	store      Store
	producer   Producer
	maxRetries int
}

// NewService 构造翻译服务。
func NewService(table *vocab.Table, sessions session.Store, store Store, producer Producer, maxRetries int) *Service {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Service{
		table:      table,
		renderer:   notation.NewRenderer(table),
		encoder:    notation.NewEncoder(table),
		sessions:   sessions,
		store:      store,
		producer:   producer,
		maxRetries: maxRetries,
	}
}

// Table 返回服务当前使用的词汇表。
func (s *Service) Table() *vocab.Table {
	return s.table
}

// Translate 将符号消息渲染为目标语言的文本。
func (s *Service) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	lang, err := normalizeLanguage(req.Lang)
	if err != nil {
		return nil, err
	}

	nctx := notation.NewContext()
	if req.SessionID != "" {
		if s.sessions == nil {
			return nil, xerrors.New(xerrors.CodeInitializationFailure, "会话存储未初始化")
		}
		sess, getErr := s.sessions.Get(ctx, req.SessionID)
		if getErr != nil {
			return nil, getErr
		}
		nctx = notation.FromState(sess.State)
	}

	result := s.renderer.Render(req.Text, lang, nctx)

	if req.SessionID != "" {
		if err := s.sessions.Save(ctx, req.SessionID, nctx.Snapshot()); err != nil {
			return nil, err
		}
	}
	logger.Audit().Info("翻译完成",
		slog.String("session_id", req.SessionID),
		slog.String("lang", string(lang)),
		slog.Int("tokens", len(result.Tokens)),
		slog.Int("unresolved", len(result.Unresolved)),
	)
	return &TranslateResult{SessionID: req.SessionID, Result: result}, nil
}

// Encode 将英文消息编码为符号串。
func (s *Service) Encode(_ context.Context, text string) (string, error) {
	encoded := s.encoder.Encode(text)
	logger.Audit().Info("编码完成",
		slog.Int("input_len", len(text)),
		slog.Int("output_len", len(encoded)),
	)
	return encoded, nil
}

// OpenSession 创建一个新的会话并返回其初始状态。
func (s *Service) OpenSession(ctx context.Context) (*session.Session, error) {
	if s.sessions == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "会话存储未初始化")
	}
	now := time.Now().Unix()
	sess := &session.Session{
		ID:        uuid.NewString(),
		State:     notation.NewContext().Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	logger.Audit().Info("会话创建成功", slog.String("session_id", sess.ID))
	return sess, nil
}

// Session 返回指定会话的当前状态。
func (s *Service) Session(ctx context.Context, id string) (*session.Session, error) {
	if s.sessions == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "会话存储未初始化")
	}
	return s.sessions.Get(ctx, id)
}

// CloseSession 删除指定的会话。
func (s *Service) CloseSession(ctx context.Context, id string) error {
	if s.sessions == nil {
		return xerrors.New(xerrors.CodeInitializationFailure, "会话存储未初始化")
	}
	return s.sessions.Delete(ctx, id)
}

// SubmitJob 创建一个新的批量翻译任务并推送到队列。
func (s *Service) SubmitJob(ctx context.Context, direction Direction, messages []string) (*Job, error) {
	if !IsValidDirection(direction) {
		return nil, xerrors.New(CodeJobValidation, "不支持的翻译方向: "+string(direction))
	}
	if len(messages) == 0 {
		return nil, xerrors.New(CodeJobValidation, "任务消息不能为空")
	}
	if s.store == nil || s.producer == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "任务服务未初始化")
	}

	jobID := uuid.NewString()
	job := &Job{
		ID:         jobID,
		Direction:  direction,
		Messages:   append([]string(nil), messages...),
		Status:     StatusPending,
		Attempts:   0,
		MaxRetries: s.maxRetries,
	}
	if err := s.store.Create(ctx, job); err != nil {
		return nil, err
	}
	if err := s.producer.Publish(ctx, jobID); err != nil {
		logger.L().Error("任务入队失败", slog.Any("error", err), slog.String("job_id", jobID))
		wrapped := xerrors.Wrap(CodeJobPublish, err, "发布任务到队列失败")
		_ = s.store.MarkFailed(ctx, jobID, CodeJobPublish, wrapped.Error(), true)
		return nil, wrapped
	}
	logger.Audit().Info("任务入队成功",
		slog.String("job_id", jobID),
		slog.String("direction", string(direction)),
		slog.Int("messages", len(job.Messages)),
		slog.Int("max_retries", job.MaxRetries),
	)
	return job, nil
}

// Job 返回指定任务的状态。
func (s *Service) Job(ctx context.Context, id string) (*Job, error) {
	if s.store == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "任务存储未初始化")
	}
	return s.store.Get(ctx, id)
}

// Jobs 返回最近更新的任务列表。
func (s *Service) Jobs(ctx context.Context, limit int) ([]*Job, error) {
	if s.store == nil {
		return nil, xerrors.New(xerrors.CodeInitializationFailure, "任务存储未初始化")
	}
	return s.store.List(ctx, limit)
}

// RunJob 顺序翻译任务内的全部消息。消息共享一个新建的上下文，
// 前面消息中的控制块对后续消息生效。
func (s *Service) RunJob(_ context.Context, job *Job) ([]RenderedMessage, error) {
	if job == nil {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "job 不能为空")
	}
	if !IsValidDirection(job.Direction) {
		return nil, xerrors.New(CodeJobValidation, "不支持的翻译方向: "+string(job.Direction))
	}

	results := make([]RenderedMessage, 0, len(job.Messages))
	if job.Direction == DirectionEncode {
		for _, message := range job.Messages {
			results = append(results, RenderedMessage{
				Input:  message,
				Output: s.encoder.Encode(message),
			})
		}
		return results, nil
	}

	lang := vocab.LangEN
	if job.Direction == DirectionToZH {
		lang = vocab.LangZH
	}
	nctx := notation.NewContext()
	for _, message := range job.Messages {
		rendered := s.renderer.Render(message, lang, nctx)
		results = append(results, RenderedMessage{
			Input:      message,
			Output:     rendered.Text,
			Type:       rendered.Type,
			Unresolved: rendered.Unresolved,
		})
	}
	return results, nil
}

// WaitUntilCompleted 在指定超时时间内轮询任务状态。
func (s *Service) WaitUntilCompleted(ctx context.Context, id string, interval time.Duration) (*Job, error) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := s.Job(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status == StatusSucceeded || job.Status == StatusFailed {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close 释放资源。
func (s *Service) Close() error {
	var firstErr error
	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsNotFound 判断错误是否为"资源不存在"类错误。
func IsNotFound(err error) bool {
	return stdErrors.Is(err, ErrJobNotFound) || stdErrors.Is(err, session.ErrSessionNotFound)
}

func normalizeLanguage(lang vocab.Language) (vocab.Language, error) {
	switch vocab.Language(strings.TrimSpace(string(lang))) {
	case "", vocab.LangEN:
		return vocab.LangEN, nil
	case vocab.LangZH:
		return vocab.LangZH, nil
	default:
		return "", xerrors.New(xerrors.CodeInvalidArgument, "不支持的目标语言: "+string(lang))
	}
}

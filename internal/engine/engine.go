// Package engine orchestrates question execution: catalog queries, parameter
// validation through the schema service, executor dispatch with per-item
// failure isolation, and order-preserving batch execution.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dakfaq/internal/i18n"
	"dakfaq/internal/question"
	"dakfaq/internal/schema"
	"dakfaq/internal/storage"
)

// DefaultConcurrency bounds how many batch items run at once. Storage reads
// are the only blocking work, so a small bound is enough.
const DefaultConcurrency = 8

// Context carries the caller-supplied collaborators for one request.
type Context struct {
	Storage        storage.Storage
	Locale         string
	T              i18n.TranslateFunc
	RepositoryPath string
}

// Request is one question execution request.
type Request struct {
	QuestionID string         `json:"questionId"`
	Parameters map[string]any `json:"parameters,omitempty"`
	AssetFiles []string       `json:"assetFiles,omitempty"`
}

// Response is the outcome of one request. Success is false for unknown
// questions, parameter violations, executor failures, and results that carry
// errors; the engine never surfaces these as Go errors to the caller.
type Response struct {
	Success    bool             `json:"success"`
	QuestionID string           `json:"questionId"`
	Result     *question.Result `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`
	Details    []string         `json:"details,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// Summary aggregates a batch outcome.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchResult holds per-request responses in request order plus a summary.
type BatchResult struct {
	Responses []Response `json:"results"`
	Summary   Summary    `json:"summary"`
}

// Engine is safe for concurrent use: the registry is write-once at
// initialization and read-only afterwards.
type Engine struct {
	registry    *question.Registry
	schemas     *schema.Service
	bundle      *i18n.Bundle
	concurrency int
	initOnce    sync.Once
}

// Option customizes an Engine.
type Option func(*Engine)

// WithConcurrency overrides the batch concurrency bound (must be >= 1).
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.concurrency = n
		}
	}
}

// WithI18n supplies the locale bundle used to build translators when the
// caller does not pass one.
func WithI18n(b *i18n.Bundle) Option {
	return func(e *Engine) { e.bundle = b }
}

// New creates an engine over the given registry. The registry is loaded
// lazily on first use.
func New(reg *question.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:    reg,
		schemas:     schema.NewService(reg),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads the question catalog exactly once; concurrent first
// callers share the single in-flight load. It returns the load warnings on
// every call so operators can surface them.
func (e *Engine) Initialize(ctx context.Context) []question.LoadError {
	e.initOnce.Do(func() {
		e.registry.LoadAll()
	})
	return e.registry.Warnings()
}

// Schemas exposes the schema service bound to this engine's registry.
func (e *Engine) Schemas() *schema.Service {
	return e.schemas
}

func failed(id, msg string, details []string) Response {
	return Response{
		QuestionID: id,
		Error:      msg,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}
}

// ExecuteSingle runs one request to completion. It never returns an error
// and never panics because of a faulty executor.
func (e *Engine) ExecuteSingle(ctx context.Context, req Request, ec Context) Response {
	e.Initialize(ctx)

	m, ok := e.registry.Get(req.QuestionID)
	if !ok {
		return failed(req.QuestionID, fmt.Sprintf("question not found: %s", req.QuestionID), nil)
	}

	req.Parameters = withRepositoryDefault(m.Definition, req.Parameters, ec)

	validation, err := e.schemas.ValidateParameters(req.QuestionID, req.Parameters)
	if err != nil {
		return failed(req.QuestionID, err.Error(), nil)
	}
	if !validation.Valid {
		return failed(req.QuestionID, "invalid parameters", validation.Errors)
	}

	result, err := e.invoke(ctx, m.Executor, e.buildInput(req, ec))
	if err != nil {
		return failed(req.QuestionID, fmt.Sprintf("execution failed: %v", err), nil)
	}

	return Response{
		Success:    !result.Failed(),
		QuestionID: req.QuestionID,
		Result:     result,
		Timestamp:  time.Now().UTC(),
	}
}

// withRepositoryDefault fills a declared repository parameter from
// Context.RepositoryPath when the request omits it. An explicit parameter
// always wins.
func withRepositoryDefault(def question.Definition, params map[string]any, ec Context) map[string]any {
	if ec.RepositoryPath == "" {
		return params
	}
	declared := false
	for _, p := range def.Parameters {
		if p.Name == "repository" {
			declared = true
			break
		}
	}
	if !declared {
		return params
	}
	if _, ok := params["repository"]; ok {
		return params
	}
	out := make(map[string]any, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["repository"] = ec.RepositoryPath
	return out
}

func (e *Engine) buildInput(req Request, ec Context) *question.Input {
	params := make(map[string]any, len(req.Parameters))
	for k, v := range req.Parameters {
		params[k] = v
	}
	files := make([]string, len(req.AssetFiles))
	copy(files, req.AssetFiles)

	locale := ec.Locale
	t := ec.T
	if t == nil && e.bundle != nil {
		t, locale = e.bundle.Translator(locale)
	}

	in := &question.Input{
		Storage:    ec.Storage,
		Parameters: params,
		AssetFiles: files,
		Locale:     locale,
		T:          t,
		Context:    map[string]any{"repositoryPath": ec.RepositoryPath},
	}
	if len(files) > 0 {
		in.AssetFile = files[0]
	}
	return in
}

// invoke dispatches to the executor, converting panics and nil results into
// errors so one faulty question can never take the engine down.
func (e *Engine) invoke(ctx context.Context, ex question.Executor, in *question.Input) (res *question.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("executor panicked: %v", r)
		}
	}()
	res, err = ex.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New("executor returned no result")
	}
	return res, nil
}

// ExecuteBatch runs every request, at most e.concurrency at a time, and
// returns responses in request order regardless of completion order.
// Failures are isolated per item; a batch always yields one response per
// request and runs every item to completion.
func (e *Engine) ExecuteBatch(ctx context.Context, reqs []Request, ec Context) *BatchResult {
	e.Initialize(ctx)

	responses := make([]Response, len(reqs))

	// Limit active items to avoid exhausting storage I/O. Responses are
	// written by index, so completion order never matters.
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	for i, req := range reqs {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			defer func() { <-sem }()
			responses[i] = e.ExecuteSingle(ctx, req, ec)
		}(i, req)
	}
	wg.Wait()

	summary := Summary{Total: len(responses)}
	for _, r := range responses {
		if r.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	return &BatchResult{Responses: responses, Summary: summary}
}

package engine

import (
	"context"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/answer"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/dispatch"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/followup"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/history"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/intent"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

// TurnResult is everything one turn produces: the transparency fields for
// the front-end, the token stream, and the state to persist and echo back.
type TurnResult struct {
	Question         string
	ResolvedQuestion string
	IsFollowup       bool
	Intent           *intent.Intent
	SQL              string
	Columns          []string
	Rows             [][]interface{}
	Sections         []dispatch.ReportSection
	ExampleIDs       []string
	ErrMessage       string
	Stream           answer.TokenStream
	State            *state.ConversationState
}

// Engine runs the full per-turn pipeline: compress history, resolve the
// follow-up, classify, dispatch, synthesize, update state. Every completion
// call is bounded by a timeout; every failure degrades to a grounded answer
// with state still persisted.
type Engine struct {
	manager           *state.Manager
	compressor        *history.Compressor
	resolver          *followup.Resolver
	classifier        *intent.Classifier
	dispatcher        *dispatch.Dispatcher
	synthesizer       *answer.Synthesizer
	completionTimeout time.Duration
	logger            logger.ILogger
}

func NewEngine(
	manager *state.Manager,
	compressor *history.Compressor,
	resolver *followup.Resolver,
	classifier *intent.Classifier,
	dispatcher *dispatch.Dispatcher,
	synthesizer *answer.Synthesizer,
	completionTimeout time.Duration,
	log logger.ILogger,
) *Engine {
	if completionTimeout <= 0 {
		completionTimeout = 60 * time.Second
	}
	return &Engine{
		manager:           manager,
		compressor:        compressor,
		resolver:          resolver,
		classifier:        classifier,
		dispatcher:        dispatcher,
		synthesizer:       synthesizer,
		completionTimeout: completionTimeout,
		logger:            log,
	}
}

// Answer executes one turn. A nil state starts a fresh session. The caller
// streams the result and then calls CompleteTurn with the full answer text.
func (e *Engine) Answer(ctx context.Context, question string, st *state.ConversationState) *TurnResult {
	if st == nil {
		st = state.NewConversationState()
	}

	var compressed *history.Compressed
	{
		tctx, cancel := context.WithTimeout(ctx, e.completionTimeout)
		compressed = e.compressor.Compress(tctx, st)
		cancel()
	}

	var res *followup.Resolution
	{
		tctx, cancel := context.WithTimeout(ctx, e.completionTimeout)
		res = e.resolver.Resolve(tctx, question, compressed.Bullets, st)
		cancel()
	}
	isFollowup := res.Mode == followup.ModeFollowUp

	e.manager.SetSummary(st, compressed.Summary)
	e.manager.ApplyScope(st, res.ScopeUpdates, res.ScopeResets)
	e.manager.SetResolvedQuestion(st, res.ResolvedQuestion)
	e.manager.MergeRelevantHistory(st, compressed.Bullets)

	var it *intent.Intent
	{
		tctx, cancel := context.WithTimeout(ctx, e.completionTimeout)
		it = e.classifier.Classify(tctx, res.ResolvedQuestion)
		cancel()
	}
	if len(it.ReferenceIDs) == 1 {
		e.manager.ApplyScope(st, map[string]string{state.ScopeActiveContractID: it.ReferenceIDs[0]}, nil)
	}

	var exec *dispatch.Execution
	{
		// The dispatcher may make a completion call (query generation) plus
		// store calls; the store side is bounded server-side.
		tctx, cancel := context.WithTimeout(ctx, 2*e.completionTimeout)
		exec = e.dispatcher.Execute(tctx, res.ResolvedQuestion, it)
		cancel()
	}

	priorPrimary := st.Primary
	ans := e.synthesizer.Synthesize(res.ResolvedQuestion, exec, &priorPrimary, isFollowup)

	e.manager.AppendTurn(st, state.RoleUser, question)
	e.manager.MergeRelevantHistory(st, exec.ExampleIDs)
	e.manager.SetPrimary(st, ans.Primary)

	stream := func(sctx context.Context, onToken func(string) error) error {
		tctx, cancel := context.WithTimeout(sctx, e.completionTimeout)
		defer cancel()
		return ans.Stream(tctx, onToken)
	}

	return &TurnResult{
		Question:         question,
		ResolvedQuestion: res.ResolvedQuestion,
		IsFollowup:       isFollowup,
		Intent:           it,
		SQL:              exec.SQL,
		Columns:          exec.Columns,
		Rows:             exec.Rows,
		Sections:         exec.Sections,
		ExampleIDs:       exec.ExampleIDs,
		ErrMessage:       exec.ErrMessage,
		Stream:           stream,
		State:            st,
	}
}

// CompleteTurn records the streamed answer in the transcript.
func (e *Engine) CompleteTurn(st *state.ConversationState, answerText string) {
	if answerText == "" {
		return
	}
	e.manager.AppendTurn(st, state.RoleAssistant, answerText)
}

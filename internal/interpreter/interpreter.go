package interpreter

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Interpreter wires the classifier, entity extraction, knowledge resolver,
// dispatcher, and formatter into a single message-in, response-out pipeline.
type Interpreter struct {
	classifier *Classifier
	resolver   *Resolver
	dispatcher *Dispatcher
	formatter  *Formatter
	logger     *zap.Logger
}

// Options tunes interpreter behavior. Zero values fall back to the
// defaults used by the CLI and server.
type Options struct {
	// ActionThreshold is the minimum classification confidence for a
	// message to be treated as a command.
	ActionThreshold float64
	// KnowledgeThreshold is the minimum match score for a knowledge
	// answer.
	KnowledgeThreshold float64
}

const (
	defaultActionThreshold    = 0.30
	defaultKnowledgeThreshold = 0.40
)

// New builds an interpreter over the inventory and knowledge index.
func New(inventory Inventory, knowledge *KnowledgeIndex, opts Options, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ActionThreshold <= 0 {
		opts.ActionThreshold = defaultActionThreshold
	}
	if opts.KnowledgeThreshold <= 0 {
		opts.KnowledgeThreshold = defaultKnowledgeThreshold
	}
	if knowledge == nil {
		knowledge = NewKnowledgeIndex("", logger)
	}
	return &Interpreter{
		classifier: NewClassifier(opts.ActionThreshold),
		resolver:   NewResolver(knowledge, opts.KnowledgeThreshold),
		dispatcher: NewDispatcher(inventory),
		formatter:  NewFormatter(),
		logger:     logger,
	}
}

// IsExit reports whether the message asks to end the conversation. The
// REPL uses it to stop reading after printing the farewell.
func (in *Interpreter) IsExit(message string) bool {
	return in.classifier.Classify(message).Intent == IntentExit
}

// Process handles one message end to end and always returns a non-empty
// response. Failures are rendered as chat text; no error crosses this
// boundary.
func (in *Interpreter) Process(ctx context.Context, message string) string {
	tokens := Normalize(message)
	if len(tokens) == 0 {
		return in.formatter.Help()
	}

	result := in.classifier.Classify(message)
	in.logger.Debug("message classified",
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence))

	switch result.Intent {
	case IntentExit:
		return in.formatter.Farewell()
	case IntentHelp:
		// Question-style help ("how do i add a shirt") goes to the
		// knowledge index first; the generic guide is the fallback.
		if answer, ok := in.resolver.Resolve(message); ok {
			return in.formatter.Knowledge(answer)
		}
		return in.formatter.Help()
	case IntentUnknown:
		if answer, ok := in.resolver.Resolve(message); ok {
			return in.formatter.Knowledge(answer)
		}
		return in.formatter.Unknown()
	}

	slots := ExtractEntities(tokens, result.Intent)
	outcome, err := in.dispatcher.Dispatch(ctx, result.Intent, slots)
	if err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			cmdErr = collaboratorFailure(err)
		}
		if cmdErr.Kind == KindCollaboratorFailure {
			in.logger.Error("command failed",
				zap.String("intent", string(result.Intent)),
				zap.Error(cmdErr.Err))
		}
		return in.formatter.FormatError(cmdErr)
	}
	return in.formatter.Format(outcome)
}

package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/bookingbot/server/internal/assistant/dialog"
	"github.com/bookingbot/server/internal/assistant/graph/sessions"
	"github.com/bookingbot/server/internal/assistant/model"
	"github.com/bookingbot/server/internal/assistant/nlu"
	logx "github.com/bookingbot/server/pkg/logger"
)

const (
	NodeNormalizer             = "normalizer"
	NodeUnderstanding          = "understanding"
	NodeDialog                 = "dialog"
	NodeActionResponder        = "action_responder"
	NodeClarificationResponder = "clarification_responder"
)

// NewNormalizerPreHandler stashes turn identity in graph state before any
// processing runs.
func NewNormalizerPreHandler() func(context.Context, model.TurnInput, *model.TurnState) (model.TurnInput, error) {
	return func(ctx context.Context, in model.TurnInput, s *model.TurnState) (model.TurnInput, error) {
		s.SessionID = in.SessionID
		s.UserID = in.UserID
		s.Understanding = nil
		return in, nil
	}
}

// NewNormalizerNode lowercases and typo-corrects the utterance.
func NewNormalizerNode(normalizer *nlu.Normalizer) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (model.AnalyzedUtterance, error) {
		return model.AnalyzedUtterance{
			SessionID:  in.SessionID,
			UserID:     in.UserID,
			Raw:        in.Utterance,
			Normalized: normalizer.Normalize(in.Utterance),
		}, nil
	})
}

// NewUnderstandingNode runs intent prediction and entity extraction over the
// analyzed utterance.
func NewUnderstandingNode(engine nlu.IntentEngine, extractor *nlu.EntityExtractor) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.AnalyzedUtterance) (model.Understanding, error) {
		prediction, err := engine.Predict(in.Normalized)
		if err != nil {
			logx.Error().Err(err).Str("session_id", in.SessionID).Msg("intent prediction failed")
			return model.Understanding{}, err
		}
		return model.Understanding{
			SessionID:  in.SessionID,
			UserID:     in.UserID,
			Raw:        in.Raw,
			Prediction: prediction,
			Entities:   extractor.ExtractAll(in.Raw, in.Normalized),
		}, nil
	})
}

// NewUnderstandingPostHandler records the NLU result in graph state and logs
// the prediction.
func NewUnderstandingPostHandler() func(context.Context, model.Understanding, *model.TurnState) (model.Understanding, error) {
	return func(ctx context.Context, out model.Understanding, state *model.TurnState) (model.Understanding, error) {
		state.Understanding = &out
		logx.Debug().
			Str("session_id", state.SessionID).
			Str("intent", string(out.Prediction.Intent)).
			Float64("confidence", out.Prediction.Confidence).
			Int("entities", len(out.Entities)).
			Msg("utterance understood")
		return out, nil
	}
}

// NewDialogNode loads the session, lets the state machine decide the turn,
// and persists the updated session.
func NewDialogNode(machine *dialog.Machine, mgr *sessions.Manager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.Understanding) (*model.Outcome, error) {
		session, err := mgr.Begin(ctx, in.SessionID, in.UserID)
		if err != nil {
			return nil, err
		}

		outcome := machine.Decide(ctx, session, in)

		if err := mgr.Commit(ctx, session); err != nil {
			logx.Error().Err(err).Str("session_id", in.SessionID).Msg("failed to persist session")
			return nil, err
		}
		return outcome, nil
	})
}

// NewClarificationCondition routes outcomes that still need user input to
// the clarification responder.
func NewClarificationCondition() func(context.Context, *model.Outcome) (string, error) {
	return func(ctx context.Context, outcome *model.Outcome) (string, error) {
		if outcome.NeedsClarification {
			logx.Debug().
				Str("session_id", outcome.SessionID).
				Strs("missing", outcome.MissingInfo).
				Msg("routing to clarification responder")
			return NodeClarificationResponder, nil
		}
		return NodeActionResponder, nil
	}
}

// NewActionResponderNode renders completed or informational outcomes.
func NewActionResponderNode(selector *dialog.ResponseSelector) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, outcome *model.Outcome) (*model.TurnResult, error) {
		responseType := model.ResponseMessage
		if outcome.ActionData != nil {
			responseType = model.ResponseAction
		}
		return assemble(outcome, model.Response{
			Type:       responseType,
			Message:    selector.Compose(outcome),
			ActionData: outcome.ActionData,
		}), nil
	})
}

// NewClarificationResponderNode renders outcomes that ask the user for
// missing information.
func NewClarificationResponderNode(selector *dialog.ResponseSelector) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, outcome *model.Outcome) (*model.TurnResult, error) {
		return assemble(outcome, model.Response{
			Type:    model.ResponseClarification,
			Message: selector.Compose(outcome),
		}), nil
	})
}

func assemble(outcome *model.Outcome, response model.Response) *model.TurnResult {
	return &model.TurnResult{
		SessionID:          outcome.SessionID,
		Intent:             outcome.Intent,
		Confidence:         outcome.Confidence,
		Entities:           outcome.Entities,
		Context:            outcome.Context,
		MissingInfo:        outcome.MissingInfo,
		Response:           response,
		NeedsClarification: outcome.NeedsClarification,
		State:              outcome.State,
	}
}

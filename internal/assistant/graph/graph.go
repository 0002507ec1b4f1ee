package graph

import (
	"context"
	"fmt"

	logx "github.com/bookingbot/server/pkg/logger"
	"github.com/cloudwego/eino/compose"

	"github.com/bookingbot/server/internal/assistant/dialog"
	"github.com/bookingbot/server/internal/assistant/graph/nodes"
	"github.com/bookingbot/server/internal/assistant/graph/sessions"
	"github.com/bookingbot/server/internal/assistant/model"
	"github.com/bookingbot/server/internal/assistant/nlu"
)

// Runner is a thin wrapper to execute the compiled graph with the public TurnInput.
type Runner interface {
	ProcessTurn(ctx context.Context, in model.TurnInput) (*model.TurnResult, error)
}

// Config holds everything needed to compose the full turn graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs the
// intent engine and session manager.
type Config struct {
	Classifier  model.ClassifierConfig
	Normalizer  *nlu.Normalizer
	Calendar    dialog.Calendar
	SessionRepo model.SessionRepository
}

// GraphConfig holds all constructed components needed to build the graph.
type GraphConfig struct {
	Normalizer *nlu.Normalizer
	Engine     nlu.IntentEngine
	Extractor  *nlu.EntityExtractor
	Machine    *dialog.Machine
	Selector   *dialog.ResponseSelector
	Sessions   *sessions.Manager
}

// GraphBuilder handles the construction of the turn processing graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.TurnInput, *model.TurnResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *model.TurnResult]
}

func (r *graphRunner) ProcessTurn(ctx context.Context, in model.TurnInput) (*model.TurnResult, error) {
	out, err := r.runnable.Invoke(ctx, in)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BuildTurnGraph composes the NLU engine and session manager, builds the
// graph, and returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.SessionRepo == nil {
		return nil, fmt.Errorf("session repo is nil")
	}
	if cfg.Calendar == nil {
		return nil, fmt.Errorf("calendar is nil")
	}
	if cfg.Normalizer == nil {
		return nil, fmt.Errorf("normalizer is nil")
	}

	engine := buildEngine(cfg.Classifier, cfg.Normalizer)

	selector, err := dialog.NewResponseSelector()
	if err != nil {
		return nil, fmt.Errorf("build response selector: %w", err)
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		Normalizer: cfg.Normalizer,
		Engine:     engine,
		Extractor:  nlu.NewEntityExtractor(nlu.NewDateTimeExtractor()),
		Machine:    dialog.NewMachine(cfg.Calendar, cfg.Classifier.ConfidenceThreshold),
		Selector:   selector,
		Sessions:   sessions.NewManager(cfg.SessionRepo),
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// buildEngine constructs the configured intent engine, loading a persisted
// model when one exists and training on the built-in corpus otherwise. Any
// failure degrades to the keyword fallback rather than aborting startup.
func buildEngine(cfg model.ClassifierConfig, normalizer *nlu.Normalizer) nlu.IntentEngine {
	engine, err := nlu.NewEngine(cfg.Engine, normalizer, cfg)
	if err != nil {
		logx.Warn().Err(err).Str("engine", cfg.Engine).Msg("unknown engine kind, using keyword fallback")
		return nlu.NewKeywordEngine()
	}

	if cfg.ModelDir != "" {
		store := nlu.NewModelStore(cfg.ModelDir)
		if err := store.Load(cfg.Engine, engine); err == nil {
			logx.Debug().Str("engine", cfg.Engine).Msg("loaded persisted intent model")
			return engine
		}

		if err := engine.Train(nlu.DefaultTrainingSet()); err != nil {
			logx.Warn().Err(err).Str("engine", cfg.Engine).Msg("training failed, using keyword fallback")
			return nlu.NewKeywordEngine()
		}
		if err := store.Save(cfg.Engine, engine); err != nil {
			logx.Warn().Err(err).Str("engine", cfg.Engine).Msg("failed to persist intent model")
		}
		return engine
	}

	if err := engine.Train(nlu.DefaultTrainingSet()); err != nil {
		logx.Warn().Err(err).Str("engine", cfg.Engine).Msg("training failed, using keyword fallback")
		return nlu.NewKeywordEngine()
	}
	return engine
}

// BuildGraph constructs and returns the compiled turn graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.TurnInput, *model.TurnResult], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Normalizer == nil || config.Engine == nil || config.Extractor == nil {
		return nil, fmt.Errorf("nlu components are not properly initialized")
	}
	if config.Machine == nil || config.Selector == nil || config.Sessions == nil {
		return nil, fmt.Errorf("dialog components are not properly initialized")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.TurnInput, *model.TurnResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.TurnState {
				return &model.TurnState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeNormalizer,
		nodes.NewNormalizerNode(b.config.Normalizer),
		compose.WithStatePreHandler(nodes.NewNormalizerPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeUnderstanding,
		nodes.NewUnderstandingNode(b.config.Engine, b.config.Extractor),
		compose.WithStatePostHandler(nodes.NewUnderstandingPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeDialog,
		nodes.NewDialogNode(b.config.Machine, b.config.Sessions),
	)

	b.graph.AddLambdaNode(nodes.NodeActionResponder,
		nodes.NewActionResponderNode(b.config.Selector),
	)

	b.graph.AddLambdaNode(nodes.NodeClarificationResponder,
		nodes.NewClarificationResponderNode(b.config.Selector),
	)
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeNormalizer},
		{nodes.NodeNormalizer, nodes.NodeUnderstanding},
		{nodes.NodeUnderstanding, nodes.NodeDialog},
		{nodes.NodeActionResponder, compose.END},
		{nodes.NodeClarificationResponder, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches.
func (b *GraphBuilder) addBranches() error {
	clarificationBranch := compose.NewGraphBranch(
		nodes.NewClarificationCondition(),
		map[string]bool{
			nodes.NodeActionResponder:        true,
			nodes.NodeClarificationResponder: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeDialog, clarificationBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding clarification branch")
		return fmt.Errorf("error adding clarification branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TurnInput, *model.TurnResult], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(20))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}

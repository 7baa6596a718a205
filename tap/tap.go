package tap

import (
	"io"

	"go.uber.org/zap"
)

// Tap wires config, state and the remote content source into a Singer run.
type Tap struct {
	config    *Config
	state     *State
	statePath string
	source    ContentSource
	lg        *zap.Logger
}

type TapArgs struct {
	Config    *Config
	State     *State
	StatePath string
	Source    ContentSource
	Logger    *zap.Logger
}

func New(args TapArgs) *Tap {
	lg := args.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	state := args.State
	if state == nil {
		state = NewState()
	}

	return &Tap{
		config:    args.Config,
		state:     state,
		statePath: args.StatePath,
		source:    args.Source,
		lg:        lg,
	}
}

// Run extracts all streams, emitting messages to out. State is persisted
// after a successful run when a state path was given.
func (t *Tap) Run(out io.Writer) error {
	emitter := NewEmitter(out)

	stream := NewCSVStream(t.source, t.config, t.state, t.lg)
	if err := stream.Sync(emitter); err != nil {
		return err
	}

	if t.statePath != "" {
		if err := t.state.Save(t.statePath); err != nil {
			t.lg.Error("failed to persist state", zap.Error(err))
			return err
		}
	}

	return nil
}

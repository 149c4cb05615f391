package source

import (
	"context"
	"fmt"

	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
)

// WorkUnit is one loaded piece of stylesheet text.
type WorkUnit struct {
	// Identifier is the display name; empty for anonymous stdin.
	Identifier string

	// Path is the file the text was read from; empty for stdin.
	Path string

	// OutputPath is where a write-back goes; empty for stdin.
	OutputPath string

	Text string

	// Info is the file state at read time; nil for stdin.
	Info *fsutil.FileInfo
}

// Name returns the identifier for messages.
func (u WorkUnit) Name() string {
	return format.DisplayName(u.Identifier)
}

type loadFunc func(ctx context.Context) (string, *fsutil.FileInfo, error)

// Pending is a unit whose text has not been read yet.
type Pending struct {
	Identifier string
	Path       string
	OutputPath string

	load loadFunc
}

// Name returns the identifier for messages.
func (p Pending) Name() string {
	return format.DisplayName(p.Identifier)
}

// Load reads the unit's text. Failures wrap format.ErrInputRead.
func (p Pending) Load(ctx context.Context) (WorkUnit, error) {
	if p.load == nil {
		return WorkUnit{}, fmt.Errorf("%w: %s: no reader", format.ErrInputRead, p.Name())
	}

	text, info, err := p.load(ctx)
	if err != nil {
		return WorkUnit{}, fmt.Errorf("%w: %s: %w", format.ErrInputRead, p.Name(), err)
	}

	return WorkUnit{
		Identifier: p.Identifier,
		Path:       p.Path,
		OutputPath: p.OutputPath,
		Text:       text,
		Info:       info,
	}, nil
}

func filePending(path, output string) Pending {
	return Pending{
		Identifier: path,
		Path:       path,
		OutputPath: output,
		load: func(ctx context.Context) (string, *fsutil.FileInfo, error) {
			return fsutil.ReadText(ctx, path)
		},
	}
}

// NewPending returns a Pending that reads its text from load rather than
// from a file, as standard input does.
func NewPending(identifier string, load func(ctx context.Context) (string, error)) Pending {
	return Pending{
		Identifier: identifier,
		load: func(ctx context.Context) (string, *fsutil.FileInfo, error) {
			text, err := load(ctx)
			return text, nil, err
		},
	}
}

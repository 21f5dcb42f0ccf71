package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/foliocal/internal/view"
)

type (
	snapshotMsg struct{}
	previewMsg  struct{}
	editMsg     struct{ path string }
)

// bridge carries controller callbacks and open requests into the
// program's message loop. Change signals coalesce: the model pulls the
// latest state when it handles one.
type bridge struct {
	changed  chan struct{}
	previews chan struct{}
	opens    chan string
}

var _ view.Opener = (*bridge)(nil)

func newBridge() *bridge {
	return &bridge{
		changed:  make(chan struct{}, 1),
		previews: make(chan struct{}, 1),
		opens:    make(chan string, 8),
	}
}

func (b *bridge) snapshotChanged(view.Snapshot) {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

func (b *bridge) previewChanged(view.Preview) {
	select {
	case b.previews <- struct{}{}:
	default:
	}
}

// Open queues path for the editor.
func (b *bridge) Open(ctx context.Context, path string) error {
	select {
	case b.opens <- path:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// listen waits for the next signal. It must be re-armed after every
// message it produces.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.changed:
			return snapshotMsg{}
		case <-b.previews:
			return previewMsg{}
		case p := <-b.opens:
			return editMsg{path: p}
		}
	}
}

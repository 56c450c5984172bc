package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// fileChangedMsg reports that the loaded dataset file was rewritten.
type fileChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// watchCmd blocks on the fsnotify stream until the loaded file is written,
// then surfaces it as a message. Update reloads and re-arms the command.
func (m Model) watchCmd(path string) tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Name != path {
					continue
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					return fileChangedMsg{path: path}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// armWatcher points the shared watcher at the file's directory. Watching the
// directory instead of the file survives editors that replace-on-save.
func (m *Model) armWatcher(path string) {
	if !m.watch {
		return
	}
	if m.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			m.log.Warn("watcher unavailable", zap.Error(err))
			m.watch = false
			return
		}
		m.watcher = w
	}
	if err := m.watcher.Add(filepath.Dir(path)); err != nil {
		m.log.Warn("watch add failed", zap.String("path", path), zap.Error(err))
	}
}

package browser

import (
	"path/filepath"
	"strings"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/registry"
)

// Nav tracks where the browser is and where it came from. Dir is the
// location currently listed; Backup is the full path of the last
// selected item and drives cursor placement when the browser reopens
// or ascends into a directory it has seen before.
type Nav struct {
	Dir    string
	Backup string
}

// SelectDir points the tracker at the directory containing f and
// remembers f itself for placement.
func (n *Nav) SelectDir(f string) {
	n.Backup = f
	n.Dir = filepath.Dir(f)
}

// AscendPath returns the location one level up from dir. A dir whose
// last component is already ".." grows another "/.." instead of being
// stripped, so repeated ascents from a relative start keep working.
func AscendPath(dir string) string {
	if dir == ".." || strings.HasSuffix(dir, "/..") {
		return dir + "/.."
	}
	c := strings.LastIndexByte(dir, '/')
	switch {
	case c > 0:
		return dir[:c]
	case c == 0:
		return "/"
	default:
		return ".."
	}
}

// Canonical resolves a local path to its absolute, symlink-free form.
// Navigation aborts when this fails, leaving the previous location in
// place.
func Canonical(path string) (string, error) {
	p, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(p)
}

// Placement returns the cursor index for a freshly scanned state.
//
// When Backup lies under Dir the cursor lands on the entry whose name
// matches the component Backup adds; remote locations are normalized
// through the remote client first since entry names there are full
// locations. Otherwise the cursor falls back to the default highlight.
func (n *Nav) Placement(state *model.BrowserState, rc RemoteClient) int {
	def := defaultHighlight(state)
	if n.Backup == "" || n.Dir == "" || !strings.HasPrefix(n.Backup, n.Dir) {
		return def
	}

	var target string
	if registry.IsRemotePath(n.Backup) {
		target = n.Backup
		if rc != nil {
			target = rc.CleanPath(target)
		}
		for i := range state.Entries {
			if state.Entries[i].Name == target {
				return i
			}
		}
		return def
	}

	target = filepath.Base(n.Backup)
	for i := range state.Entries {
		if strings.TrimSuffix(state.Entries[i].Name, "/") == target {
			return i
		}
	}
	return def
}

// defaultHighlight skips over the parent pseudo-entry when there is
// anything else to land on.
func defaultHighlight(state *model.BrowserState) int {
	if state.Len() > 1 && isParent(state.Entries[0].Name) {
		return 1
	}
	return 0
}

// ClampCursor keeps an index inside the entry list.
func ClampCursor(state *model.BrowserState, i int) int {
	if i >= state.Len() {
		i = state.Len() - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

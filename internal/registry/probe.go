package registry

import (
	"os"
	"path/filepath"
	"strings"
)

// StoreType identifies the on-disk (or remote) format of a mailbox.
type StoreType int

const (
	StoreUnknown StoreType = iota
	StoreMbox
	StoreMMDF
	StoreMH
	StoreMaildir
	StoreIMAP
)

func (t StoreType) String() string {
	switch t {
	case StoreMbox:
		return "mbox"
	case StoreMMDF:
		return "mmdf"
	case StoreMH:
		return "mh"
	case StoreMaildir:
		return "maildir"
	case StoreIMAP:
		return "imap"
	default:
		return "unknown"
	}
}

// ParseStoreType maps a config string to a StoreType.
func ParseStoreType(s string) StoreType {
	switch strings.ToLower(s) {
	case "mbox":
		return StoreMbox
	case "mmdf":
		return StoreMMDF
	case "mh":
		return StoreMH
	case "maildir":
		return StoreMaildir
	case "imap":
		return StoreIMAP
	default:
		return StoreUnknown
	}
}

// IsRemotePath reports whether the path addresses an IMAP hierarchy.
func IsRemotePath(path string) bool {
	return strings.HasPrefix(path, "imap://") || strings.HasPrefix(path, "imaps://")
}

// ProbePath inspects a location and decides which mailbox store type
// it holds. A directory is a maildir when it has cur/ and new/
// subdirectories, an MH store when it carries one of the MH sequence
// files. A regular file is classified by its leading bytes: mbox
// starts with "From ", MMDF with four ^A bytes. Empty files count as
// mbox so a freshly created mailbox is selectable. Anything else is
// StoreUnknown.
func ProbePath(path string) StoreType {
	if IsRemotePath(path) {
		return StoreIMAP
	}

	st, err := os.Stat(path)
	if err != nil {
		return StoreUnknown
	}

	if st.IsDir() {
		cur, errCur := os.Stat(filepath.Join(path, "cur"))
		newDir, errNew := os.Stat(filepath.Join(path, "new"))
		if errCur == nil && errNew == nil && cur.IsDir() && newDir.IsDir() {
			return StoreMaildir
		}
		for _, seq := range []string{".mh_sequences", ".xmhcache", ".mew_cache", ".sylpheed_cache", ".overview"} {
			if _, err := os.Stat(filepath.Join(path, seq)); err == nil {
				return StoreMH
			}
		}
		return StoreUnknown
	}

	if !st.Mode().IsRegular() {
		return StoreUnknown
	}
	if st.Size() == 0 {
		return StoreMbox
	}

	f, err := os.Open(path)
	if err != nil {
		return StoreUnknown
	}
	defer f.Close()

	head := make([]byte, 5)
	n, err := f.Read(head)
	if err != nil || n < 4 {
		return StoreUnknown
	}
	if n == 5 && string(head) == "From " {
		return StoreMbox
	}
	if string(head[:4]) == "\x01\x01\x01\x01" {
		return StoreMMDF
	}
	return StoreUnknown
}

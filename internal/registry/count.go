package registry

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// countMbox counts messages in an mbox or MMDF file. A message is
// unread when its Status header lacks the R flag. MMDF messages are
// bracketed by ^A^A^A^A lines, so two separators make one message.
func countMbox(path string, t StoreType) (count, unread int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seps := 0
	inHeader := false
	seen := false
	endMessage := func() {
		if inHeader && !seen {
			unread++
		}
		inHeader = false
	}
	for sc.Scan() {
		line := sc.Text()
		isSep := strings.HasPrefix(line, "From ")
		if t == StoreMMDF {
			isSep = line == "\x01\x01\x01\x01"
		}
		switch {
		case isSep:
			seps++
			if t == StoreMMDF && seps%2 == 0 {
				continue // closing bracket
			}
			endMessage()
			inHeader = true
			seen = false
		case inHeader && line == "":
			endMessage()
		case inHeader && strings.HasPrefix(line, "Status:"):
			if strings.ContainsRune(line[len("Status:"):], 'R') {
				seen = true
			}
		}
	}
	endMessage()

	if t == StoreMMDF {
		return seps / 2, unread
	}
	return seps, unread
}

// countMaildir counts messages in a maildir: everything under cur/ and
// new/, with new/ contents counting as unread.
func countMaildir(path string) (count, unread int) {
	for _, sub := range []string{"cur", "new"} {
		entries, err := os.ReadDir(filepath.Join(path, sub))
		if err != nil {
			continue
		}
		for _, de := range entries {
			name := de.Name()
			if strings.HasPrefix(name, ".") || de.IsDir() {
				continue
			}
			count++
			if sub == "new" {
				unread++
			} else if !strings.Contains(name, ":2,") || !strings.Contains(seqFlags(name), "S") {
				unread++
			}
		}
	}
	return count, unread
}

// seqFlags extracts the maildir info flags after the ":2," marker.
func seqFlags(name string) string {
	if i := strings.Index(name, ":2,"); i >= 0 {
		return name[i+3:]
	}
	return ""
}

// countMH counts numerically named messages in an MH directory and
// reads the unseen sequence for the unread count.
func countMH(path string) (count, unread int) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, 0
	}
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		if _, err := strconv.Atoi(de.Name()); err == nil {
			count++
		}
	}

	seq, err := os.Open(filepath.Join(path, ".mh_sequences"))
	if err != nil {
		return count, 0
	}
	defer seq.Close()

	sc := bufio.NewScanner(seq)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "unseen:") {
			continue
		}
		for _, tok := range strings.Fields(line[len("unseen:"):]) {
			if lo, hi, ok := strings.Cut(tok, "-"); ok {
				a, err1 := strconv.Atoi(lo)
				b, err2 := strconv.Atoi(hi)
				if err1 == nil && err2 == nil && b >= a {
					unread += b - a + 1
				}
			} else if _, err := strconv.Atoi(tok); err == nil {
				unread++
			}
		}
	}
	return count, unread
}

// MaildirMtime returns the effective modify time of a maildir: the
// later of its new/ and cur/ subdirectory timestamps.
func MaildirMtime(path string) time.Time {
	var t time.Time
	for _, sub := range []string{"new", "cur"} {
		if st, err := os.Stat(filepath.Join(path, sub)); err == nil {
			if st.ModTime().After(t) {
				t = st.ModTime()
			}
		}
	}
	return t
}

package browser

import (
	"fmt"
	"io/fs"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nhle/mail-browser/internal/model"
)

// FormatEntry expands a folder format string for one entry. The verbs
// follow the usual folder listing conventions:
//
//	%C  entry number (1-based)
//	%d  last modification date
//	%f  name, with /, @ or * appended for dirs, links and executables
//	%F  permission string
//	%g  group name
//	%i  description
//	%l  hard link count
//	%m  message count, when known
//	%n  unread count, when known
//	%N  "N" when the mailbox has new mail
//	%s  size in bytes
//	%t  "*" when tagged
//	%u  owner name
//	%z  size, humanized
//
// Each verb accepts printf-style width and precision, e.g. %-8.8u.
func FormatEntry(format string, e *model.FolderEntry, num int) string {
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(format) {
			break
		}
		flags := ""
		for i < len(format) && (format[i] == '-' || format[i] == '.' ||
			(format[i] >= '0' && format[i] <= '9')) {
			flags += string(format[i])
			i++
		}
		if i >= len(format) {
			break
		}
		verb := format[i]
		if verb == '%' {
			out.WriteByte('%')
			continue
		}
		out.WriteString(fmt.Sprintf("%"+flags+"s", expand(verb, e, num)))
	}
	return out.String()
}

func expand(verb byte, e *model.FolderEntry, num int) string {
	switch verb {
	case 'C':
		return strconv.Itoa(num)
	case 'd':
		return formatMtime(e.Mtime())
	case 'f':
		return e.Name + entrySuffix(e)
	case 'F':
		if e.Local == nil {
			return ""
		}
		return permString(e.Local.Mode)
	case 'g':
		if e.Local == nil {
			return ""
		}
		return groupName(e.Local.GID)
	case 'i':
		return e.Display()
	case 'l':
		if e.Local == nil {
			return ""
		}
		return strconv.Itoa(int(e.Local.Nlink))
	case 'm':
		if e.Mailbox == nil {
			return ""
		}
		return strconv.Itoa(e.Mailbox.MsgCount)
	case 'n':
		if e.Mailbox == nil {
			return ""
		}
		return strconv.Itoa(e.Mailbox.MsgUnread)
	case 'N':
		if e.Mailbox != nil && e.Mailbox.HasNew {
			return "N"
		}
		return " "
	case 's':
		return strconv.FormatInt(e.Size(), 10)
	case 't':
		if e.Tagged {
			return "*"
		}
		return " "
	case 'u':
		if e.Local == nil {
			return ""
		}
		return userName(e.Local.UID)
	case 'z':
		return humanize.Bytes(uint64(e.Size()))
	default:
		return "%" + string(verb)
	}
}

// entrySuffix picks the type glyph appended to the name.
func entrySuffix(e *model.FolderEntry) string {
	switch {
	case e.IsDir():
		return "/"
	case e.IsSymlink():
		return "@"
	case e.Local != nil && e.Local.Mode.IsRegular() && e.Local.Mode&0o111 != 0:
		return "*"
	case e.Remote != nil && e.Remote.HasChildren && e.Remote.Delim != 0:
		return string(e.Remote.Delim)
	default:
		return ""
	}
}

// formatMtime renders a listing date: time of day for the last six
// months, year otherwise.
func formatMtime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if time.Since(t) < 182*24*time.Hour {
		return t.Format("Jan 02 15:04")
	}
	return t.Format("Jan 02  2006")
}

// permString builds an ls-style mode string.
func permString(m fs.FileMode) string {
	b := []byte("----------")
	switch {
	case m.IsDir():
		b[0] = 'd'
	case m&fs.ModeSymlink != 0:
		b[0] = 'l'
	case m&fs.ModeCharDevice != 0:
		b[0] = 'c'
	case m&fs.ModeDevice != 0:
		b[0] = 'b'
	case m&fs.ModeNamedPipe != 0:
		b[0] = 'p'
	case m&fs.ModeSocket != 0:
		b[0] = 's'
	}
	perm := m.Perm()
	rwx := "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[1+i] = rwx[i]
		}
	}
	if m&fs.ModeSetuid != 0 {
		b[3] = 's'
	}
	if m&fs.ModeSetgid != 0 {
		b[6] = 's'
	}
	if m&fs.ModeSticky != 0 {
		b[9] = 't'
	}
	return string(b)
}

func userName(uid uint32) string {
	id := strconv.Itoa(int(uid))
	if u, err := user.LookupId(id); err == nil {
		return u.Username
	}
	return id
}

func groupName(gid uint32) string {
	id := strconv.Itoa(int(gid))
	if g, err := user.LookupGroupId(id); err == nil {
		return g.Name
	}
	return id
}

// Package source reads the leading bytes of ELF candidates from files, stdin or
// running processes.
package source

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"

	"github.com/raven-betanet/elfhdr/internal/elfheader"
)

// MaxHeaderSize is the number of bytes read from an input: the largest fixed ELF header
const MaxHeaderSize = elfheader.Header64Size

// Stdin is the path that selects standard input
const Stdin = "-"

var (
	// ErrNotRegular is returned for paths that are not regular files
	ErrNotRegular = errors.New("not a regular file")

	// ErrNoExecutable is returned for processes without an executable image
	ErrNoExecutable = errors.New("no executable image")
)

// Input is the raw header bytes of one file together with where they came from
type Input struct {
	Name  string // path as given, or "<stdin>"
	Bytes []byte
}

// Reader opens inputs. The zero value reads from the real filesystem and os.Stdin.
type Reader struct {
	// Stdin replaces os.Stdin when set
	Stdin io.Reader

	// ProcRoot replaces the procfs mount point when set
	ProcRoot string
}

// NewReader creates a new reader for the real filesystem
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile reads the header bytes of path. A short file is not an error here;
// the decoder decides what is missing.
func (r *Reader) ReadFile(path string) (*Input, error) {
	if path == Stdin {
		in := r.Stdin
		if in == nil {
			in = os.Stdin
		}
		buf, err := readHeader(in)
		if err != nil {
			return nil, errors.Wrap(err, "read <stdin>")
		}
		return &Input{Name: "<stdin>", Bytes: buf}, nil
	}

	return readRegular(path, path)
}

// ReadPID reads the header bytes of the executable a running process was
// started from. The image is read through /proc/<pid>/exe so executables that
// were replaced or deleted after launch still decode; the link target is kept
// as the input name.
func (r *Reader) ReadPID(pid int) (*Input, error) {
	name, err := r.ExecutablePath(pid)
	if err != nil {
		return nil, err
	}
	return readRegular(filepath.Join(r.procRoot(), strconv.Itoa(pid), "exe"), name)
}

// ExecutablePath resolves /proc/<pid>/exe
func (r *Reader) ExecutablePath(pid int) (string, error) {
	fs, err := r.procFS()
	if err != nil {
		return "", errors.Wrap(err, "open procfs")
	}
	p, err := fs.Proc(pid)
	if err != nil {
		return "", errors.Wrapf(err, "process %d", pid)
	}
	exe, err := p.Executable()
	if err != nil {
		return "", errors.Wrapf(err, "executable of process %d", pid)
	}
	// kernel threads and zombies have no exe link
	if exe == "" {
		return "", errors.Wrapf(ErrNoExecutable, "process %d", pid)
	}
	return exe, nil
}

func (r *Reader) procRoot() string {
	if r.ProcRoot != "" {
		return r.ProcRoot
	}
	return procfs.DefaultMountPoint
}

func (r *Reader) procFS() (procfs.FS, error) {
	return procfs.NewFS(r.procRoot())
}

// readRegular reads the header bytes of the regular file at path. File errors
// already name the path, so they only gain a stack.
func readRegular(path, name string) (*Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrNotRegular, "%s (%s)", name, info.Mode().Type())
	}

	buf, err := readHeader(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Input{Name: name, Bytes: buf}, nil
}

// readHeader reads up to MaxHeaderSize bytes
func readHeader(in io.Reader) ([]byte, error) {
	buf := make([]byte, MaxHeaderSize)
	n, err := io.ReadFull(in, buf)
	switch {
	case err == nil, errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return buf[:n], nil
	default:
		return nil, err
	}
}

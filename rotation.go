// rotation.go: Numbered slot ring, startup resume scan and file operations
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// FileSystem interface for cross-platform abstraction
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (LogFile, error)
	Stat(name string) (os.FileInfo, error)
}

// LogFile is an open slot file.
type LogFile interface {
	io.WriteCloser
	Stat() (os.FileInfo, error)
}

// DefaultFileSystem implements FileSystem using standard os package
type DefaultFileSystem struct{}

func (DefaultFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (DefaultFileSystem) OpenFile(name string, flag int, perm os.FileMode) (LogFile, error) {
	return os.OpenFile(name, flag, perm) // #nosec G304 -- name is built from the configured folder and sanitized base name
}

func (DefaultFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// holdLocks reports whether the active slot keeps an advisory lock while open.
// Windows file locks are mandatory and would block the sink's own writes.
var holdLocks = runtime.GOOS != "windows"

// rotationManager owns the slot ring. It is used by exactly one goroutine:
// New during construction, then the sink writer.
type rotationManager struct {
	fs         FileSystem
	folder     string
	base       string
	maxBytes   int64
	maxCount   int
	fileMode   os.FileMode
	retryCount int
	retryDelay time.Duration
	report     func(operation string, err error)

	file    LogFile
	lock    *flock.Flock
	index   int
	path    string
	size    int64
	scanned bool
}

func newRotationManager(cfg Config, report func(operation string, err error)) *rotationManager {
	fsys := cfg.FileSystem
	if fsys == nil {
		fsys = DefaultFileSystem{}
	}
	return &rotationManager{
		report:     report,
		fs:         fsys,
		folder:     cfg.Folder,
		base:       SanitizeName(cfg.Name),
		maxBytes:   cfg.MaxBytes,
		maxCount:   cfg.MaxCount,
		fileMode:   cfg.FileMode,
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
	}
}

// slotPath returns "{folder}/{base}_{index}.log".
func (m *rotationManager) slotPath(index int) string {
	return filepath.Join(m.folder, m.base+"_"+strconv.Itoa(index)+".log")
}

// createLogDirectory creates the log folder if needed
func (m *rotationManager) createLogDirectory() error {
	err := RetryFileOperation(func() error {
		return m.fs.MkdirAll(m.folder, 0750)
	}, m.retryCount, m.retryDelay)
	if err != nil {
		return errors.Wrapf(err, "create log directory %q", m.folder)
	}
	return nil
}

// next picks the slot to open. The first call runs the resume scan; every
// later call advances round-robin and always truncates.
func (m *rotationManager) next() (index int, truncate bool) {
	if !m.scanned {
		m.scanned = true
		return m.resumeScan()
	}
	return (m.index + 1) % m.maxCount, true
}

// resumeScan claims the first missing slot, or else the first slot that is
// below maxBytes and not in use. With every slot full or busy it falls back
// to truncating slot 0.
func (m *rotationManager) resumeScan() (int, bool) {
	for i := 0; i < m.maxCount; i++ {
		path := m.slotPath(i)
		info, err := m.fs.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return i, false
		}
		if err != nil {
			continue
		}
		if info.Size() < m.maxBytes && !fileInUse(path) {
			return i, false
		}
	}
	return 0, true
}

// fileInUse reports whether another handle holds an exclusive lock on path.
// Best effort: two processes can still race between this check and the open.
func fileInUse(path string) bool {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return true
	}
	if !locked {
		return true
	}
	_ = lock.Unlock()
	return false
}

// roll opens the next slot and closes the previous one.
// On failure the previous file stays active.
func (m *rotationManager) roll() error {
	index, truncate := m.next()
	return m.claim(index, truncate)
}

// claim opens slot index for appending, truncating it first when asked.
func (m *rotationManager) claim(index int, truncate bool) error {
	path := m.slotPath(index)
	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flag |= os.O_TRUNC
	}

	var file LogFile
	err := RetryFileOperation(func() error {
		var err error
		file, err = m.fs.OpenFile(path, flag, m.fileMode)
		return err
	}, m.retryCount, m.retryDelay)
	if err != nil {
		return errors.Wrapf(err, "open log file %q", path)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "stat log file %q", path)
	}

	if err := m.release(); err != nil {
		m.report(opClose, err)
	}

	m.file = file
	m.index = index
	m.path = path
	m.size = info.Size()
	if holdLocks {
		lock := flock.New(path)
		if ok, lockErr := lock.TryLock(); lockErr == nil && ok {
			m.lock = lock
		}
	}
	return nil
}

// full reports whether the active slot reached maxBytes.
func (m *rotationManager) full() bool {
	return m.size >= m.maxBytes
}

func (m *rotationManager) writeString(text string) (int, error) {
	if m.file == nil {
		return 0, errors.New("no active log file")
	}
	n, err := io.WriteString(m.file, text)
	m.size += int64(n)
	return n, err
}

// release closes the active file and drops its lock.
func (m *rotationManager) release() error {
	if m.lock != nil {
		_ = m.lock.Unlock()
		m.lock = nil
	}
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	if err != nil {
		return errors.Wrapf(err, "close log file %q", m.path)
	}
	return nil
}

package runtime

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aretw0/rsflow/pkg/domain"
)

// signature hashes the rendered command and the signatures of the sources, in order.
func signature(command string, sources []string, sigs map[string]string) string {
	h := sha256.New()
	h.Write([]byte(command))
	for _, s := range sources {
		h.Write([]byte{0})
		h.Write([]byte(s))
		h.Write([]byte{'='})
		h.Write([]byte(sigs[s]))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// inputSignature fingerprints an external input by name, size and mtime.
// A missing input gets a stable marker so the build itself reports the failure.
func (e *Executor) inputSignature(name string) (string, error) {
	info, err := os.Stat(e.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "missing:" + name, nil
		}
		return "", fmt.Errorf("stat input %q: %w", name, err)
	}
	return name + ":" + strconv.FormatInt(info.Size(), 10) + ":" + strconv.FormatInt(info.ModTime().UnixNano(), 10), nil
}

func (e *Executor) path(name string) string {
	return filepath.Join(e.workDir, e.shell.FileName(name))
}

func (e *Executor) outputExists(name string) bool {
	_, err := os.Stat(e.path(name))
	return err == nil
}

// upToDate compares sig against the stored record.
func (e *Executor) upToDate(ctx context.Context, name, sig string) (bool, error) {
	if e.store == nil {
		return false, nil
	}
	rec, err := e.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load record %q: %w", name, err)
	}
	return rec.Signature == sig && e.outputExists(name), nil
}

// discard removes the output and record of a failed build.
func (e *Executor) discard(ctx context.Context, name string) {
	if err := os.Remove(e.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("failed to remove output", "artifact", name, "error", err)
	}
	if e.store == nil {
		return
	}
	if err := e.store.Delete(ctx, name); err != nil {
		e.logger.Warn("failed to delete record", "artifact", name, "error", err)
	}
}

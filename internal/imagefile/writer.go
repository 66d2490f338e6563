package imagefile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-gradient/internal/netpbm"
	"github.com/ironsheep/image-gradient/internal/raster"
)

// Output is one image to be written by WriteAll.
type Output struct {
	Path   string
	Image  *raster.Image
	Format netpbm.Format
}

// WriteError reports the output that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteAll writes every output or none of them.
//
// Outputs are encoded and staged concurrently, then renamed into place in
// order. On failure all staged temporary files and all already-renamed
// outputs are removed and a *WriteError naming the failing path is returned.
// Cancelling ctx before the rename phase aborts the write.
func WriteAll(ctx context.Context, outputs []Output) error {
	if len(outputs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		clean := filepath.Clean(out.Path)
		if seen[clean] {
			return &WriteError{Path: out.Path, Err: errors.New("duplicate output path")}
		}
		seen[clean] = true
	}

	staged := make([]string, len(outputs))
	defer func() {
		for _, tmp := range staged {
			if tmp != "" {
				_ = os.Remove(tmp)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i, out := range outputs {
		i, out := i, out
		g.Go(func() error {
			tmp, err := stage(gctx, out)
			if err != nil {
				return &WriteError{Path: out.Path, Err: err}
			}
			staged[i] = tmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &WriteError{Path: outputs[0].Path, Err: err}
	}

	committed := make([]string, 0, len(outputs))
	rollback := func() {
		for _, p := range committed {
			_ = os.Remove(p)
		}
	}
	for i, out := range outputs {
		if err := os.Rename(staged[i], out.Path); err != nil {
			rollback()
			return &WriteError{Path: out.Path, Err: err}
		}
		staged[i] = ""
		committed = append(committed, out.Path)
	}

	synced := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		dir := filepath.Dir(out.Path)
		if synced[dir] {
			continue
		}
		synced[dir] = true
		if err := fsyncDir(dir); err != nil {
			rollback()
			return &WriteError{Path: out.Path, Err: err}
		}
	}
	return nil
}

// stage encodes out into a synced temporary file in the destination
// directory and returns the temporary file's name.
func stage(ctx context.Context, out Output) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := netpbm.Marshal(out.Image, out.Format)
	if err != nil {
		return "", err
	}
	if IsCompressed(out.Path) {
		data, err = compress(data)
		if err != nil {
			return "", fmt.Errorf("failed to compress: %w", err)
		}
	}

	dir := filepath.Dir(out.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(out.Path)+".tmp.*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	committed = true
	return tmpName, nil
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

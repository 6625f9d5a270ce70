package ops

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
)

// ExportSchemaVersion is written into every export header.
const ExportSchemaVersion = "1"

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: <exports dir>/journal-<timestamp>.jsonl
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the first line of a JSONL export.
type ExportHeader struct {
	SelahExport   bool   `json:"_selah_export"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    int64  `json:"exported_at"`
}

// Export writes every journal entry to a JSONL file. The file is written to
// a temp name and renamed into place, so an existing export survives a
// failed run.
func Export(ctx context.Context, env *Env, input ExportInput) (*ExportOutput, error) {
	now := env.Clock()

	exportPath := input.Path
	if exportPath == "" {
		exportPath = filepath.Join(env.Config.ExportsDir(),
			fmt.Sprintf("journal-%s.jsonl", now.Format("2006-01-02T150405")))
	}
	if err := ValidatePath(exportPath, PathCheckWrite, env.Config); err != nil {
		return nil, err
	}

	entries, err := env.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := createNoFollow(tempPath)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	w := bufio.NewWriter(file)
	header, err := json.Marshal(ExportHeader{
		SelahExport:   true,
		SchemaVersion: ExportSchemaVersion,
		ExportedAt:    now.Unix(),
	})
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := writeLine(w, header); err != nil {
		return nil, err
	}

	for i := range entries {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		line, err := journal.EncodeEntry(&entries[i])
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := writeLine(w, line); err != nil {
			return nil, err
		}
	}

	if err := w.Flush(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlinked destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("export path is a symlink")
	}

	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Count:      len(entries),
		ExportedAt: now.Unix(),
	}, nil
}

func writeLine(w *bufio.Writer, line []byte) error {
	if _, err := w.Write(line); err != nil {
		return errors.NewInternal(err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

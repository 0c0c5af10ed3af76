package export

import (
	"fmt"
	"os"
	"path/filepath"

	"vibmerge/internal/mode"
)

// WriteError wraps a failure at the presentation boundary. The underlying
// cause is surfaced verbatim via Unwrap; errors.Is(err, mode.ErrExportWrite)
// identifies the stage.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s: %v", mode.ErrExportWrite.Error(), e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == mode.ErrExportWrite }

// Render encodes the table in the given format without touching the
// filesystem.
func Render(t mode.SummaryTable, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(t), nil
	case FormatSpreadsheet:
		return renderSpreadsheet(t)
	case FormatCustomMarkup:
		return renderMarkup(t), nil
	default:
		return nil, fmt.Errorf("invalid export format %q", format)
	}
}

// Export renders the table and writes it to path atomically: a failed write
// never leaves a completed-looking partial file behind.
func Export(t mode.SummaryTable, format Format, path string) error {
	data, err := Render(t, format)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// writeFileAtomic writes via a temp file and rename.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

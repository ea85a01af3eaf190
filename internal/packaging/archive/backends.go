package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/prefs"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/util"
)

// lastDirKey remembers the directory of the most recent directory-backend
// write. Convenience only, never correctness-bearing.
const lastDirKey = "last_export_dir"

// SavePathBackend writes the whole archive to an exact path chosen by the
// caller, the headless equivalent of a native save dialog. It is available
// only when a path was supplied.
type SavePathBackend struct {
	Path string
}

func (b *SavePathBackend) Name() string { return "save_path" }

func (b *SavePathBackend) Available(ctx context.Context) bool {
	return strings.TrimSpace(b.Path) != ""
}

func (b *SavePathBackend) Persist(ctx context.Context, m Manifest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, ErrCancelled
	}
	data, err := BuildZip(m)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return Result{}, fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(b.Path, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write archive: %w", err)
	}
	return Result{Status: StatusSaved, Method: b.Name(), Location: b.Path, Entries: m.Len()}, nil
}

// DirectoryBackend writes each manifest entry as an individual file inside a
// per-package folder under the target directory. The directory may come from
// configuration or from the remembered last-used directory.
type DirectoryBackend struct {
	Dir   string
	Prefs prefs.Store
}

func (b *DirectoryBackend) Name() string { return "directory" }

func (b *DirectoryBackend) Available(ctx context.Context) bool {
	return b.targetDir() != ""
}

func (b *DirectoryBackend) Persist(ctx context.Context, m Manifest) (Result, error) {
	dir := b.targetDir()
	folder := filepath.Join(dir, strings.TrimSuffix(m.Name, ".zip"))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return Result{}, fmt.Errorf("mkdir %s: %w", folder, err)
	}
	for _, entry := range m.Entries {
		if err := ctx.Err(); err != nil {
			// Abort cleanly: remove the partial folder so a cancelled
			// persist leaves nothing behind.
			_ = os.RemoveAll(folder)
			return Result{}, ErrCancelled
		}
		name := util.SanitizeEntryName(entry.Name)
		if err := os.WriteFile(filepath.Join(folder, name), entry.Bytes, 0o644); err != nil {
			_ = os.RemoveAll(folder)
			return Result{}, fmt.Errorf("write %s: %w", name, err)
		}
	}
	if b.Prefs != nil {
		_ = b.Prefs.Set(lastDirKey, dir)
	}
	return Result{Status: StatusSaved, Method: b.Name(), Location: folder, Entries: m.Len()}, nil
}

func (b *DirectoryBackend) targetDir() string {
	if strings.TrimSpace(b.Dir) != "" {
		return b.Dir
	}
	if b.Prefs != nil {
		if dir, ok := b.Prefs.Get(lastDirKey); ok && strings.TrimSpace(dir) != "" {
			return dir
		}
	}
	return ""
}

// DownloadBackend drops a single compressed archive into a downloads
// directory, mirroring an anonymous link-click download.
type DownloadBackend struct {
	Dir string
}

func (b *DownloadBackend) Name() string { return "download" }

func (b *DownloadBackend) Available(ctx context.Context) bool {
	return strings.TrimSpace(b.Dir) != ""
}

func (b *DownloadBackend) Persist(ctx context.Context, m Manifest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, ErrCancelled
	}
	data, err := BuildZip(m)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("mkdir: %w", err)
	}
	target := filepath.Join(b.Dir, submissionName(m.Name))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write archive: %w", err)
	}
	return Result{Status: StatusSaved, Method: b.Name(), Location: target, Entries: m.Len()}, nil
}

// submissionName renames the package container for the plain download drop.
// The curated archive keeps the _Documents suffix; the download fallback is
// branded as a submission bundle.
func submissionName(name string) string {
	if base, ok := strings.CutSuffix(name, "_Documents.zip"); ok {
		return base + "_Submission.zip"
	}
	return name
}

// ManifestTextBackend is the last resort when compression is unavailable: a
// plain-text listing of the package contents with hand-off instructions.
type ManifestTextBackend struct {
	Dir string
}

func (b *ManifestTextBackend) Name() string { return "manifest_text" }

func (b *ManifestTextBackend) Available(ctx context.Context) bool {
	return strings.TrimSpace(b.Dir) != ""
}

func (b *ManifestTextBackend) Persist(ctx context.Context, m Manifest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, ErrCancelled
	}
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("mkdir: %w", err)
	}
	target := filepath.Join(b.Dir, strings.TrimSuffix(m.Name, ".zip")+"_Manifest.txt")
	if err := os.WriteFile(target, []byte(ManifestText(m)), 0o644); err != nil {
		return Result{}, fmt.Errorf("write manifest: %w", err)
	}
	return Result{Status: StatusSaved, Method: b.Name(), Location: target, Entries: m.Len()}, nil
}

// ManifestText renders the plain-text projection of a manifest.
func ManifestText(m Manifest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Submission package: %s\n", m.Name)
	fmt.Fprintf(&sb, "Entries: %d\n\n", m.Len())
	for _, entry := range m.Entries {
		fmt.Fprintf(&sb, "  %s (%d bytes)\n", entry.Name, len(entry.Bytes))
	}
	sb.WriteString("\nArchiving was unavailable in this environment.\n")
	sb.WriteString("Collect the files listed above and deliver them to the reviewing authority in this order.\n")
	return sb.String()
}

// Package files manages the Receitanet download folder and moves the
// downloaded SPED files to their destination.
package files

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Kind selects how downloaded files are picked.
type Kind int

const (
	// KindAll moves every downloaded file.
	KindAll Kind = iota
	// KindContribuicoes keeps the latest transmission per period, names split on "_".
	KindContribuicoes
	// KindECF keeps the latest transmission per period, names split on "-".
	KindECF
)

// KindFor maps a system name to the way its files are handled.
func KindFor(system string) Kind {
	switch {
	case strings.Contains(system, "Contribuições"):
		return KindContribuicoes
	case strings.Contains(system, "ECF"):
		return KindECF
	default:
		return KindAll
	}
}

const timestampLayout = "20060102150405"

// Transmission is a parsed SPED file name.
type Transmission struct {
	Path   string
	Period string // MM/YYYY
	SentAt time.Time
}

// ParseName extracts period and transmission time from a file name.
func ParseName(name string, kind Kind) (Transmission, error) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	var period, stamp string
	switch kind {
	case KindContribuicoes:
		itens := strings.Split(stem, "_")
		if len(itens) < 6 {
			return Transmission{}, fmt.Errorf("%s: expected 6 fields separated by _", name)
		}
		period, stamp = itens[1], itens[5]
	case KindECF:
		itens := strings.Split(stem, "-")
		if len(itens) < 5 {
			return Transmission{}, fmt.Errorf("%s: expected 5 fields separated by -", name)
		}
		period, stamp = itens[3], itens[4]
	default:
		return Transmission{}, fmt.Errorf("%s: kind has no naming scheme", name)
	}

	if len(period) < 6 || len(stamp) < 14 {
		return Transmission{}, fmt.Errorf("%s: short period or timestamp", name)
	}
	sentAt, err := time.Parse(timestampLayout, stamp[:14])
	if err != nil {
		return Transmission{}, fmt.Errorf("%s: timestamp: %w", name, err)
	}
	return Transmission{
		Path:   name,
		Period: period[4:6] + "/" + period[:4],
		SentAt: sentAt,
	}, nil
}

// LatestPerPeriod walks dir for *.txt files and keeps the most recent
// transmission of each period. Names that do not parse are skipped.
func LatestPerPeriod(dir string, kind Kind, log logrus.FieldLogger) (map[string]Transmission, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	latest := make(map[string]Transmission)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		tr, err := ParseName(path, kind)
		if err != nil {
			log.WithError(err).Warn("Skipping file with unexpected name")
			return nil
		}
		if cur, ok := latest[tr.Period]; !ok || tr.SentAt.After(cur.SentAt) {
			latest[tr.Period] = tr
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return latest, nil
}

// ClearDir deletes everything inside dir, creating it when missing.
func ClearDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}

// rename is replaced in tests to simulate cross-volume moves.
var rename = os.Rename

// MoveFile moves src to dst, replacing an existing file. It falls back to
// copy and delete only when src and dst are on different volumes.
func MoveFile(src, dst string) error {
	if info, err := os.Stat(dst); err == nil && !info.IsDir() {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("replacing %s: %w", dst, err)
		}
	}
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !crossDevice(err) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("moving %s: %w", src, err)
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Organizer moves finished downloads into OutputDir/<cnpj>/<system>.
type Organizer struct {
	DocsDir   string
	OutputDir string
	Log       logrus.FieldLogger
}

// Organize moves the files relevant to system and returns their new paths.
func (o Organizer) Organize(cnpj, system string) ([]string, error) {
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	dest := filepath.Join(o.OutputDir, cnpj, system)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}

	var sources []string
	switch kind := KindFor(system); kind {
	case KindContribuicoes, KindECF:
		latest, err := LatestPerPeriod(o.DocsDir, kind, o.Log)
		if err != nil {
			return nil, err
		}
		for _, tr := range latest {
			sources = append(sources, tr.Path)
		}
	default:
		err := filepath.WalkDir(o.DocsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				sources = append(sources, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", o.DocsDir, err)
		}
	}
	sort.Strings(sources)

	moved := make([]string, 0, len(sources))
	for _, src := range sources {
		dst := filepath.Join(dest, filepath.Base(src))
		if err := MoveFile(src, dst); err != nil {
			return moved, err
		}
		moved = append(moved, dst)
	}
	o.Log.WithFields(logrus.Fields{
		"system": system,
		"files":  len(moved),
		"dest":   dest,
	}).Info("Files moved")
	return moved, nil
}

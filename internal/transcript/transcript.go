// Package transcript persists chat turns as JSON lines, one file per day.
package transcript

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stockchat/internal/types"
)

type Entry struct {
	Time    string     `json:"time"`
	ChatID  string     `json:"chat_id"`
	Role    types.Role `json:"role"`
	Content string     `json:"content"`
	Intent  string     `json:"intent,omitempty"`
	Ticker  string     `json:"ticker,omitempty"`
}

// Log appends entries under dir. A nil *Log discards everything.
type Log struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func New(dir string) *Log {
	if dir == "" {
		return nil
	}
	return &Log{dir: dir, now: time.Now}
}

func (l *Log) Dir() string {
	if l == nil {
		return ""
	}
	return l.dir
}

func (l *Log) dailyFilepath(t time.Time) string {
	return filepath.Join(l.dir, t.Format("2006-01-02")+".jsonl")
}

func (l *Log) Append(e Entry) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e.Time == "" {
		e.Time = now.Format(time.RFC3339)
	}
	p := l.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips day files last modified more than retentionDays ago
// and removes the originals.
func (l *Log) CompressOlder(retentionDays int) error {
	if l == nil || retentionDays <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().AddDate(0, 0, -retentionDays)
	var errs []error
	walkErr := filepath.WalkDir(l.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if fi, err := os.Stat(gz); err != nil || !fi.Mode().IsRegular() {
			if err := gzipFile(p, gz); err != nil {
				errs = append(errs, fmt.Errorf("compress %s: %w", d.Name(), err))
				return nil
			}
		}
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return errors.Join(errs...)
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

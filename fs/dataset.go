// Package fs provides file-based access to an arranged dataset and to
// report directories.
package fs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/spancheck"
)

// Ensure Dataset implements spancheck.Dataset at compile time.
var _ spancheck.Dataset = (*Dataset)(nil)

// Dataset reads an arranged dataset directory:
//
//	annotation/<category>_dist.json   one annotation record per line
//	HTML/<category>/<page id>.html    markup rendition
//	PLAIN/<category>/<page id>.txt    plain-text rendition
type Dataset struct {
	dir string
}

// NewDataset creates a new Dataset rooted at dir.
func NewDataset(dir string) *Dataset {
	return &Dataset{dir: dir}
}

// Dir returns the dataset root directory.
func (d *Dataset) Dir() string {
	return d.dir
}

// AnnotationPath returns the path of the annotation file of a category.
func (d *Dataset) AnnotationPath(category string) string {
	return filepath.Join(d.dir, "annotation", category+"_dist.json")
}

// PagePath returns the path of a page rendition.
func (d *Dataset) PagePath(category string, pageID int, view spancheck.View) string {
	dir, ext := viewLayout(view)
	return filepath.Join(d.dir, dir, category, strconv.Itoa(pageID)+ext)
}

func viewLayout(view spancheck.View) (dir, ext string) {
	if view == spancheck.ViewText {
		return "PLAIN", ".txt"
	}
	return "HTML", ".html"
}

// annotationRecord is one line of an annotation file. page_id is written
// as a string in some releases and as a number in others.
type annotationRecord struct {
	PageID     json.RawMessage   `json:"page_id"`
	Title      string            `json:"title"`
	ENE        string            `json:"ene"`
	Attribute  string            `json:"attribute"`
	HTMLOffset *spancheck.Offset `json:"html_offset"`
	TextOffset *spancheck.Offset `json:"text_offset"`
}

// FindAnnotations reads the annotation file of a category. The ID of each
// annotation is its zero-based line number.
func (d *Dataset) FindAnnotations(ctx context.Context, category string) (spancheck.PageAnnotations, error) {
	path := d.AnnotationPath(category)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, spancheck.Errorf(spancheck.ENOTFOUND, "annotation file not found: %q", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	annotations := make(spancheck.PageAnnotations)
	r := bufio.NewReader(f)
	for id := 0; ; id++ {
		line, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(bytes.TrimSpace(line)) > 0 {
			a, perr := parseAnnotation(id, line)
			if perr != nil {
				return nil, spancheck.Errorf(spancheck.EINVALID, "%s line %d: %s", path, id+1, perr)
			}
			annotations[a.PageID] = append(annotations[a.PageID], a)
		}
		if err == io.EOF {
			break
		}
		if id%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return annotations, nil
}

func parseAnnotation(id int, line []byte) (*spancheck.Annotation, error) {
	var rec annotationRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, err
	}
	pageID, err := parsePageID(rec.PageID)
	if err != nil {
		return nil, err
	}
	a := &spancheck.Annotation{
		ID:         id,
		PageID:     pageID,
		Title:      rec.Title,
		ENE:        rec.ENE,
		Attribute:  rec.Attribute,
		HTMLOffset: rec.HTMLOffset,
		TextOffset: rec.TextOffset,
	}
	if err := a.Validate(); err != nil {
		return nil, errors.New(spancheck.ErrorMessage(err))
	}
	return a, nil
}

func parsePageID(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("page_id required")
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
	} else {
		s = string(raw)
	}
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("invalid page_id " + string(raw))
	}
	return id, nil
}

// FindPageIDs lists the pages that have a markup or a plain-text
// rendition. Files whose name is not a page ID are ignored.
// Returns ENOTFOUND if the category has neither rendition directory.
func (d *Dataset) FindPageIDs(ctx context.Context, category string) ([]int, error) {
	seen := make(map[int]bool)
	var found bool
	for _, view := range spancheck.Views {
		dir, ext := viewLayout(view)
		entries, err := os.ReadDir(filepath.Join(d.dir, dir, category))
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		found = true
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ext) {
				continue
			}
			id, err := strconv.Atoi(strings.TrimSuffix(name, ext))
			if err != nil {
				continue
			}
			seen[id] = true
		}
	}
	if !found {
		return nil, spancheck.Errorf(spancheck.ENOTFOUND, "no pages found for category %q", category)
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, ctx.Err()
}

// ReadPage reads a page rendition as UTF-8 and translates "\r\n" and "\r"
// line endings to "\n".
func (d *Dataset) ReadPage(ctx context.Context, category string, pageID int, view spancheck.View) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := d.PagePath(category, pageID, view)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", spancheck.Errorf(spancheck.ENOTFOUND, "%s file not found: %q", view, path)
	} else if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", spancheck.Errorf(spancheck.EINVALID, "%s file is not valid UTF-8: %q", view, path)
	}
	return NormalizeNewlines(string(data)), nil
}

// PageSize returns the size in bytes of a page rendition.
func (d *Dataset) PageSize(ctx context.Context, category string, pageID int, view spancheck.View) (int64, error) {
	path := d.PagePath(category, pageID, view)
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, spancheck.Errorf(spancheck.ENOTFOUND, "%s file not found: %q", view, path)
	} else if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// NormalizeNewlines translates "\r\n" and lone "\r" to "\n".
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

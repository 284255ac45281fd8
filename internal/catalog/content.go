package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

const (
	catalogFile = "catalog.yaml"
	postsDir    = "posts"
)

var (
	ErrMissingFrontMatter = errors.New("post is missing front matter")
	ErrMissingPostID      = errors.New("post front matter has no id")
)

// Snapshot is one consistent read of the content tree.
type Snapshot struct {
	Courses []domain.Course
	Posts   []domain.BlogPost
	Career  []domain.CareerItem
}

type catalogDocument struct {
	Courses []domain.Course     `yaml:"courses"`
	Career  []domain.CareerItem `yaml:"career"`
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Load reads catalog.yaml and every posts/*.md file from fsys. A missing posts
// directory yields no posts; a missing catalog.yaml is an error.
func Load(fsys afero.Fs) (Snapshot, error) {
	var snap Snapshot

	data, err := afero.ReadFile(fsys, catalogFile)
	if err != nil {
		return snap, fmt.Errorf("read %s: %w", catalogFile, err)
	}
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return snap, fmt.Errorf("parse %s: %w", catalogFile, err)
	}
	snap.Courses = doc.Courses
	snap.Career = doc.Career

	entries, err := afero.ReadDir(fsys, postsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, nil
		}
		return snap, fmt.Errorf("read %s: %w", postsDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		name := path.Join(postsDir, entry.Name())
		raw, err := afero.ReadFile(fsys, name)
		if err != nil {
			return snap, fmt.Errorf("read %s: %w", name, err)
		}
		post, err := ParsePost(raw)
		if err != nil {
			return snap, fmt.Errorf("parse %s: %w", name, err)
		}
		snap.Posts = append(snap.Posts, post)
	}

	sort.SliceStable(snap.Posts, func(i, j int) bool {
		return snap.Posts[i].ID < snap.Posts[j].ID
	})
	return snap, nil
}

// ParsePost splits a markdown file into YAML front matter and body, and
// renders the body to HTML.
func ParsePost(raw []byte) (domain.BlogPost, error) {
	var post domain.BlogPost

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return post, ErrMissingFrontMatter
	}
	meta, body, ok := strings.Cut(text[len("---\n"):], "\n---")
	if !ok {
		return post, ErrMissingFrontMatter
	}
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(meta), &post); err != nil {
		return post, fmt.Errorf("front matter: %w", err)
	}
	if post.ID == "" {
		return post, ErrMissingPostID
	}

	post.Content = strings.TrimSpace(body)
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(post.Content), &buf); err != nil {
		return post, fmt.Errorf("render markdown: %w", err)
	}
	post.HTML = buf.String()
	return post, nil
}

package docs

import (
	"fmt"
	"html"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"parksync-service/templates"
)

const cacheTTL = 60 * time.Second

// ReadmeService serves the repository README over HTTP, re-reading the file
// at most once per TTL.
type ReadmeService struct {
	path string

	mu       sync.Mutex
	markdown string
	html     string
	lastRead time.Time
}

// NewReadmeService creates a readme service for the given file path.
func NewReadmeService(path string) *ReadmeService {
	return &ReadmeService{path: path}
}

// Markdown returns the raw readme content.
func (s *ReadmeService) Markdown() (string, error) {
	if err := s.refresh(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markdown, nil
}

// HTML returns the readme rendered into the HTML page shell.
func (s *ReadmeService) HTML() (string, error) {
	if err := s.refresh(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html, nil
}

func (s *ReadmeService) refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.markdown != "" && time.Since(s.lastRead) < cacheTTL {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return errors.Wrapf(err, "read readme at %s", s.path)
	}

	s.markdown = string(raw)
	s.html = fmt.Sprintf(templates.ReadmePage, renderBody(s.markdown))
	s.lastRead = time.Now()
	return nil
}

// renderBody does just enough markdown to keep the page readable: escape
// everything, then turn line breaks into <br>.
func renderBody(md string) string {
	escaped := html.EscapeString(md)
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}

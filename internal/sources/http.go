package sources

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/template"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"github.com/NikitaCOEUR/mycli/pkg/version"
	"github.com/itchyny/gojq"
)

const (
	// MaxResponseSize is the maximum size of a suggest response (1MB)
	MaxResponseSize = 1 * 1024 * 1024

	// FormatXML reads <suggestion data="..."/> elements (Google toolbar output)
	FormatXML = "xml"
	// FormatJSON runs a jq query over the decoded body
	FormatJSON = "json"
	// FormatLines reads one candidate per non-empty line
	FormatLines = "lines"

	defaultJSONQuery = ".[]"
)

// HTTPConfig describes a suggest endpoint
type HTTPConfig struct {
	URL       string            // URL template, e.g. https://google.com/complete/search?q={{ .Word | urlquery }}&output=toolbar
	Format    string            // xml, json or lines
	Query     string            // jq query for json, defaults to .[]
	Headers   map[string]string // extra request headers
	SkipEmpty bool              // no request while the word is empty
	Quote     bool              // double-quote candidates containing spaces
}

// HTTPSource fetches candidates from a suggest endpoint
type HTTPSource struct {
	url       *template.Template
	format    string
	query     *gojq.Code
	headers   map[string]string
	skipEmpty bool
	quote     bool
	client    *http.Client
	maxSize   int64
}

// HTTPOption configures an HTTPSource
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// NewHTTP compiles cfg into a source
func NewHTTP(cfg HTTPConfig, opts ...HTTPOption) (*HTTPSource, error) {
	if cfg.URL == "" {
		return nil, derrors.NewValidationError("http.url", "suggest URL is empty", nil)
	}

	tmpl, err := parseTemplate("url", cfg.URL)
	if err != nil {
		return nil, derrors.NewValidationError("http.url", "invalid URL template", err)
	}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = FormatJSON
	}

	s := &HTTPSource{
		url:       tmpl,
		format:    format,
		headers:   cfg.Headers,
		skipEmpty: cfg.SkipEmpty,
		quote:     cfg.Quote,
		client:    http.DefaultClient,
		maxSize:   MaxResponseSize,
	}

	switch format {
	case FormatXML, FormatLines:
	case FormatJSON:
		expression := cfg.Query
		if expression == "" {
			expression = defaultJSONQuery
		}
		s.query, err = compileQuery(expression)
		if err != nil {
			return nil, derrors.NewValidationError("http.query", "invalid jq query", err)
		}
	default:
		return nil, derrors.NewValidationError("http.format", fmt.Sprintf("unsupported response format: %s", cfg.Format), nil)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// errNoRequest reports a word for which no request is made
var errNoRequest = errors.New("no request for an empty word")

// Request returns the URL that Candidates fetches for word
func (s *HTTPSource) Request(word string) (string, error) {
	if s.skipEmpty && word == "" {
		return "", errNoRequest
	}
	return render(s.url, word)
}

// Candidates requests the endpoint for word
func (s *HTTPSource) Candidates(ctx context.Context, word string) ([]string, error) {
	rawURL, err := s.Request(word)
	if errors.Is(err, errNoRequest) {
		return []string{}, nil
	}
	if err != nil {
		return nil, derrors.NewSourceError("http", "failed to render URL", err)
	}
	if err := validateURL(rawURL); err != nil {
		return nil, derrors.NewSourceError("http", "invalid suggest URL", err)
	}

	body, err := s.get(ctx, rawURL)
	if err != nil {
		return nil, derrors.NewSourceError("http", "suggest request failed", err)
	}

	var candidates []string
	switch s.format {
	case FormatXML:
		candidates, err = parseXMLSuggestions(body)
	case FormatLines:
		candidates, err = parseLines(body)
	default:
		candidates, err = runQuery(ctx, s.query, body)
	}
	if err != nil {
		return nil, derrors.NewSourceError("http", "failed to parse suggest response", err)
	}

	if s.quote {
		candidates = quote(candidates)
	}
	return candidates, nil
}

// get downloads rawURL with a size limit
func (s *HTTPSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mycli/"+version.Version)
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if resp.ContentLength > s.maxSize {
		return nil, fmt.Errorf("content too large: %d bytes (max %d)", resp.ContentLength, s.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("content too large: exceeds %d bytes", s.maxSize)
	}

	return data, nil
}

// validateURL checks that a rendered URL is absolute HTTP(S)
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use HTTP or HTTPS scheme, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

// parseXMLSuggestions collects the data attribute of every suggestion element
func parseXMLSuggestions(body []byte) ([]string, error) {
	candidates := []string{}
	decoder := xml.NewDecoder(bytes.NewReader(body))
	// Google answers in ISO-8859-1 for some locales; attribute values are kept as-is
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return candidates, nil
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "suggestion" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "data" && attr.Value != "" {
				candidates = append(candidates, attr.Value)
			}
		}
	}
}

// parseLines splits output into trimmed, non-empty lines. A line may be as
// long as the whole response.
func parseLines(output []byte) ([]string, error) {
	candidates := []string{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(MaxResponseSize, MaxOutputSize)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		candidates = append(candidates, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to split lines: %w", err)
	}

	return candidates, nil
}

func compileQuery(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}
	return code, nil
}

// runQuery decodes body as JSON and collects the scalar results of code.
// Arrays produced by the query are flattened one level.
func runQuery(ctx context.Context, code *gojq.Code, body []byte) ([]string, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	candidates := []string{}
	iter := code.RunWithContext(ctx, data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, err
		}

		if list, isList := v.([]interface{}); isList {
			for _, item := range list {
				if s, ok := scalar(item); ok {
					candidates = append(candidates, s)
				}
			}
			continue
		}
		if s, ok := scalar(v); ok {
			candidates = append(candidates, s)
		}
	}

	return candidates, nil
}

// scalar formats strings and numbers; objects, nulls and booleans are skipped
func scalar(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case float64, int:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

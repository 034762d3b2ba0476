package execute

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var languagesYAML []byte

// ErrUnsupportedLanguage is returned for language tags with no Judge0 id.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Status ids 1 (in queue) and 2 (processing) mean the submission is still
// running; anything above is terminal.
const statusProcessing = 2

type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is the Judge0 submission result relayed to the client verbatim.
type Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output,omitempty"`
	Message       string `json:"message,omitempty"`
	Status        Status `json:"status"`
	Time          string `json:"time,omitempty"`
	Memory        int    `json:"memory,omitempty"`
}

type submission struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
}

type submissionToken struct {
	Token string `json:"token"`
}

// Client submits code to the Judge0 CE API and polls for the result.
type Client struct {
	http         *http.Client
	baseURL      string
	apiKey       string
	apiHost      string
	langIDs      map[string]int
	pollInterval time.Duration
	maxPolls     int
}

func NewClient(baseURL, apiKey, apiHost string) (*Client, error) {
	var table struct {
		Languages map[string]int `yaml:"languages"`
	}
	if err := yaml.Unmarshal(languagesYAML, &table); err != nil {
		return nil, fmt.Errorf("parse embedded language table: %w", err)
	}
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		baseURL:      baseURL,
		apiKey:       apiKey,
		apiHost:      apiHost,
		langIDs:      table.Languages,
		pollInterval: time.Second,
		maxPolls:     5,
	}, nil
}

// Supported reports whether a language tag has a Judge0 id.
func (c *Client) Supported(language string) bool {
	_, ok := c.langIDs[language]
	return ok
}

// Run submits code for execution and polls until the submission leaves the
// queue or the poll limit is exhausted. Exhaustion is not an error: it
// returns a synthetic timed-out result, mirroring what clients expect.
func (c *Client) Run(ctx context.Context, language, code string) (*Result, error) {
	langID, ok := c.langIDs[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	token, err := c.submit(ctx, langID, code)
	if err != nil {
		return nil, err
	}

	for i := 0; i < c.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		result, err := c.fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		if result.Status.ID > statusProcessing {
			return result, nil
		}
	}

	return &Result{
		Status: Status{Description: "Timed Out"},
		Stderr: "Execution timed out. Your code took too long to run.",
	}, nil
}

func (c *Client) submit(ctx context.Context, langID int, code string) (string, error) {
	body, err := json.Marshal(submission{LanguageID: langID, SourceCode: code})
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&fields=*"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAPIHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("create submission: unexpected status %d", resp.StatusCode)
	}

	var token submissionToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode submission token: %w", err)
	}
	return token.Token, nil
}

func (c *Client) fetch(ctx context.Context, token string) (*Result, error) {
	url := c.baseURL + "/submissions/" + token + "?base64_encoded=false&fields=*"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build result request: %w", err)
	}
	c.setAPIHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch submission result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch submission result: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode submission result: %w", err)
	}
	return &result, nil
}

func (c *Client) setAPIHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
}

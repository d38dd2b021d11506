package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kuberdock/kcli/models"
)

// API paths, relative to the configured base URL.
const (
	podAPIPath    = "/api/podapi/"
	imagesPath    = "/api/images/"
	pstoragePath  = "/api/pstorage/"
	pricingPath   = "/api/pricing/"
	authTokenPath = "/api/auth/token"
)

const applicationJSON = "application/json"

type ClientConfig struct {
	URL      string
	User     string
	Password string
	Token    string
}

// Client talks to the KuberDock API. Responses arrive in a {status, data}
// envelope; any non-OK status is a hard failure of the operation.
type Client struct {
	baseURL string
	config  ClientConfig
	http    *retryablehttp.Client
}

func NewClient(config ClientConfig) *Client {
	if config.URL == "" {
		config.URL = "https://127.0.0.1"
	}

	h := retryablehttp.NewClient()
	h.Logger = nil

	return &Client{
		baseURL: strings.TrimRight(config.URL, "/"),
		config:  config,
		http:    h,
	}
}

// envelope is the API's response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) do(method, path string, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	query := url.Values{}
	if c.config.Token != "" {
		query.Set("token", c.config.Token)
	} else {
		query.Set("user", c.config.User)
		query.Set("password", c.config.Password)
	}
	u += "?" + query.Encode()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequest(method, u, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", applicationJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !strings.EqualFold(env.Status, "OK") {
		return nil, fmt.Errorf("request failed: %s", strings.TrimSpace(string(raw)))
	}
	return env.Data, nil
}

// ListPods returns all of the user's pods as the server sees them.
func (c *Client) ListPods() ([]models.Pod, error) {
	data, err := c.do(http.MethodGet, podAPIPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	var pods []models.Pod
	if err := json.Unmarshal(data, &pods); err != nil {
		return nil, fmt.Errorf("failed to decode pods: %w", err)
	}
	return pods, nil
}

// FindPod looks a pod up by name. A missing pod is not an error.
func (c *Client) FindPod(name string) (*models.Pod, bool, error) {
	pods, err := c.ListPods()
	if err != nil {
		return nil, false, err
	}
	for i := range pods {
		if pods[i].Name == name {
			return &pods[i], true, nil
		}
	}
	return nil, false, nil
}

// CreatePod submits a finalized draft document.
func (c *Client) CreatePod(submission any) error {
	if _, err := c.do(http.MethodPost, podAPIPath, submission); err != nil {
		return fmt.Errorf("failed to create pod: %w", err)
	}
	return nil
}

// DeletePod removes a pod by its server-side id.
func (c *Client) DeletePod(id string) error {
	if _, err := c.do(http.MethodDelete, podAPIPath+id, nil); err != nil {
		return fmt.Errorf("failed to delete pod %s: %w", id, err)
	}
	return nil
}

// PodCommand sends a lifecycle command ("start", "stop") to a pod.
func (c *Client) PodCommand(id, command string) error {
	body := map[string]string{"command": command}
	if _, err := c.do(http.MethodPut, podAPIPath+id, body); err != nil {
		return fmt.Errorf("failed to %s pod %s: %w", command, id, err)
	}
	return nil
}

// ImageMetadata asks the server to pull an image and report its exposed
// ports and volume mount paths.
func (c *Client) ImageMetadata(image string) (*models.ImageMetadata, error) {
	body := map[string]string{"image": image}
	data, err := c.do(http.MethodPost, imagesPath+"new", body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image metadata for %q: %w", image, err)
	}
	var meta models.ImageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode image metadata: %w", err)
	}
	return &meta, nil
}

// ListDrives returns the user's persistent drives.
func (c *Client) ListDrives() ([]models.Drive, error) {
	data, err := c.do(http.MethodGet, pstoragePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list drives: %w", err)
	}
	var drives []models.Drive
	if err := json.Unmarshal(data, &drives); err != nil {
		return nil, fmt.Errorf("failed to decode drives: %w", err)
	}
	return drives, nil
}

// CreateDrive provisions a new persistent drive. Calling it twice with the
// same name creates two drives; callers resolve against ListDrives first.
func (c *Client) CreateDrive(name string, size int) error {
	body := map[string]any{"name": name, "size": size}
	if _, err := c.do(http.MethodPost, pstoragePath, body); err != nil {
		return fmt.Errorf("failed to create drive %q: %w", name, err)
	}
	return nil
}

// DeleteDrive removes a drive by its server-side id.
func (c *Client) DeleteDrive(id string) error {
	if _, err := c.do(http.MethodDelete, pstoragePath+id, nil); err != nil {
		return fmt.Errorf("failed to delete drive %s: %w", id, err)
	}
	return nil
}

// KubeTypes returns the symbolic-name-to-id table from the user's package.
// Ids arrive as numbers or numeric strings depending on the server version.
func (c *Client) KubeTypes() (map[string]int, error) {
	data, err := c.do(http.MethodGet, pricingPath+"userpackage", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get kube types: %w", err)
	}
	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode kube types: %w", err)
	}
	types := make(map[string]int, len(raw))
	for name, id := range raw {
		n, err := strconv.Atoi(id.String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse kube type id %q: %w", id, err)
		}
		types[name] = n
	}
	return types, nil
}

// AuthToken fetches a fresh token for the configured user. Unlike the rest
// of the API this endpoint answers with a bare {status, token} document.
func (c *Client) AuthToken() (string, error) {
	u := c.baseURL + authTokenPath + "?" + url.Values{
		"user":     {c.config.User},
		"password": {c.config.Password},
	}.Encode()

	resp, err := c.http.Get(u)
	if err != nil {
		return "", fmt.Errorf("failed to get auth token: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode auth token response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("failed to get auth token: empty token in response")
	}
	return out.Token, nil
}

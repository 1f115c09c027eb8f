package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/smartshelf/smartshelf/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// AgentHost schedules notifications through the local smartshelf-agent. The
// agent advertises its webhook in a lockfile ("port|pid|secret") under its
// config directory; the PID is validated against a running smartshelf-agent
// process before the secret is trusted.
type AgentHost struct {
	client *http.Client

	// baseURL and secret are pinned after the first successful discovery.
	baseURL string
	secret  string
}

func NewAgentHost() *AgentHost {
	return &AgentHost{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// AgentConfigDir returns the configuration directory used by the agent.
func AgentConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AgentIdentifier), nil
}

// AgentRunning reports whether a validated agent process could be discovered.
func AgentRunning() bool {
	dir, err := AgentConfigDir()
	if err != nil {
		return false
	}
	_, _, err = findAndValidateAgent(filepath.Join(dir, constants.AgentLockfileName))
	return err == nil
}

func (a *AgentHost) discover() error {
	if a.baseURL != "" {
		return nil
	}

	dir, err := AgentConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateAgent(filepath.Join(dir, constants.AgentLockfileName))
	if err != nil {
		return err
	}

	a.baseURL = fmt.Sprintf("http://127.0.0.1:%s", port)
	a.secret = secret
	return nil
}

func findAndValidateAgent(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrAgentNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("agent lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in agent lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in agent lockfile")
	}

	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in agent lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrAgentNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.AgentIdentifier) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AgentIdentifier, process.Executable())
	}

	return port, secret, nil
}

// RequestPermission asks the agent for notification permission and, once
// granted, configures the default channel. Hosts that require a channel
// reject schedule calls until one exists.
func (a *AgentHost) RequestPermission(ctx context.Context) error {
	res, err := a.do(ctx, http.MethodPost, "/permission", nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return ErrPermissionDenied
	default:
		return readError(res)
	}

	channel := map[string]string{"name": constants.DefaultChannelName}
	res, err = a.do(ctx, http.MethodPost, "/channel", channel)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return readError(res)
	}
	return nil
}

type scheduleRequest struct {
	Request
	Repeats    bool  `json:"repeats"`
	IntervalMs int64 `json:"interval_ms,omitempty"`
}

func (a *AgentHost) ScheduleOneShot(ctx context.Context, req Request) (string, error) {
	return a.schedule(ctx, scheduleRequest{Request: req})
}

func (a *AgentHost) ScheduleRepeating(ctx context.Context, req Request, interval time.Duration) (string, error) {
	return a.schedule(ctx, scheduleRequest{
		Request:    req,
		Repeats:    true,
		IntervalMs: interval.Milliseconds(),
	})
}

func (a *AgentHost) schedule(ctx context.Context, req scheduleRequest) (string, error) {
	res, err := a.do(ctx, http.MethodPost, "/schedule", req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", readError(res)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode schedule response: %w", err)
	}
	if body.ID == "" {
		return "", errors.New("agent returned an empty notification id")
	}
	return body.ID, nil
}

// Cancel removes a registered notification. An id the agent no longer knows
// returns 404, which is treated as success.
func (a *AgentHost) Cancel(ctx context.Context, notificationID string) error {
	res, err := a.do(ctx, http.MethodDelete, "/scheduled/"+notificationID, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK || res.StatusCode == http.StatusNotFound {
		return nil
	}
	return readError(res)
}

func (a *AgentHost) ListAll(ctx context.Context) ([]Scheduled, error) {
	res, err := a.do(ctx, http.MethodGet, "/scheduled", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, readError(res)
	}

	var scheduled []Scheduled
	if err := json.NewDecoder(res.Body).Decode(&scheduled); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled notifications: %w", err)
	}
	return scheduled, nil
}

func (a *AgentHost) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	if err := a.discover(); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-SmartShelf-Secret", a.secret)

	return a.client.Do(req)
}

func readError(res *http.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("agent request failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}

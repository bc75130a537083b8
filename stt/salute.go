package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/transcript-sheet/types"
)

// Recognition options sent with every task.
const (
	AudioEncoding = "MP3"
	Language      = "ru-RU"
	Model         = "callcenter"
)

const maxErrorBody = 512

type Options struct {
	OAuthURL   string
	APIURL     string
	Scope      string
	HTTPClient *http.Client
	Logger     *logrus.Entry
}

// Client talks to the SaluteSpeech REST API. A Client holds the access token
// of a single run and must not be shared between runs.
type Client struct {
	httpClient *http.Client
	oauthURL   string
	apiURL     string
	scope      string
	log        *logrus.Entry
	token      string
}

// NewClient creates a client for a single run. Nil HTTPClient and Logger get defaults.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 2 * time.Minute}
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = logrus.NewEntry(l)
	}
	return &Client{
		httpClient: hc,
		oauthURL:   opts.OAuthURL,
		apiURL:     strings.TrimRight(opts.APIURL, "/"),
		scope:      opts.Scope,
		log:        log.WithField("module", "stt"),
	}
}

type envelope[T any] struct {
	Status int `json:"status"`
	Result T   `json:"result"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type uploadResult struct {
	RequestFileID string `json:"request_file_id"`
}

type recognitionOptions struct {
	AudioEncoding string `json:"audio_encoding"`
	SampleRate    int    `json:"sample_rate"`
	ChannelsCount int    `json:"channels_count"`
	Language      string `json:"language"`
	Model         string `json:"model"`
}

type recognitionRequest struct {
	Options       recognitionOptions `json:"options"`
	RequestFileID string             `json:"request_file_id"`
}

type taskResult struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	ResponseFileID string `json:"response_file_id"`
}

// Authenticate exchanges the static client credential for a bearer token
// (valid for about 30 minutes) and keeps it on the client.
func (c *Client) Authenticate(ctx context.Context, credential string) (string, error) {
	const op = "oauth"

	form := url.Values{"scope": {c.scope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", types.NewError(types.ErrAuth, op, err)
	}
	req.Header.Set("Authorization", "Basic "+credential)
	req.Header.Set("RqUID", uuid.NewString())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, types.ErrAuth, op)
	if err != nil {
		return "", err
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", types.NewError(types.ErrAuth, op, errors.Wrap(err, "decode token response"))
	}
	if tr.AccessToken == "" {
		return "", types.Errorf(types.ErrAuth, op, "response has no access_token")
	}
	c.token = tr.AccessToken
	return tr.AccessToken, nil
}

// Upload sends the encoded audio and returns the provider file id.
func (c *Client) Upload(ctx context.Context, audio *types.AudioDescriptor) (string, error) {
	const op = "data:upload"

	if err := c.requireToken(op); err != nil {
		return "", err
	}
	if audio == nil || len(audio.Data) == 0 {
		return "", types.Errorf(types.ErrUpload, op, "no audio data")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/data:upload", bytes.NewReader(audio.Data))
	if err != nil {
		return "", types.NewError(types.ErrUpload, op, err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "audio/mpeg")

	body, err := c.do(req, types.ErrUpload, op)
	if err != nil {
		return "", err
	}
	var env envelope[uploadResult]
	if err := json.Unmarshal(body, &env); err != nil {
		return "", types.NewError(types.ErrUpload, op, errors.Wrap(err, "decode upload response"))
	}
	if env.Result.RequestFileID == "" {
		return "", types.Errorf(types.ErrUpload, op, "response has no request_file_id")
	}
	return env.Result.RequestFileID, nil
}

// SubmitTask starts asynchronous recognition of an uploaded file. sampleRate
// and channels must match the uploaded MP3.
func (c *Client) SubmitTask(ctx context.Context, fileID string, sampleRate, channels int) (*types.Task, error) {
	const op = "speech:async_recognize"

	if err := c.requireToken(op); err != nil {
		return nil, err
	}
	if fileID == "" || sampleRate <= 0 || channels < 1 {
		return nil, types.Errorf(types.ErrSubmit, op, "invalid task parameters: file=%q rate=%d channels=%d", fileID, sampleRate, channels)
	}
	payload, err := json.Marshal(recognitionRequest{
		Options: recognitionOptions{
			AudioEncoding: AudioEncoding,
			SampleRate:    sampleRate,
			ChannelsCount: channels,
			Language:      Language,
			Model:         Model,
		},
		RequestFileID: fileID,
	})
	if err != nil {
		return nil, types.NewError(types.ErrSubmit, op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/speech:async_recognize", bytes.NewReader(payload))
	if err != nil {
		return nil, types.NewError(types.ErrSubmit, op, err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, types.ErrSubmit, op)
	if err != nil {
		return nil, err
	}
	var env envelope[taskResult]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, types.NewError(types.ErrSubmit, op, errors.Wrap(err, "decode task response"))
	}
	if env.Result.ID == "" {
		return nil, types.Errorf(types.ErrSubmit, op, "response has no task id")
	}
	return &types.Task{ID: env.Result.ID, Status: types.ParseTaskStatus(env.Result.Status)}, nil
}

// PollStatus performs one status check. Looping is up to the caller.
func (c *Client) PollStatus(ctx context.Context, taskID string) (*types.Task, error) {
	const op = "task:get"

	if err := c.requireToken(op); err != nil {
		return nil, err
	}
	u := c.apiURL + "/task:get?" + url.Values{"id": {taskID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, types.NewError(types.ErrStatus, op, err)
	}
	c.authorize(req)

	body, err := c.do(req, types.ErrStatus, op)
	if err != nil {
		return nil, err
	}
	var env envelope[taskResult]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, types.NewError(types.ErrStatus, op, errors.Wrap(err, "decode status response"))
	}

	task := &types.Task{ID: taskID, Status: types.ParseTaskStatus(env.Result.Status)}
	if task.Status == types.StatusDone {
		if env.Result.ResponseFileID == "" {
			return nil, types.Errorf(types.ErrStatus, op, "task %s is DONE without response_file_id", taskID)
		}
		task.ResultFileID = env.Result.ResponseFileID
	}
	return task, nil
}

// DownloadResult fetches the raw recognition result.
func (c *Client) DownloadResult(ctx context.Context, resultID string) ([]byte, error) {
	const op = "data:download"

	if err := c.requireToken(op); err != nil {
		return nil, err
	}
	u := c.apiURL + "/data:download?" + url.Values{"response_file_id": {resultID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, types.NewError(types.ErrDownload, op, err)
	}
	c.authorize(req)

	body, err := c.do(req, types.ErrDownload, op)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, types.Errorf(types.ErrDownload, op, "empty result")
	}
	return body, nil
}

func (c *Client) requireToken(op string) error {
	if c.token == "" {
		return types.Errorf(types.ErrAuth, op, "not authenticated")
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}

// do executes req and returns the body of a 2xx response. Transport failures
// keep their *url.Error in the chain so callers can tell them apart.
func (c *Client) do(req *http.Request, kind types.ErrorKind, op string) ([]byte, error) {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("op", op).Warn("provider request failed")
		return nil, types.NewError(kind, op, errors.Wrapf(err, "%s %s", req.Method, op))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewError(kind, op, errors.Wrap(err, "read response"))
	}
	c.log.WithFields(logrus.Fields{
		"op":      op,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).String(),
	}).Debug("provider call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, types.Errorf(kind, op, "http %d: %s", resp.StatusCode, truncate(body, maxErrorBody))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

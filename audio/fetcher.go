package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/transcript-sheet/types"
)

const fetchOp = "fetch"

type Resolver interface {
	Resolve(ctx context.Context, link string) (string, error)
}

// Codec converts downloaded audio into the provider format.
type Codec interface {
	Encode(ctx context.Context, src []byte) (*types.AudioDescriptor, error)
}

type Fetcher struct {
	resolver Resolver
	codec    Codec
	client   *http.Client
	maxBytes int64
	log      *logrus.Entry
}

// NewFetcher creates a Fetcher that rejects downloads larger than maxBytes.
func NewFetcher(resolver Resolver, codec Codec, client *http.Client, maxBytes int64, log *logrus.Entry) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = logrus.NewEntry(l)
	}
	return &Fetcher{
		resolver: resolver,
		codec:    codec,
		client:   client,
		maxBytes: maxBytes,
		log:      log.WithField("module", "audio"),
	}
}

// Fetch resolves link, downloads it and re-encodes it to MP3.
func (f *Fetcher) Fetch(ctx context.Context, link string) (*types.AudioDescriptor, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, types.Errorf(types.ErrFetch, fetchOp, "empty link")
	}

	href, err := f.resolver.Resolve(ctx, link)
	if err != nil {
		return nil, types.NewError(types.ErrFetch, "resolve", err)
	}

	started := time.Now()
	src, err := f.download(ctx, href)
	if err != nil {
		return nil, types.NewError(types.ErrFetch, "download", err)
	}
	f.log.WithFields(logrus.Fields{
		"bytes":   len(src),
		"elapsed": time.Since(started).String(),
	}).Info("audio downloaded")

	desc, err := f.codec.Encode(ctx, src)
	if err != nil {
		return nil, types.NewError(types.ErrFetch, "encode", err)
	}
	if desc.Channels < 1 || desc.SampleRate <= 0 || desc.Duration < 0 || len(desc.Data) == 0 {
		return nil, types.Errorf(types.ErrFetch, "encode", "invalid encoded audio: channels=%d rate=%d duration=%v bytes=%d",
			desc.Channels, desc.SampleRate, desc.Duration, len(desc.Data))
	}
	f.log.WithFields(logrus.Fields{
		"channels":    desc.Channels,
		"sample_rate": desc.SampleRate,
		"duration":    desc.Duration,
		"bytes":       len(desc.Data),
	}).Info("audio encoded")
	return desc, nil
}

func (f *Fetcher) download(ctx context.Context, href string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("audio exceeds %d bytes", f.maxBytes)
	}
	return data, nil
}

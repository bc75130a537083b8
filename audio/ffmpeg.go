package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mrsingh-rishi/transcript-sheet/types"
)

// FFmpeg re-encodes arbitrary audio to MP3 and reads the stream parameters of
// the result with ffprobe. Work files live in a private temp dir removed on
// return.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
}

// NewFFmpeg creates a codec; empty paths fall back to ffmpeg and ffprobe on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// Encode transcodes src to MP3 and probes the encoded result.
func (f *FFmpeg) Encode(ctx context.Context, src []byte) (*types.AudioDescriptor, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}
	dir, err := os.MkdirTemp("", "transcript-sheet-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "source")
	out := filepath.Join(dir, "encoded.mp3")
	if err := os.WriteFile(in, src, 0o600); err != nil {
		return nil, err
	}

	// ffmpeg -y -i source -vn -f mp3 encoded.mp3
	cmd := exec.CommandContext(ctx, f.FFmpegPath,
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", in,
		"-vn",
		"-f", "mp3",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	probe, err := f.probe(ctx, out)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, err
	}
	probe.Data = data
	return probe, nil
}

func (f *FFmpeg) probe(ctx context.Context, path string) (*types.AudioDescriptor, error) {
	cmd := exec.CommandContext(ctx, f.FFprobePath,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=channels,sample_rate,duration:format=duration",
		"-of", "json",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseProbe(out)
}

type probeOutput struct {
	Streams []struct {
		Channels   int    `json:"channels"`
		SampleRate string `json:"sample_rate"`
		Duration   string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbe(out []byte) (*types.AudioDescriptor, error) {
	var p probeOutput
	if err := json.Unmarshal(out, &p); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}
	if len(p.Streams) == 0 {
		return nil, fmt.Errorf("no audio stream")
	}
	s := p.Streams[0]
	if s.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", s.Channels)
	}
	rate, err := strconv.Atoi(s.SampleRate)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %q", s.SampleRate)
	}

	durStr := p.Format.Duration
	if durStr == "" || durStr == "N/A" {
		durStr = s.Duration
	}
	dur, err := strconv.ParseFloat(durStr, 64)
	if err != nil || dur < 0 {
		return nil, fmt.Errorf("invalid duration %q", durStr)
	}
	return &types.AudioDescriptor{Channels: s.Channels, SampleRate: rate, Duration: dur}, nil
}

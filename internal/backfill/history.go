package backfill

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"puzzlestats/internal/models"
	"puzzlestats/internal/structures"
	"strings"
)

var (
	ErrUnknownMessage = errors.New("unknown message id")
	ErrBadChannel     = errors.New("invalid channel id")
)

// HistorySource yields a channel's messages oldest first. When after is
// set, iteration starts with the message following it.
type HistorySource interface {
	Count(ctx context.Context, channelID, after string) (int, error)
	Each(ctx context.Context, channelID, after string, fn func(models.ChatEvent) error) error
}

// JSONLHistory reads a channel export with one ChatEvent per line. Events
// without a channel id belong to the requested channel.
type JSONLHistory struct {
	path string
}

func NewJSONLHistory(path string) *JSONLHistory {
	return &JSONLHistory{path: path}
}

func (h *JSONLHistory) Count(ctx context.Context, channelID, after string) (int, error) {
	n := 0
	err := h.Each(ctx, channelID, after, func(models.ChatEvent) error {
		n++
		return nil
	})
	return n, err
}

func (h *JSONLHistory) Each(ctx context.Context, channelID, after string, fn func(models.ChatEvent) error) error {
	file, err := os.Open(h.path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	skipping := after != ""
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var event models.ChatEvent
		if err := json.Unmarshal([]byte(text), &event); err != nil {
			return fmt.Errorf("%s:%d: %w", h.path, line, err)
		}
		if event.ChannelID == "" {
			event.ChannelID = channelID
		}
		if channelID != "" && event.ChannelID != channelID {
			continue
		}
		if skipping {
			skipping = event.MessageID != after
			continue
		}
		if err := fn(event); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if skipping {
		return fmt.Errorf("%w: %s", ErrUnknownMessage, after)
	}
	return nil
}

// DirHistory serves <dir>/<channelID>.jsonl exports.
type DirHistory struct {
	dir string
}

func NewDirHistory(dir string) *DirHistory {
	return &DirHistory{dir: dir}
}

func (d *DirHistory) channel(channelID string) (*JSONLHistory, error) {
	if channelID == "" || channelID != filepath.Base(channelID) || strings.HasPrefix(channelID, ".") {
		return nil, fmt.Errorf("%w: %q", ErrBadChannel, channelID)
	}
	return NewJSONLHistory(filepath.Join(d.dir, channelID+".jsonl")), nil
}

func (d *DirHistory) Count(ctx context.Context, channelID, after string) (int, error) {
	h, err := d.channel(channelID)
	if err != nil {
		return 0, err
	}
	return h.Count(ctx, channelID, after)
}

func (d *DirHistory) Each(ctx context.Context, channelID, after string, fn func(models.ChatEvent) error) error {
	h, err := d.channel(channelID)
	if err != nil {
		return err
	}
	return h.Each(ctx, channelID, after, fn)
}

// NewHistorySource serves channel exports from the configured directory.
func NewHistorySource(conf *structures.Config) HistorySource {
	return NewDirHistory(conf.Backfill.HistoryDir)
}

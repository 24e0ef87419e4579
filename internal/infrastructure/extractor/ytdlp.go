// Package extractor downloads media files with yt-dlp.
package extractor

import (
	"context"
	"fmt"
	"log"

	"github.com/lrstanley/go-ytdlp"
)

// Format selector of the best single file carrying both audio and video.
const BestCombined = "best"

type YtDlp struct {
	format     string
	executable string
}

// Create a yt-dlp downloader with the given format selector.
// An empty executable resolves yt-dlp from the PATH.
func NewYtDlp(format, executable string) *YtDlp {
	if format == "" {
		format = BestCombined
	}
	return &YtDlp{format, executable}
}

// Install yt-dlp into the local cache when it cannot be resolved.
func Install(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// Download the source URL to exactly the given path.
func (d *YtDlp) Download(ctx context.Context, url, path string) error {
	log.Printf("downloading video: %s", url)
	_, err := d.command(path).Run(ctx, url)
	if err != nil {
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	return nil
}

func (d *YtDlp) command(path string) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(d.format).
		NoPlaylist().
		Output(path)
	if d.executable != "" {
		cmd = cmd.SetExecutable(d.executable)
	}
	return cmd
}

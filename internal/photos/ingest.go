// Package photos turns image files into data URLs and attaches them to jobs.
package photos

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/balkashynov/jobtrack/internal/models"
)

const (
	DefaultMaxBytes = 3 << 20
	DefaultWorkers  = 4
)

// Ingester reads image files in parallel
type Ingester struct {
	MaxBytes int64 // files larger than this are rejected
	Workers  int   // concurrent reads
	Log      *zap.Logger
}

// Rejection explains why one file was refused
type Rejection struct {
	Path    string
	Message string
}

// Result holds accepted data URLs in input order plus everything refused
type Result struct {
	Photos   []string
	Rejected []Rejection
	Skipped  []string // readable files that are not images
}

// Saver persists a batch of photos on a job
type Saver interface {
	AddPhotos(jobID string, photos []string) (*models.Job, error)
}

type outcome struct {
	photo    string
	rejected string
	skipped  bool
}

// Ingest reads every path. Per-file problems land in the result; the only
// error is a cancelled context, in which case the result must be discarded.
func (in Ingester) Ingest(ctx context.Context, paths []string) (Result, error) {
	maxBytes := in.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	workers := in.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	log := in.Log
	if log == nil {
		log = zap.NewNop()
	}

	outcomes := make([]outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = readOne(path, maxBytes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var res Result
	for i, o := range outcomes {
		switch {
		case o.rejected != "":
			res.Rejected = append(res.Rejected, Rejection{Path: paths[i], Message: o.rejected})
		case o.skipped:
			res.Skipped = append(res.Skipped, paths[i])
		default:
			res.Photos = append(res.Photos, o.photo)
		}
	}
	log.Debug("photos read",
		zap.Int("accepted", len(res.Photos)),
		zap.Int("rejected", len(res.Rejected)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// Attach ingests paths and adds the accepted photos to a job in a single
// write. Nothing is written when the context is cancelled or no file was
// accepted.
func (in Ingester) Attach(ctx context.Context, saver Saver, jobID string, paths []string) (Result, *models.Job, error) {
	res, err := in.Ingest(ctx, paths)
	if err != nil {
		return Result{}, nil, err
	}
	if len(res.Photos) == 0 {
		return res, nil, nil
	}
	job, err := saver.AddPhotos(jobID, res.Photos)
	if err != nil {
		return res, nil, fmt.Errorf("failed to save photos: %w", err)
	}
	return res, job, nil
}

func readOne(path string, maxBytes int64) outcome {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return outcome{rejected: fmt.Sprintf("%q could not be read: %v", name, unwrapPathError(err))}
	}
	if info.IsDir() {
		return outcome{skipped: true}
	}
	if info.Size() > maxBytes {
		return outcome{rejected: fmt.Sprintf("%q exceeds %s. Please use a smaller image.", name, humanize.IBytes(uint64(maxBytes)))}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return outcome{rejected: fmt.Sprintf("%q could not be read: %v", name, unwrapPathError(err))}
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return outcome{skipped: true}
	}
	return outcome{photo: Encode(mime, data)}
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Encode builds a base64 data URL
func Encode(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a base64 data URL into its media type and bytes
func Decode(dataURL string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URL has no payload")
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data URL is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return mime, data, nil
}

// Extension picks a file extension for a saved photo
func Extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	}
	return ".img"
}

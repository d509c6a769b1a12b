package imagegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"path"

	"menugen/internal/storage"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrNoArtifact means the backend answered but returned no image to save.
var ErrNoArtifact = errors.New("no image artifact produced")

// Backend returns the artifacts generated for a prompt.
type Backend interface {
	Generate(ctx context.Context, prompt string) ([]Artifact, error)
}

// Synthesizer renders a prompt and stores the result as
// {dir}/{title}.png in the image store.
type Synthesizer struct {
	backend Backend
	store   storage.ImageStore
	dir     string
	logger  *zap.Logger
}

func NewSynthesizer(backend Backend, store storage.ImageStore, dir string, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		backend: backend,
		store:   store,
		dir:     dir,
		logger:  logger,
	}
}

// ImagePath is the relative path an image with this title is stored under.
func ImagePath(dir, title string) string {
	return path.Join(dir, title+".png")
}

// Synthesize returns the relative image path. It returns ErrNoArtifact when
// the backend produced nothing of image kind; nothing is written then.
func (s *Synthesizer) Synthesize(ctx context.Context, prompt, title string) (string, error) {
	artifacts, err := s.backend.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	var img *Artifact
	for i := range artifacts {
		if artifacts[i].Kind == ArtifactImage {
			img = &artifacts[i]
			break
		}
		s.logger.Debug("ignoring artifact",
			zap.String("title", title),
			zap.Stringer("kind", artifacts[i].Kind),
		)
	}
	if img == nil {
		return "", fmt.Errorf("%s: %w", title, ErrNoArtifact)
	}

	data, err := toPNG(img.Binary)
	if err != nil {
		return "", fmt.Errorf("%s: %w", title, err)
	}

	rel := ImagePath(s.dir, title)
	if err := s.store.Save(ctx, rel, data, "image/png"); err != nil {
		return "", err
	}

	s.logger.Info("dish image saved",
		zap.String("path", rel),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
	)

	return rel, nil
}

// toPNG decodes whatever format the backend returned and re-encodes it as PNG.
func toPNG(b []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ArtifactKind tells image payloads apart from other backend outputs.
type ArtifactKind int

const (
	ArtifactUnknown ArtifactKind = iota
	ArtifactImage
	// ArtifactClassification is the safety classifier signal returned in
	// place of an image when a prompt is filtered.
	ArtifactClassification
)

func (k ArtifactKind) String() string {
	switch k {
	case ArtifactImage:
		return "image"
	case ArtifactClassification:
		return "classification"
	default:
		return "unknown"
	}
}

// Artifact is one output unit of a generation request.
type Artifact struct {
	Kind   ArtifactKind
	Seed   int64
	Binary []byte
}

// Profile is the fixed model/resolution setup used for every request.
type Profile struct {
	Engine   string
	Width    int
	Height   int
	Steps    int
	CfgScale float64
	Samples  int
}

func DefaultProfile(engine string) Profile {
	return Profile{
		Engine:   engine,
		Width:    1024,
		Height:   1024,
		Steps:    30,
		CfgScale: 7,
		Samples:  1,
	}
}

// StabilityClient calls the Stability REST text-to-image endpoint.
type StabilityClient struct {
	apiKey   string
	endpoint string
	profile  Profile
	http     *http.Client
}

func NewStabilityClient(apiKey, endpoint string, profile Profile) *StabilityClient {
	return &StabilityClient{
		apiKey:   apiKey,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		profile:  profile,
		http:     &http.Client{Timeout: 120 * time.Second},
	}
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type textToImageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type textToImageResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		Seed         int64  `json:"seed"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// Generate requests images for a prompt and returns every artifact the
// backend produced, tagged by kind.
func (c *StabilityClient) Generate(ctx context.Context, prompt string) ([]Artifact, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing STABILITY_KEY")
	}

	body, err := json.Marshal(textToImageRequest{
		TextPrompts: []textPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    c.profile.CfgScale,
		Height:      c.profile.Height,
		Width:       c.profile.Width,
		Samples:     c.profile.Samples,
		Steps:       c.profile.Steps,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.endpoint, c.profile.Engine)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stability api error (%d): %s", resp.StatusCode, string(raw))
	}

	var result textToImageResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode stability response: %w", err)
	}

	artifacts := make([]Artifact, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		art := Artifact{Kind: kindOf(a.FinishReason), Seed: a.Seed}

		if art.Kind == ArtifactImage {
			bin, err := base64.StdEncoding.DecodeString(a.Base64)
			if err != nil {
				return nil, fmt.Errorf("decode artifact %d: %w", a.Seed, err)
			}
			art.Binary = bin
		}

		artifacts = append(artifacts, art)
	}

	return artifacts, nil
}

func kindOf(finishReason string) ArtifactKind {
	switch finishReason {
	case "SUCCESS":
		return ArtifactImage
	case "CONTENT_FILTERED":
		return ArtifactClassification
	default:
		return ArtifactUnknown
	}
}

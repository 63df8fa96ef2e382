package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// defaultVisionTimeout bounds a single annotate call. A hung OCR request
// should fail the scan, not block it indefinitely.
const defaultVisionTimeout = 8 * time.Second

// Vision implements TextProvider against the Google Vision annotate API.
type Vision struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewVision creates a Vision text provider. A missing API key is a
// configuration error, caught here rather than on the first scan.
func NewVision(endpoint, apiKey string, timeout time.Duration) (*Vision, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("vision api key is required")
	}
	if endpoint == "" {
		endpoint = defaultVisionEndpoint
	}
	if timeout <= 0 {
		timeout = defaultVisionTimeout
	}

	return &Vision{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type visionRequest struct {
	Requests []annotateRequest `json:"requests"`
}

type annotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
	} `json:"responses"`
}

// ExtractText runs whole-document OCR over the image. DOCUMENT_TEXT_DETECTION
// rather than TEXT_DETECTION: receipts are dense multi-line documents and
// word-level detection drops too much of them.
func (v *Vision) ExtractText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	pngData, err := normalizeImage(imageData, contentType)
	if err != nil {
		return "", fmt.Errorf("preparing image: %w", err)
	}

	reqBody := visionRequest{
		Requests: []annotateRequest{
			{
				Image:    visionImage{Content: base64.StdEncoding.EncodeToString(pngData)},
				Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", v.endpoint, v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(body))
	}

	var visionResp visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	// No annotation is not a failure; the pipeline continues with the
	// sentinel and extraction yields an empty candidate.
	if len(visionResp.Responses) == 0 ||
		visionResp.Responses[0].FullTextAnnotation == nil ||
		visionResp.Responses[0].FullTextAnnotation.Text == "" {
		return NoTextFound, nil
	}

	return visionResp.Responses[0].FullTextAnnotation.Text, nil
}

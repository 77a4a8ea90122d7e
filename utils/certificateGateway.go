package utils

import (
	"certportal/config"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// CertificateFields is the field map sent to the rendering gateway. All values
// are plain strings; the gateway substitutes them into the document template.
type CertificateFields map[string]string

type gatewayResponse struct {
	Error     string `json:"error"`
	PdfBase64 string `json:"pdfBase64"`
}

// RenderCertificate posts the field map to the document rendering gateway and
// returns the decoded PDF bytes. Single round trip, no retry; failures are
// surfaced to the caller.
func RenderCertificate(fields CertificateFields) ([]byte, error) {
	apiURL := config.AppConfig.CertificateApiURL
	if apiURL == "" {
		return nil, fmt.Errorf("certificate gateway URL is not configured")
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Post(apiURL)
	if err != nil {
		log.Printf("Failed to reach certificate gateway: %v", err)
		return nil, fmt.Errorf("certificate gateway unreachable: %v", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Certificate gateway returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("certificate gateway returned status %d", resp.StatusCode())
	}

	var result gatewayResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		log.Printf("Failed to parse gateway response: %v", err)
		return nil, fmt.Errorf("invalid gateway response: %v", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("certificate gateway error: %s", result.Error)
	}
	if result.PdfBase64 == "" {
		return nil, fmt.Errorf("certificate gateway returned an empty document")
	}

	pdfBytes, err := base64.StdEncoding.DecodeString(result.PdfBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document payload: %v", err)
	}

	return pdfBytes, nil
}

package utils

import (
	"certportal/config"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCertificateDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"pdfBase64": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 content")),
		})
	}))
	defer server.Close()

	config.AppConfig = &config.Config{CertificateApiURL: server.URL}

	pdfBytes, err := RenderCertificate(CertificateFields{"name": "Student A"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(pdfBytes))
}

func TestRenderCertificateReportsGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "template missing"})
	}))
	defer server.Close()

	config.AppConfig = &config.Config{CertificateApiURL: server.URL}

	_, err := RenderCertificate(CertificateFields{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template missing")
}

func TestRenderCertificateRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config.AppConfig = &config.Config{CertificateApiURL: server.URL}

	_, err := RenderCertificate(CertificateFields{})
	assert.Error(t, err)
}

func TestRenderCertificateRejectsEmptyDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	config.AppConfig = &config.Config{CertificateApiURL: server.URL}

	_, err := RenderCertificate(CertificateFields{})
	assert.Error(t, err)
}

func TestRenderCertificateFailsWithoutConfiguredURL(t *testing.T) {
	config.AppConfig = &config.Config{CertificateApiURL: ""}

	_, err := RenderCertificate(CertificateFields{})
	assert.Error(t, err)
}

package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#10b981"/></svg>`

func TestUtils_ShouldDownloadFile(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleSVG))
	}))
	defer srv.Close()

	f, err := DownloadFile(srv.URL + "/icons/speedometer_icon.svg")
	if !assert.NoError(err) {
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	assert.Equal(".svg", filepath.Ext(f.Name()))
	data, err := os.ReadFile(f.Name())
	assert.NoError(err)
	assert.Equal(sampleSVG, string(data))
}

func TestUtils_ShouldFailOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f, err := DownloadFile(srv.URL + "/missing.svg")
	assert.Error(t, err)
	assert.Nil(t, f)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidUrl("https://github.com/speedometer/speedicon/"))
	assert.True(IsValidUrl("http://example.com/icon.svg"))
	assert.False(IsValidUrl("Resources/speedometer_icon.svg"))
	assert.False(IsValidUrl("ftp://example.com/icon.svg"))
	assert.False(IsValidUrl(""))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "sample.svg")
	if err := os.WriteFile(fname, []byte(sampleSVG), 0644); err != nil {
		t.Fatalf("could not write sample file: %v", err)
	}

	ctype, err := DetectContentType(fname)
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}

	if !strings.Contains(ctype, "text") {
		t.Errorf("Content type expected to be textual, got: %v", ctype)
	}
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProgresser struct {
	inits   int
	total   int64
	updates int
	count   int64
}

func (p *countingProgresser) Init(size int64) {
	p.inits++
	p.total = size
}

func (p *countingProgresser) Update(count int64, size int64) {
	p.updates++
	p.count = count
}

func TestFilenameFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"plain", `attachment; filename="model.zip"`, "model.zip"},
		{"slash flattened", `attachment; filename="my/model.zip"`, "my_model.zip"},
		{"backslash flattened", `attachment; filename="my\model.zip"`, "my_model.zip"},
		{"url escaped", `attachment; filename="My%20Model.zip"`, "My Model.zip"},
		{"plus kept", `attachment; filename="a+b.zip"`, "a+b.zip"},
		{"absent", "", DefaultFilename},
		{"unquoted value", `attachment; filename=model.zip`, DefaultFilename},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FilenameFromHeader(c.header))
		})
	}
}

func TestSaveResponse(t *testing.T) {
	data := make([]byte, 10*1024)
	for i := range data {
		data[i] = byte(i % 251)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="model.zip"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Write(data)
	}))
	defer server.Close()

	resp, err := NewClient().Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	dir := t.TempDir()
	progress := &countingProgresser{}

	path, err := SaveResponse(resp, dir, 1024, progress)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "model.zip"), path)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, saved)

	assert.Equal(t, 1, progress.inits)
	assert.Equal(t, int64(len(data)), progress.total)
	assert.Equal(t, int64(len(data)), progress.count)
	assert.GreaterOrEqual(t, progress.updates, len(data)/1024)
}

func TestSaveResponse_DefaultName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	resp, err := NewClient().Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	dir := t.TempDir()
	path, err := SaveResponse(resp, dir, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultFilename), path)
	assert.FileExists(t, path)
}

func TestClient_SendsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewClient(SetUserAgent("custom-agent"))
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "custom-agent", got)
}

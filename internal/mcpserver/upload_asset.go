package mcpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxAssetSize caps uploaded attachments at 10 MB.
const maxAssetSize = 10 << 20

var extForMIME = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".webp": true, ".svg": true, ".pdf": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type uploadResult struct {
	URL          string `json:"url"`
	ImageContent string `json:"imageContent"`
}

// uploadAsset fetches an image from a data: URI or http(s) URL, validates
// it, and stores it in the attachment store. The returned imageContent is
// what an image block's content field should be set to.
func (s *Server) uploadAsset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := ""
	if v, nameErr := req.RequireString("filename"); nameErr == nil {
		name = v
	}

	var data []byte
	var sniffedExt string
	if strings.HasPrefix(source, "data:") {
		data, sniffedExt, err = decodeDataURI(source)
	} else {
		data, sniffedExt, err = fetchRemote(ctx, source)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(data) > maxAssetSize {
		return mcp.NewToolResultError(fmt.Sprintf("file too large: %d bytes (max %d)", len(data), maxAssetSize)), nil
	}

	if name == "" {
		name = assetName(source, sniffedExt)
	}
	name = sanitizeName(name)

	ext := strings.ToLower(filepath.Ext(name))
	if !imageExts[ext] {
		return mcp.NewToolResultError("unsupported file extension: " + ext + " (allowed: png, jpg, jpeg, gif, webp, svg, pdf)"), nil
	}
	if err := verifyContent(data, ext); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, readErr := s.files.Read(name); readErr == nil {
		return mcp.NewToolResultError("file already exists: " + name), nil
	}
	if err := s.files.Write(name, data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("save attachment: %v", err)), nil
	}

	servedAt := "/attachments/" + name
	out, _ := json.Marshal(uploadResult{URL: servedAt, ImageContent: servedAt})
	return mcp.NewToolResultText(string(out)), nil
}

// decodeDataURI parses a data:[<mediatype>];base64,<data> URI.
func decodeDataURI(uri string) ([]byte, string, error) {
	meta, encoded, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return nil, "", fmt.Errorf("invalid data URI: missing comma separator")
	}
	if !strings.Contains(meta, ";base64") {
		return nil, "", fmt.Errorf("only base64 data URIs are supported")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(encoded); err != nil {
			return nil, "", fmt.Errorf("invalid base64 data: %w", err)
		}
	}

	mime, _, _ := strings.Cut(strings.TrimSuffix(meta, ";base64"), ";")
	ext, ok := extForMIME[mime]
	if !ok {
		return nil, "", fmt.Errorf("unsupported MIME type in data URI: %s", mime)
	}
	return data, ext, nil
}

// fetchRemote downloads an asset over http(s). Loopback and cloud metadata
// targets are refused, including across redirects.
func fetchRemote(ctx context.Context, rawURL string) ([]byte, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported scheme: %s (only http/https)", parsed.Scheme)
	}
	if err := refuseInternalHost(parsed.Hostname()); err != nil {
		return nil, "", err
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("too many redirects (max 5)")
			}
			return refuseInternalHost(req.URL.Hostname())
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxAssetSize {
		return nil, "", fmt.Errorf("file too large: exceeds %d bytes", maxAssetSize)
	}

	mime, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	return data, extForMIME[mime], nil
}

// refuseInternalHost blocks loopback addresses and the cloud metadata
// endpoints an attacker-supplied URL could otherwise reach.
func refuseInternalHost(host string) error {
	if host == "metadata.google.internal" {
		return fmt.Errorf("blocked host: %s", host)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		ips, lookupErr := net.LookupIP(host)
		if lookupErr != nil || len(ips) == 0 {
			// Unresolvable now; the client will surface the DNS error.
			return nil
		}
		ip = ips[0]
	}

	if ip.IsLoopback() {
		return fmt.Errorf("blocked host: loopback address %s", host)
	}
	if ip.Equal(net.ParseIP("169.254.169.254")) {
		return fmt.Errorf("blocked host: cloud metadata address %s", host)
	}
	return nil
}

// assetName derives a filename from the source URL, minting a UUID name
// when the URL carries none.
func assetName(source, sniffedExt string) string {
	if !strings.HasPrefix(source, "data:") {
		if parsed, err := url.Parse(source); err == nil {
			base := path.Base(parsed.Path)
			if base != "" && base != "." && base != "/" && strings.Contains(base, ".") {
				return base
			}
		}
	}
	if sniffedExt == "" {
		sniffedExt = ".bin"
	}
	return uuid.New().String() + sniffedExt
}

// sanitizeName strips path separators and characters outside
// [a-zA-Z0-9._-].
func sanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." {
		name = uuid.New().String()
	}
	return name
}

// verifyContent checks that the bytes plausibly match the declared
// extension, so a renamed executable cannot be stored as an image.
func verifyContent(data []byte, ext string) error {
	if ext == ".svg" {
		head := data
		if len(head) > 1024 {
			head = head[:1024]
		}
		if !bytes.Contains(head, []byte("<svg")) {
			return fmt.Errorf("content does not appear to be a valid SVG (missing <svg tag)")
		}
		return nil
	}

	mime, _, _ := strings.Cut(http.DetectContentType(data), ";")
	detected := extForMIME[mime]
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if detected != ext {
		return fmt.Errorf("content does not match extension %s (detected: %s)", ext, mime)
	}
	return nil
}

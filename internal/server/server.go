package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-multitime/internal/config"
	"github.com/tartampluch/go-multitime/internal/engine"
)

// cacheItem stores one rendered representation and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// snapshot holds both representations of the same frame.
type snapshot struct {
	text *cacheItem
	json *cacheItem
}

// feedPayload is the body of the JSON route.
type feedPayload struct {
	Layout engine.Layout        `json:"layout"`
	Text   string               `json:"text"`
	Lines  []string             `json:"lines"`
	Rows   [][]engine.ClockCell `json:"rows"`
}

// FeedServer serves the latest composed display over localhost HTTP so that
// status bars without a tray (i3bar, waybar, tmux) can poll it.
// It implements engine.PresentationSink.
type FeedServer struct {
	// cache uses atomic.Pointer for lock-free reads: the feed is polled far
	// more often than the text actually changes.
	cache atomic.Pointer[snapshot]
	Port  string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
	}
}

// Handler returns the routing table of the feed.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteJSON, s.handleJSON)
	mux.HandleFunc(config.RouteRoot, s.handleText)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Present implements engine.PresentationSink.
func (s *FeedServer) Present(out engine.RenderOutput) {
	s.Update(out)
}

// Update atomically replaces the served frame. A frame whose text equals the
// current one is ignored, so validators stay stable between minute ticks.
func (s *FeedServer) Update(out engine.RenderOutput) {
	text := []byte(out.String())
	if cur := s.cache.Load(); cur != nil && bytes.Equal(cur.text.data, text) {
		return
	}

	lines := out.Lines()
	if lines == nil {
		lines = []string{}
	}
	rows := out.Rows
	if rows == nil {
		rows = [][]engine.ClockCell{}
	}
	body, err := json.Marshal(feedPayload{
		Layout: out.Layout,
		Text:   string(text),
		Lines:  lines,
		Rows:   rows,
	})
	if err != nil {
		slog.Error(config.ErrEncodeResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		return
	}

	lastMod := time.Now().UTC().Format(http.TimeFormat)
	snap := &snapshot{
		text: newCacheItem(text, lastMod),
		json: newCacheItem(body, lastMod),
	}

	// Readers see either the old or the new complete snapshot, never a mix.
	s.cache.Store(snap)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(text),
		config.LogKeyETag, snap.text.etag,
	)
}

func newCacheItem(data []byte, lastModified string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: lastModified,
	}
}

// handleText serves the plain text rendering on the root path.
func (s *FeedServer) handleText(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}
	s.serve(w, r, config.MimeTextPlain, func(snap *snapshot) *cacheItem { return snap.text })
}

// handleJSON serves the structured rows.
func (s *FeedServer) handleJSON(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, config.MimeJSON, func(snap *snapshot) *cacheItem { return snap.json })
}

// serve writes one representation with HTTP caching support.
func (s *FeedServer) serve(w http.ResponseWriter, r *http.Request, mime string, pick func(*snapshot) *cacheItem) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Load Data (Atomic / Lock-Free)
	snap := s.cache.Load()

	// 3. Readiness Check
	if snap == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	item := pick(snap)

	// 4. Set Response Headers
	w.Header().Set(config.HeaderContentType, mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoCache)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// 5. Check Conditional Headers
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		if match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	// 6. Serve Content
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

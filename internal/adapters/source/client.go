// Package source fetches the raw airport table (OurAirports CSV layout).
package source

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"airport_lookup/internal/adapters/observability"
	"airport_lookup/internal/domain"
)

// maxBody caps the source document; anything larger fails the fetch.
var maxBody int64 = 64 << 20

var ErrTooLarge = errors.New("source: document exceeds size limit")

type Client struct {
	url  string
	path string // set for file:// URLs and bare paths
	hc   *http.Client
	rl   *rate.Limiter
}

func New(rawURL string, rps int) (*Client, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("source URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	c := &Client{
		url: rawURL,
		hc:  &http.Client{Timeout: 60 * time.Second},
		rl:  rate.NewLimiter(rate.Limit(rps), rps),
	}
	u, err := url.Parse(rawURL)
	switch {
	case err != nil || u.Scheme == "":
		c.path = rawURL
	case u.Scheme == "file":
		c.path = u.Path
	case u.Scheme == "http" || u.Scheme == "https":
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
	return c, nil
}

var ErrNotFound = fmt.Errorf("source: %w", domain.ErrNotFound)

// Fetch reads the whole source and splits it into header and rows.
func (c *Client) Fetch(ctx context.Context) (domain.RawTable, error) {
	var (
		body []byte
		err  error
	)
	if c.path != "" {
		body, err = readFile(c.path)
		if errors.Is(err, os.ErrNotExist) {
			return domain.RawTable{}, fmt.Errorf("%w: %s", ErrNotFound, c.path)
		}
	} else {
		body, err = c.get(ctx, c.url)
	}
	if err != nil {
		return domain.RawTable{}, err
	}
	return parseCSV(body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

// readLimited reads one byte past maxBody so a cut-off document is an
// error instead of a silently shorter table.
func readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxBody {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBody)
	}
	return b, nil
}

func parseCSV(body []byte) (domain.RawTable, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))))
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return domain.RawTable{}, fmt.Errorf("source: empty document")
	}
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("source: read header: %w", err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("source: read rows: %w", err)
	}
	return domain.RawTable{Columns: header, Rows: rows}, nil
}

// get performs a GET with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		req.Header.Set("User-Agent", "airport-lookup/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("source", "airports", 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr
		}
		observability.ObserveExternal("source", "airports", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := readLimited(resp.Body)
			resp.Body.Close()
			return b, err

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s", ErrNotFound, target)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return nil, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}

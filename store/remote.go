// store/remote.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/filatrack/filatrack/api/models"
)

// Remote is the narrow contract to the remote document store: a single
// last-write-wins JSON document holding all three collections.
type Remote interface {
	// Load returns the remote document, or nil when it has never been
	// written. A document that exists but is empty comes back with empty
	// slices.
	Load(ctx context.Context) (*models.Collections, error)

	// Save overwrites the whole remote document. Optional fields that are
	// unset must be transmitted as omitted keys, not nulls.
	Save(ctx context.Context, c models.Collections) error

	// Subscribe delivers the full document whenever it changes, including
	// changes caused by this client's own saves. The returned func stops
	// delivery.
	Subscribe(onChange func(models.Collections)) func()

	// Configured reports whether remote credentials are present. When false
	// the store runs in local-only mode.
	Configured() bool
}

// HTTPRemote talks to a single-document REST store: GET and PUT of one JSON
// document at a fixed URL. The store has no push channel, so Subscribe polls
// the document's ETag at a fixed interval.
type HTTPRemote struct {
	client *resty.Client
	url    string
	poll   time.Duration

	mu      sync.Mutex
	lastRev string
}

// NewHTTPRemote builds a remote adapter for the document at url. An empty
// url yields an unconfigured adapter. token, when set, is sent as a bearer
// token.
func NewHTTPRemote(url, token string, poll time.Duration) *HTTPRemote {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &HTTPRemote{client: client, url: url, poll: poll}
}

// Configured reports whether a document URL was provided.
func (r *HTTPRemote) Configured() bool {
	return r.url != ""
}

// Load fetches the remote document. A 404 means the document has never been
// initialized and yields nil.
func (r *HTTPRemote) Load(ctx context.Context) (*models.Collections, error) {
	resp, err := r.client.R().SetContext(ctx).Get(r.url)
	if err != nil {
		return nil, fmt.Errorf("remote load: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote load: unexpected status %s", resp.Status())
	}
	var c models.Collections
	if err := json.Unmarshal(resp.Body(), &c); err != nil {
		return nil, fmt.Errorf("remote load: decode: %w", err)
	}
	c = c.Normalized()
	r.setRev(resp.Header().Get("ETag"))
	return &c, nil
}

// Save overwrites the remote document with the given collections. Unset
// optional fields are omitted by the models' serialization contract, so
// nothing the document store cannot represent is ever transmitted.
func (r *HTTPRemote) Save(ctx context.Context, c models.Collections) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(c.Normalized()).
		Put(r.url)
	if err != nil {
		return fmt.Errorf("remote save: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote save: unexpected status %s", resp.Status())
	}
	r.setRev(resp.Header().Get("ETag"))
	return nil
}

// Subscribe polls the document and invokes onChange with the full snapshot
// every time its revision moves, own saves included. The returned func stops
// the poller.
func (r *HTTPRemote) Subscribe(onChange func(models.Collections)) func() {
	if !r.Configured() {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(r.poll)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.pollOnce(onChange)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (r *HTTPRemote) pollOnce(onChange func(models.Collections)) {
	req := r.client.R().SetContext(context.Background())
	if rev := r.rev(); rev != "" {
		req.SetHeader("If-None-Match", rev)
	}
	resp, err := req.Get(r.url)
	if err != nil || resp.IsError() {
		// transient; next tick retries
		return
	}
	if resp.StatusCode() == http.StatusNotModified {
		return
	}
	var c models.Collections
	if err := json.Unmarshal(resp.Body(), &c); err != nil {
		return
	}
	rev := resp.Header().Get("ETag")
	if rev != "" && rev == r.rev() {
		return
	}
	r.setRev(rev)
	onChange(c.Normalized())
}

func (r *HTTPRemote) rev() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRev
}

func (r *HTTPRemote) setRev(rev string) {
	r.mu.Lock()
	r.lastRev = rev
	r.mu.Unlock()
}

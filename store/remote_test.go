package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/filatrack/filatrack/api/models"
)

// docServer is a minimal single-document store: GET/PUT one JSON blob with
// an ETag revision.
type docServer struct {
	mu  sync.Mutex
	doc []byte
	rev int
}

func (d *docServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		defer d.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if d.doc == nil {
				http.NotFound(w, r)
				return
			}
			etag := fmt.Sprintf("%q", fmt.Sprint(d.rev))
			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", etag)
			w.Header().Set("Content-Type", "application/json")
			w.Write(d.doc)
		case http.MethodPut:
			buf, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			d.doc = buf
			d.rev++
			w.Header().Set("ETag", fmt.Sprintf("%q", fmt.Sprint(d.rev)))
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func TestHTTPRemoteLoadBeforeInitReturnsNil(t *testing.T) {
	srv := httptest.NewServer((&docServer{}).handler())
	defer srv.Close()

	remote := NewHTTPRemote(srv.URL, "", time.Second)
	got, err := remote.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestHTTPRemoteRoundTrip(t *testing.T) {
	srv := httptest.NewServer((&docServer{}).handler())
	defer srv.Close()

	remote := NewHTTPRemote(srv.URL, "", time.Second)

	price := 24.99
	saved := models.Collections{
		Filaments: []models.Filament{
			{ID: "f1", Name: "Clear PETG", Material: "PETG", TotalWeight: 1000, RemainingWeight: 200, Price: &price},
			{ID: "f2", Name: "Black PLA", Material: "PLA", TotalWeight: 1000, RemainingWeight: 750},
		},
		PrintedParts: []models.PrintedPart{
			{ID: "p1", Name: "Stand", FilamentID: "f1", WeightUsed: 45, PrintTime: 180, PrintDate: "2026-02-01"},
		},
		Projects: []models.Project{{ID: "pr1", Name: "Desk"}},
	}
	require.NoError(t, remote.Save(context.Background(), saved))

	got, err := remote.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, saved, *got)
	require.Nil(t, got.Filaments[1].Price, "unset price stays absent across the wire")
}

func TestHTTPRemoteOmitsUnsetOptionalFields(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	remote := NewHTTPRemote(srv.URL, "", time.Second)
	require.NoError(t, remote.Save(context.Background(), models.Collections{
		Filaments: []models.Filament{{ID: "f1", Name: "No Price"}},
	}))

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))
	require.NotContains(t, doc["filaments"][0], "price")
	require.NotContains(t, doc["filaments"][0], "favorite")
}

// fakeRemote is an in-memory Remote for store wiring tests.
type fakeRemote struct {
	mu       sync.Mutex
	doc      *models.Collections
	saves    int
	saveErr  error
	loadGate chan struct{} // when set, Load blocks until closed
	onChange func(models.Collections)
}

func (f *fakeRemote) Configured() bool { return true }

func (f *fakeRemote) Load(ctx context.Context) (*models.Collections, error) {
	if f.loadGate != nil {
		<-f.loadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc == nil {
		return nil, nil
	}
	c := f.doc.Clone()
	return &c, nil
}

func (f *fakeRemote) Save(ctx context.Context, c models.Collections) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	snap := c.Clone()
	f.doc = &snap
	f.saves++
	return nil
}

func (f *fakeRemote) Subscribe(onChange func(models.Collections)) func() {
	f.mu.Lock()
	f.onChange = onChange
	f.mu.Unlock()
	return func() {}
}

func (f *fakeRemote) push(c models.Collections) {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

func TestStoreLoadingFlagLifecycle(t *testing.T) {
	gate := make(chan struct{})
	remote := &fakeRemote{loadGate: gate}
	s := New(nil, remote, false, zerolog.Nop())
	require.NoError(t, s.Open(context.Background()))

	require.True(t, s.Loading(), "loading until the initial remote load resolves")
	close(gate)
	require.Eventually(t, func() bool { return !s.Loading() }, time.Second, 5*time.Millisecond)
	s.Close()
}

func TestStoreAdoptsRemoteDocumentOnOpen(t *testing.T) {
	doc := models.Collections{
		Filaments: []models.Filament{{ID: "f1", Name: "Remote PLA", TotalWeight: 1000, RemainingWeight: 600}},
	}.Normalized()
	remote := &fakeRemote{doc: &doc}

	s := New(nil, remote, false, zerolog.Nop())
	require.NoError(t, s.Open(context.Background()))
	require.Eventually(t, func() bool { return !s.Loading() }, time.Second, 5*time.Millisecond)
	defer s.Close()

	require.Equal(t, 600.0, remaining(t, s, "f1"))
}

func TestRemotePushReplacesCollectionsWholesale(t *testing.T) {
	remote := &fakeRemote{}
	s := New(nil, remote, false, zerolog.Nop())
	require.NoError(t, s.Open(context.Background()))
	require.Eventually(t, func() bool { return !s.Loading() }, time.Second, 5*time.Millisecond)
	defer s.Close()

	addSpool(s, 500, 1000)
	require.Len(t, s.Snapshot().Filaments, 1)

	remote.push(models.Collections{
		Filaments: []models.Filament{{ID: "x", Name: "Other Device Spool", TotalWeight: 1000, RemainingWeight: 999}},
	})

	snap := s.Snapshot()
	require.Len(t, snap.Filaments, 1)
	require.Equal(t, "x", snap.Filaments[0].ID, "push replaces, never merges")
}

func TestMutationSavesToRemote(t *testing.T) {
	remote := &fakeRemote{}
	s := New(nil, remote, false, zerolog.Nop())
	require.NoError(t, s.Open(context.Background()))
	require.Eventually(t, func() bool { return !s.Loading() }, time.Second, 5*time.Millisecond)
	defer s.Close()

	addSpool(s, 500, 1000)

	require.Eventually(t, func() bool {
		remote.mu.Lock()
		defer remote.mu.Unlock()
		return remote.saves == 1 && remote.doc != nil && len(remote.doc.Filaments) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestRemoteSaveFailureKeepsLocalState(t *testing.T) {
	remote := &fakeRemote{saveErr: fmt.Errorf("permission denied")}
	s := New(nil, remote, false, zerolog.Nop())
	require.NoError(t, s.Open(context.Background()))
	require.Eventually(t, func() bool { return !s.Loading() }, time.Second, 5*time.Millisecond)
	defer s.Close()

	f := addSpool(s, 500, 1000)

	// Local state is authoritative; the failed save is not rolled back
	require.Equal(t, 500.0, remaining(t, s, f.ID))
}

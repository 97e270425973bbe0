// Package store owns the authoritative in-memory collections and the
// weight-consistency rules that tie printed-part records to filament stock.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filatrack/filatrack/api/models"
)

// Store is the single writer for the filament, printed-part and project
// collections. Mutations update in-memory state synchronously, save the full
// collections to the local file store, and, when remote sync is configured,
// push the same snapshot to the remote document store without waiting for it.
//
// A missing filament or project reference is never an error here: the weight
// side-effect is simply skipped and the dangling id is left for readers to
// resolve-or-ignore.
type Store struct {
	mu   sync.RWMutex
	data models.Collections

	local  *LocalStore
	remote Remote
	seed   bool
	log    zerolog.Logger

	loading    bool
	stopRemote func()

	subMu   sync.Mutex
	subs    map[int]func(models.Collections)
	nextSub int
}

// New creates a Store. local may be nil (memory-only session), remote may be
// nil (local-only mode). When seed is true and both local and remote start
// empty, the store begins with the built-in example dataset.
func New(local *LocalStore, remote Remote, seed bool, log zerolog.Logger) *Store {
	return &Store{
		local:  local,
		remote: remote,
		seed:   seed,
		log:    log,
		data:   models.Collections{}.Normalized(),
		subs:   make(map[int]func(models.Collections)),
	}
}

// Open loads the initial state. The local blob is adopted immediately so the
// app is usable offline; when remote sync is configured the initial remote
// load and the change subscription run in the background, with Loading
// reporting true until the first load resolves.
//
// Only a local storage failure is fatal. Remote failures are logged and the
// session continues on local state.
func (s *Store) Open(ctx context.Context) error {
	if s.local != nil {
		blob, err := s.local.Load()
		if err != nil {
			return fmt.Errorf("load local state: %w", err)
		}
		if blob != nil {
			s.mu.Lock()
			s.data = blob.Normalized()
			s.mu.Unlock()
		}
	}

	if s.remote == nil || !s.remote.Configured() {
		s.mu.Lock()
		empty := len(s.data.Filaments) == 0 && len(s.data.PrintedParts) == 0 && len(s.data.Projects) == 0
		if empty && s.seed {
			s.data = SeedCollections()
		}
		snap := s.data.Clone()
		s.mu.Unlock()
		if s.local != nil {
			if err := s.local.Save(snap); err != nil {
				s.log.Error().Err(err).Msg("local save failed")
			}
		}
		return nil
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	go func() {
		remote, err := s.remote.Load(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("initial remote load failed, continuing on local state")
		} else if remote != nil {
			s.replaceAll(*remote)
		}
		stop := s.remote.Subscribe(s.replaceAll)
		s.mu.Lock()
		s.loading = false
		s.stopRemote = stop
		s.mu.Unlock()
	}()
	return nil
}

// Close stops the remote subscription. The local store is owned by the
// caller and closed separately.
func (s *Store) Close() {
	s.mu.Lock()
	stop := s.stopRemote
	s.stopRemote = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Loading reports whether the initial remote load is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Syncing reports whether remote sync is configured for this session.
func (s *Store) Syncing() bool {
	return s.remote != nil && s.remote.Configured()
}

// Snapshot returns a deep copy of the current collections.
func (s *Store) Snapshot() models.Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Subscribe registers fn to receive a snapshot after every state change,
// whether caused by a local mutation or a remote push. The returned func
// cancels the subscription.
func (s *Store) Subscribe(fn func(models.Collections)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// replaceAll adopts a full snapshot pushed from the remote store. The whole
// document is replaced, last write wins, no merge. The local blob is
// rewritten but the change is not echoed back to the remote.
func (s *Store) replaceAll(c models.Collections) {
	s.mu.Lock()
	s.data = c.Normalized().Clone()
	snap := s.data.Clone()
	s.mu.Unlock()

	if s.local != nil {
		if err := s.local.Save(snap); err != nil {
			s.log.Error().Err(err).Msg("local save failed")
		}
	}
	s.notify(snap)
}

// persist writes a snapshot locally, fires the remote save without waiting
// for it, and fans the snapshot out to subscribers. A failed remote save is
// only logged; the next mutation implicitly retries by pushing a fresh
// snapshot.
func (s *Store) persist(snap models.Collections) {
	if s.local != nil {
		if err := s.local.Save(snap); err != nil {
			s.log.Error().Err(err).Msg("local save failed")
		}
	}
	if s.remote != nil && s.remote.Configured() {
		go func() {
			if err := s.remote.Save(context.Background(), snap); err != nil {
				s.log.Warn().Err(err).Msg("remote sync failed, local state kept")
			}
		}()
	}
	s.notify(snap)
}

func (s *Store) notify(snap models.Collections) {
	s.subMu.Lock()
	fns := make([]func(models.Collections), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// AddFilament assigns a fresh id and appends the record. The created record
// is returned so callers can use the id immediately, e.g. to show its QR
// code.
func (s *Store) AddFilament(data models.Filament) models.Filament {
	s.mu.Lock()
	data.ID = uuid.New().String()
	s.data.Filaments = append(s.data.Filaments, data)
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
	return data
}

// UpdateFilament replaces the record matching filament.ID wholesale. The
// remaining weight is taken as given: manual stock corrections bypass the
// part-driven reconciliation on purpose. Unknown ids are ignored.
func (s *Store) UpdateFilament(filament models.Filament) {
	s.mu.Lock()
	for i := range s.data.Filaments {
		if s.data.Filaments[i].ID == filament.ID {
			s.data.Filaments[i] = filament
			break
		}
	}
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
}

// DeleteFilament removes the record. Printed parts referencing it are left
// in place with a dangling filamentId.
func (s *Store) DeleteFilament(id string) {
	s.mu.Lock()
	kept := s.data.Filaments[:0]
	for _, f := range s.data.Filaments {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.data.Filaments = kept
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
}

// AddPrintedPart assigns a fresh id, appends the part, and debits its weight
// from the referenced filament, floored at zero. When the filament does not
// exist the part is still recorded with no filament side-effect. Both
// collections change in the same transition.
func (s *Store) AddPrintedPart(data models.PrintedPart) models.PrintedPart {
	s.mu.Lock()
	data.ID = uuid.New().String()
	s.data.PrintedParts = append(s.data.PrintedParts, data)
	if f := s.data.FindFilament(data.FilamentID); f != nil {
		f.RemainingWeight = floorZero(f.RemainingWeight - data.WeightUsed)
	}
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
	return data
}

// UpdatePrintedPart replaces the part matching part.ID and reconciles the
// filament weight:
//
//   - same filament: the weight delta is applied once, floored at zero, so a
//     smaller weight gives grams back;
//   - filament changed: the old weight is credited back to the old filament
//     (uncapped) and the new weight debited from the new one (floored);
//   - previous version not found: nothing to reconcile against, no
//     adjustment is made.
func (s *Store) UpdatePrintedPart(part models.PrintedPart) {
	s.mu.Lock()
	var oldPart *models.PrintedPart
	for i := range s.data.PrintedParts {
		if s.data.PrintedParts[i].ID == part.ID {
			prev := s.data.PrintedParts[i]
			oldPart = &prev
			s.data.PrintedParts[i] = part
			break
		}
	}
	if oldPart != nil {
		if oldPart.FilamentID == part.FilamentID {
			if f := s.data.FindFilament(part.FilamentID); f != nil {
				diff := part.WeightUsed - oldPart.WeightUsed
				f.RemainingWeight = floorZero(f.RemainingWeight - diff)
			}
		} else {
			if old := s.data.FindFilament(oldPart.FilamentID); old != nil {
				old.RemainingWeight += oldPart.WeightUsed
			}
			if next := s.data.FindFilament(part.FilamentID); next != nil {
				next.RemainingWeight = floorZero(next.RemainingWeight - part.WeightUsed)
			}
		}
	}
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
}

// DeletePrintedPart removes the part and credits its weight back to the
// referenced filament if that filament still exists. The credit is not
// capped at the spool's total weight.
func (s *Store) DeletePrintedPart(id string) {
	s.mu.Lock()
	var deleted *models.PrintedPart
	kept := s.data.PrintedParts[:0]
	for _, p := range s.data.PrintedParts {
		if p.ID == id {
			prev := p
			deleted = &prev
			continue
		}
		kept = append(kept, p)
	}
	s.data.PrintedParts = kept
	if deleted != nil {
		if f := s.data.FindFilament(deleted.FilamentID); f != nil {
			f.RemainingWeight += deleted.WeightUsed
		}
	}
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
}

// AddProject assigns a fresh id and appends the project.
func (s *Store) AddProject(data models.Project) models.Project {
	s.mu.Lock()
	data.ID = uuid.New().String()
	s.data.Projects = append(s.data.Projects, data)
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
	return data
}

// UpdateProject replaces the project matching project.ID. Unknown ids are
// ignored.
func (s *Store) UpdateProject(project models.Project) {
	s.mu.Lock()
	for i := range s.data.Projects {
		if s.data.Projects[i].ID == project.ID {
			s.data.Projects[i] = project
			break
		}
	}
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
}

// DeleteProject removes the project. Parts that referenced it keep their
// projectId; readers treat the dangling reference as "ungrouped".
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	kept := s.data.Projects[:0]
	for _, p := range s.data.Projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.data.Projects = kept
	snap := s.data.Clone()
	s.mu.Unlock()

	s.persist(snap)
}

// Filament returns a copy of the filament with the given id.
func (s *Store) Filament(id string) (models.Filament, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := s.data.FindFilament(id); f != nil {
		out := *f
		if f.Price != nil {
			price := *f.Price
			out.Price = &price
		}
		return out, true
	}
	return models.Filament{}, false
}

// PrintedPart returns a copy of the part with the given id.
func (s *Store) PrintedPart(id string) (models.PrintedPart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.data.FindPart(id); p != nil {
		return *p, true
	}
	return models.PrintedPart{}, false
}

// Project returns a copy of the project with the given id.
func (s *Store) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.data.FindProject(id); p != nil {
		return *p, true
	}
	return models.Project{}, false
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

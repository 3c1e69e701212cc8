package downloads

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dronesimulator/admin/internal/platform/telemetry/metrics"
	"github.com/dronesimulator/admin/internal/platform/timeouts"
	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
)

// SuccessMessage is the downloads endpoint's success message.
const SuccessMessage = "Success"

// ErrTokenRequired is returned by Delete when the session holds no token.
var ErrTokenRequired = errors.New("auth token is required")

// Backend is the subset of the backend client the view calls.
type Backend interface {
	GetAllDownloads(ctx context.Context, adminEmail string) (backend.DownloadsResponse, error)
	DeleteDownloadRecord(ctx context.Context, token, email string) error
}

type heldSet struct {
	records   []Record
	touchedAt time.Time
}

// Service holds one record set per session and mediates fetch and delete.
type Service struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time

	mu   sync.Mutex
	held map[string]*heldSet
}

// NewService returns a service whose held sets expire after ttl idle. A
// non-positive ttl uses timeouts.SessionIdle.
func NewService(b Backend, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = timeouts.SessionIdle
	}
	return &Service{
		backend: b,
		ttl:     ttl,
		now:     time.Now,
		held:    make(map[string]*heldSet),
	}
}

// Loaded reports whether session already holds a record set.
func (s *Service) Loaded(session string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveLocked(session) != nil
}

// Load fetches the records for adminEmail and replaces the held set. A blank
// adminEmail skips the call. Any failure or unexpected response yields an
// empty set and a log line; Load never reports an error to the caller.
func (s *Service) Load(ctx context.Context, session, adminEmail string) []Record {
	records := s.fetch(ctx, adminEmail)
	s.mu.Lock()
	s.held[session] = &heldSet{records: records, touchedAt: s.now()}
	s.sweepLocked()
	s.mu.Unlock()
	return cloneRecords(records)
}

func (s *Service) fetch(ctx context.Context, adminEmail string) []Record {
	if strings.TrimSpace(adminEmail) == "" {
		return []Record{}
	}
	resp, err := s.backend.GetAllDownloads(ctx, adminEmail)
	if err != nil {
		log.Printf("downloads fetch failed: %v", err)
		return []Record{}
	}
	if resp.Message != SuccessMessage {
		log.Printf("downloads fetch unexpected message=%q", resp.Message)
		return []Record{}
	}
	records, err := DecodeRecords(resp.Downloads)
	if err != nil {
		log.Printf("downloads fetch decode: %v", err)
		return []Record{}
	}
	return records
}

// Records returns a copy of the held set.
func (s *Service) Records(session string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.liveLocked(session)
	if set == nil {
		return []Record{}
	}
	set.touchedAt = s.now()
	return cloneRecords(set.records)
}

// Find returns the first held record with email.
func (s *Service) Find(session, email string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.liveLocked(session)
	if set == nil {
		return Record{}, false
	}
	for _, record := range set.records {
		if record.Email == email {
			return cloneRecord(record), true
		}
	}
	return Record{}, false
}

// Delete asks the backend to delete email's records and, on success, drops
// every held record with that email. On failure the held set is unchanged.
func (s *Service) Delete(ctx context.Context, session, token, email string) (err error) {
	defer func() { metrics.ObserveDelete(err == nil) }()

	if strings.TrimSpace(token) == "" {
		return ErrTokenRequired
	}
	if err := s.backend.DeleteDownloadRecord(ctx, token, email); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.liveLocked(session)
	if set == nil {
		return nil
	}
	kept := make([]Record, 0, len(set.records))
	for _, record := range set.records {
		if record.Email != email {
			kept = append(kept, record)
		}
	}
	set.records = kept
	set.touchedAt = s.now()
	return nil
}

// Forget drops the held set of session.
func (s *Service) Forget(session string) {
	s.mu.Lock()
	delete(s.held, session)
	s.mu.Unlock()
}

func (s *Service) liveLocked(session string) *heldSet {
	set, ok := s.held[session]
	if !ok {
		return nil
	}
	if s.now().Sub(set.touchedAt) > s.ttl {
		delete(s.held, session)
		return nil
	}
	return set
}

func (s *Service) sweepLocked() {
	now := s.now()
	for session, set := range s.held {
		if now.Sub(set.touchedAt) > s.ttl {
			delete(s.held, session)
		}
	}
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, record := range records {
		out[i] = cloneRecord(record)
	}
	return out
}

func cloneRecord(r Record) Record {
	if r.DownloadHistory != nil {
		r.DownloadHistory = append([]string(nil), r.DownloadHistory...)
	}
	return r
}

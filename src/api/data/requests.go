package data

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greenlink-tr/greenlink/src/api/types"
)

// requestsDoc matches the historical on-disk layout so existing data files
// load unchanged.
type requestsDoc struct {
	Requests []types.EventRequest `json:"requests"`
}

// RequestStore is the append-only home of volunteer event proposals. Records
// are never updated or deleted.
type RequestStore struct {
	path string
	mu   sync.Mutex
}

func NewRequestStore(path string) *RequestStore {
	return &RequestStore{path: path}
}

// Submit stamps the record with a fresh id and creation time and appends it.
// The id doubles as the poll-item id for the submitted event.
func (s *RequestStore) Submit(rec types.EventRequest) (types.EventRequest, error) {
	rec.ID = "req-" + uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	if rec.Motivation == nil {
		rec.Motivation = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	doc.Requests = append(doc.Requests, rec)
	if err := writeJSON(s.path, doc); err != nil {
		log.Printf("requests: write %s: %v", s.path, err)
		return types.EventRequest{}, err
	}
	return rec, nil
}

// All returns every stored request in submission order.
func (s *RequestStore) All() []types.EventRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Requests
}

func (s *RequestStore) load() requestsDoc {
	var doc requestsDoc
	if err := readJSON(s.path, &doc); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("requests: read %s: %v", s.path, err)
		}
		return requestsDoc{Requests: []types.EventRequest{}}
	}
	if doc.Requests == nil {
		doc.Requests = []types.EventRequest{}
	}
	return doc
}

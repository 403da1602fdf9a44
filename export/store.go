package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"
)

// Store holds the export files of recent runs. Files live under one
// directory per run and are removed once the run is older than the TTL.
type Store struct {
	dir  string
	ttl  time.Duration
	runs map[string]time.Time
	lock sync.RWMutex
}

func NewStore(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{
		dir:  dir,
		ttl:  ttl,
		runs: map[string]time.Time{},
	}, nil
}

// InitStore creates the store and starts the periodic sweep.
func InitStore(dir string, ttl time.Duration) (*Store, error) {
	store, err := NewStore(dir, ttl)
	if err != nil {
		return nil, err
	}

	s := gocron.NewScheduler()
	job := s.Every(60).Seconds()
	job.Do(store.Sweep)
	go s.Start()

	return store, nil
}

// Put writes a fully formed export file for a run. The file only becomes
// visible once completely written.
func (s *Store) Put(run, name string, data []byte) error {
	if err := checkComponent(run); err != nil {
		return err
	}
	if err := checkComponent(name); err != nil {
		return err
	}

	dir := filepath.Join(s.dir, run)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		return err
	}

	s.lock.Lock()
	s.runs[run] = time.Now()
	s.lock.Unlock()

	return nil
}

// Open reads back an export file.
func (s *Store) Open(run, name string) ([]byte, error) {
	if err := checkComponent(run); err != nil {
		return nil, err
	}
	if err := checkComponent(name); err != nil {
		return nil, err
	}

	s.lock.RLock()
	_, found := s.runs[run]
	s.lock.RUnlock()
	if !found {
		return nil, fmt.Errorf("unknown run %s", run)
	}

	return os.ReadFile(filepath.Join(s.dir, run, name))
}

// Sweep removes every run older than the TTL.
func (s *Store) Sweep() {
	s.lock.Lock()
	defer s.lock.Unlock()

	limit := time.Now().Add(-s.ttl)
	for run, created := range s.runs {
		if created.After(limit) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, run)); err != nil {
			log.Warnf("sweep run %s: %v", run, err)
			continue
		}
		log.Debugf("swept run %s", run)
		delete(s.runs, run)
	}
}

func checkComponent(c string) error {
	if c == "" || c == "." || c == ".." || strings.ContainsAny(c, `/\`) {
		return fmt.Errorf("invalid name %q", c)
	}
	return nil
}

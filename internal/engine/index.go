package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/repository"
)

type indexState int

const (
	stateUninitialized indexState = iota
	stateBuilding
	stateReady
)

// IndexEntry pairs a normalized application number with the flattened
// searchable text derived from its record.
type IndexEntry struct {
	AppNo string
	Text  string
}

// PatentIndex owns the in-memory normalized view of the patent corpus,
// keyed by normalized application number. Building follows an explicit
// uninitialized → building → ready state machine: concurrent callers of
// Ensure wait for the in-flight build, and a failed build leaves any
// previously built index untouched so a later call retries.
type PatentIndex struct {
	source repository.RecordSource
	logger *log.Logger

	mu        sync.RWMutex
	state     indexState
	buildDone chan struct{}
	records   map[string]models.PatentRecord
	texts     map[string]string
	entries   []IndexEntry
}

// NewPatentIndex creates an empty index over the given record source
func NewPatentIndex(source repository.RecordSource, logger *log.Logger) *PatentIndex {
	if logger == nil {
		logger = log.New(log.Writer(), "[INDEX] ", log.LstdFlags)
	}
	return &PatentIndex{source: source, logger: logger}
}

// Ensure builds the index if it has not been built yet. It is safe to call
// from concurrent requests; at most one build runs at a time.
func (ix *PatentIndex) Ensure(ctx context.Context) error {
	return ix.build(ctx, false)
}

// Rebuild forces a full rebuild from the record source. Readers keep seeing
// the previous index until the new one is swapped in.
func (ix *PatentIndex) Rebuild(ctx context.Context) error {
	return ix.build(ctx, true)
}

func (ix *PatentIndex) build(ctx context.Context, force bool) error {
	ix.mu.Lock()
	for ix.state == stateBuilding {
		done := ix.buildDone
		ix.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		ix.mu.Lock()
	}
	if ix.state == stateReady && !force {
		ix.mu.Unlock()
		return nil
	}
	ix.state = stateBuilding
	done := make(chan struct{})
	ix.buildDone = done
	ix.mu.Unlock()

	records, texts, entries, err := ix.load(ctx)

	ix.mu.Lock()
	if err != nil {
		// keep whatever was built before; allow a later retry
		if ix.records != nil {
			ix.state = stateReady
		} else {
			ix.state = stateUninitialized
		}
	} else {
		ix.records = records
		ix.texts = texts
		ix.entries = entries
		ix.state = stateReady
	}
	close(done)
	ix.mu.Unlock()

	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	ix.logger.Printf("index built: %d records", len(entries))
	return nil
}

func (ix *PatentIndex) load(ctx context.Context) (map[string]models.PatentRecord, map[string]string, []IndexEntry, error) {
	if estimated, err := ix.source.EstimatedCount(ctx); err == nil {
		ix.logger.Printf("building index, ~%d records", estimated)
	}

	records := make(map[string]models.PatentRecord)
	texts := make(map[string]string)
	var order []string

	err := ix.source.ListAll(ctx, func(record models.PatentRecord) error {
		appNo := models.NormalizeApplicationNumber(record.ApplicationNumber)
		if appNo == "" {
			// records without an application number are skipped, not errored
			return nil
		}
		if _, seen := records[appNo]; !seen {
			order = append(order, appNo)
		}
		// last writer wins on duplicate numbers
		records[appNo] = record
		texts[appNo] = flattenRecord(record)
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}

	entries := make([]IndexEntry, 0, len(order))
	for _, appNo := range order {
		entries = append(entries, IndexEntry{AppNo: appNo, Text: texts[appNo]})
	}
	return records, texts, entries, nil
}

// Ready reports whether the index has completed a successful build
func (ix *PatentIndex) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.state == stateReady
}

// Get returns the record for a normalized application number
func (ix *PatentIndex) Get(appNo string) (models.PatentRecord, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	record, ok := ix.records[appNo]
	return record, ok
}

// FlattenedText returns the searchable text for a normalized application number
func (ix *PatentIndex) FlattenedText(appNo string) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	text, ok := ix.texts[appNo]
	return text, ok
}

// Entries returns the current index snapshot. The returned slice must be
// treated as read-only.
func (ix *PatentIndex) Entries() []IndexEntry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.entries
}

// Size returns the number of indexed records
func (ix *PatentIndex) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// flattenRecord renders the searchable text for a record. Every field a
// query keyword could refer to is present: titles in both languages,
// applicant, inventors, abstract, claims and classification codes.
func flattenRecord(record models.PatentRecord) string {
	var sections []string

	appNo := models.NormalizeApplicationNumber(record.ApplicationNumber)
	if appNo != "" {
		sections = append(sections, "[출원번호]\n"+appNo)
	}
	if record.Title.Ko != "" || record.Title.En != "" {
		title := record.Title.Ko
		if record.Title.En != "" {
			if title != "" {
				title += "\n" + record.Title.En
			} else {
				title = record.Title.En
			}
		}
		sections = append(sections, "[발명의 명칭]\n"+title)
	}
	if record.Abstract != "" {
		sections = append(sections, "[요약]\n"+record.Abstract)
	}
	if len(record.Claims) > 0 {
		var claims []string
		for i, claim := range record.Claims {
			claims = append(claims, fmt.Sprintf("청구항 %d\n%s", i+1, claim))
		}
		sections = append(sections, "[청구항]\n"+strings.Join(claims, "\n\n"))
	}
	if names := inventorNames(record.Inventors); names != "" {
		sections = append(sections, "[발명자]\n"+names)
	}
	if record.Applicant.Name != "" {
		sections = append(sections, "[출원인]\n"+record.Applicant.Name)
	}
	if len(record.IPCCodes) > 0 {
		sections = append(sections, "[IPC]\n"+strings.Join(record.IPCCodes, ", "))
	}
	if record.Status != "" {
		sections = append(sections, "[상태]\n"+record.Status)
	}

	return strings.Join(sections, "\n\n")
}

// inventorNames joins inventor names, dropping duplicates while keeping order
func inventorNames(inventors []models.Inventor) string {
	seen := make(map[string]struct{}, len(inventors))
	var names []string
	for _, inv := range inventors {
		if inv.Name == "" {
			continue
		}
		if _, ok := seen[inv.Name]; ok {
			continue
		}
		seen[inv.Name] = struct{}{}
		names = append(names, inv.Name)
	}
	return strings.Join(names, ", ")
}

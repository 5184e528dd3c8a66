// Package service contains the business logic layer: the in-memory working
// sets for records and communities, their validation rules, and the
// guard policies that sit between mutations and the storage gateway.
//
// THE DEPENDENCY CHAIN:
//
//	main.go creates:  Store → Services → Handlers
//	At runtime:       Handler calls Service calls Store
//
// The services own all mutable state. Handlers hold no state and the store
// holds no policy; everything that decides *whether* something may be
// persisted lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/apperror"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/filter"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/metrics"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/normalize"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/repository"
)

// Validation constants.
const (
	MinNICLength = 9
)

var partyIDPattern = regexp.MustCompile(`^\d{6}$`)

// RecordInput carries one submitted record form. Location fields arrive as
// the selector's raw value; the service resolves them against the reference
// lists exactly once, on the way in.
type RecordInput struct {
	Name             string   `json:"name"`
	NIC              string   `json:"nic"`
	DOB              string   `json:"dob"`
	PoliticalPartyID string   `json:"politicalPartyId"`
	Priority         string   `json:"priority"`
	Mobile1          string   `json:"mobile1"`
	Mobile2          string   `json:"mobile2"`
	WhatsApp         string   `json:"whatsapp"`
	HomeNumber       string   `json:"homeNumber"`
	Address          string   `json:"address"`
	Region           string   `json:"region"`
	AGADivision      string   `json:"agaDivision"`
	GSDivision       string   `json:"gsDivision"`
	PoolingBooth     string   `json:"poolingBooth"`
	Communities      []string `json:"communities"`
	Connectivity     string   `json:"connectivity"`
}

// RecordService owns the in-memory record working set.
//
// The working set is authoritative for the session: reads serve from memory,
// every mutation rewrites the whole collection through the store. lastSaved
// is the last-known-good snapshot used by two guards:
//
//   - a failed load restores the snapshot instead of presenting (and later
//     re-saving) an empty set over a non-empty file;
//   - a save of an empty set while a non-empty snapshot exists is treated as
//     an upstream bug, skipped, and the snapshot restored. Deliberately
//     clearing the collection goes through DeleteAll, which bypasses this.
//
// A single mutex serialises everything, so one save always completes before
// the next begins.
type RecordService struct {
	mu      sync.Mutex
	store   repository.Store
	norm    *normalize.Normalizer
	metrics *metrics.Metrics
	logger  *slog.Logger

	records   []model.Record // most-recent-first
	lastSaved []model.Record

	newID func() string
	now   func() time.Time
}

// NewRecordService creates a RecordService. metrics may be nil (tests).
func NewRecordService(store repository.Store, norm *normalize.Normalizer, m *metrics.Metrics, logger *slog.Logger) *RecordService {
	return &RecordService{
		store:   store,
		norm:    norm,
		metrics: m,
		logger:  logger,
		newID:   func() string { return xid.New().String() },
		now:     time.Now,
	}
}

// WithClock overrides the time source; tests pin timestamps with it.
func (s *RecordService) WithClock(now func() time.Time) *RecordService {
	s.now = now
	return s
}

// Load reads the collection from storage, normalising every record. On
// failure the previous working set survives: the error is reported for the
// UI's transient message, but a transient read problem never empties the
// session.
func (s *RecordService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.ReadRecords(ctx)
	if err != nil {
		s.metrics.IncrementStorageError("records", "read")
		if len(s.lastSaved) > 0 {
			s.records = model.CloneRecords(s.lastSaved)
			s.logger.Warn("record load failed, restored backup snapshot",
				slog.Int("count", len(s.records)),
				slog.String("error", err.Error()),
			)
		} else {
			s.logger.Error("record load failed with no backup available",
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("loading records: %w", err)
	}

	records := make([]model.Record, len(raw))
	for i, r := range raw {
		records[i] = s.norm.Record(r)
	}

	s.records = records
	s.lastSaved = model.CloneRecords(records)
	s.logger.Info("records loaded", slog.Int("count", len(records)))
	return nil
}

// List applies the field filters and slices the result into a page.
func (s *RecordService) List(spec filter.Spec, page, pageSize int) filter.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := filter.Paginate(filter.Apply(s.records, spec), page, pageSize)
	p.Records = model.CloneRecords(p.Records)
	return p
}

// Filtered returns every record matching the filter, independent of
// pagination. The export path snapshots its input through this.
func (s *RecordService) Filtered(spec filter.Spec) []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneRecords(filter.Apply(s.records, spec))
}

// Get returns one record by its opaque id.
func (s *RecordService) Get(id string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return model.Record{}, apperror.ValidationFailed("id", "record ID is required")
	}
	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i].Clone(), nil
		}
	}
	return model.Record{}, apperror.NotFound("record", id)
}

// Add validates the input, builds the record, prepends it (most-recent-first
// display ordering) and persists the collection.
func (s *RecordService) Add(ctx context.Context, in RecordInput) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.trim()
	if err := s.validate(in, ""); err != nil {
		return model.Record{}, err
	}

	lists := s.norm.Lists()
	now := s.now()
	region := normalize.ResolveField(in.Region, lists.Regions)
	gs := normalize.ResolveField(in.GSDivision, lists.GSDivisions)

	record := model.Record{
		ID:               s.newID(),
		NIC:              in.NIC,
		Name:             in.Name,
		DOB:              in.DOB,
		PoliticalPartyID: in.PoliticalPartyID,
		Priority:         in.Priority,
		RegID:            normalize.GenerateRegID(region, gs, now),
		Mobile1:          in.Mobile1,
		Mobile2:          in.Mobile2,
		WhatsApp:         in.WhatsApp,
		HomeNumber:       in.HomeNumber,
		Address:          in.Address,
		Region:           region,
		AGADivision:      normalize.ResolveField(in.AGADivision, lists.AGADivisions),
		GSDivision:       gs,
		PoolingBooth:     normalize.ResolveField(in.PoolingBooth, lists.PoolingBooths),
		Communities:      dedupeCommunities(in.Communities),
		Connectivity:     in.Connectivity,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.records = append([]model.Record{record}, s.records...)

	if err := s.save(ctx); err != nil {
		// The mutation stays in memory so the user can retry the save.
		return record.Clone(), err
	}

	s.metrics.IncrementMutation("records", "add")
	s.logger.Info("record added",
		slog.String("id", record.ID),
		slog.String("regId", record.RegID),
	)
	return record.Clone(), nil
}

// Update replaces the record with the given id in place, preserving its
// createdAt and an already-assigned RegID, and refreshing updatedAt.
func (s *RecordService) Update(ctx context.Context, id string, in RecordInput) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return model.Record{}, apperror.ValidationFailed("id", "record ID is required")
	}

	in.trim()
	if err := s.validate(in, id); err != nil {
		return model.Record{}, err
	}

	idx := -1
	for i := range s.records {
		if s.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Record{}, apperror.NotFound("record", id)
	}

	lists := s.norm.Lists()
	existing := s.records[idx]
	region := normalize.ResolveField(in.Region, lists.Regions)
	gs := normalize.ResolveField(in.GSDivision, lists.GSDivisions)

	regID := existing.RegID
	if regID == "" {
		regID = normalize.GenerateRegID(region, gs, s.now())
	}

	updated := model.Record{
		ID:               existing.ID,
		NIC:              in.NIC,
		Name:             in.Name,
		DOB:              in.DOB,
		PoliticalPartyID: in.PoliticalPartyID,
		Priority:         in.Priority,
		RegID:            regID,
		Mobile1:          in.Mobile1,
		Mobile2:          in.Mobile2,
		WhatsApp:         in.WhatsApp,
		HomeNumber:       in.HomeNumber,
		Address:          in.Address,
		Region:           region,
		AGADivision:      normalize.ResolveField(in.AGADivision, lists.AGADivisions),
		GSDivision:       gs,
		PoolingBooth:     normalize.ResolveField(in.PoolingBooth, lists.PoolingBooths),
		Communities:      dedupeCommunities(in.Communities),
		Connectivity:     in.Connectivity,
		CreatedAt:        existing.CreatedAt,
		UpdatedAt:        s.now(),
	}
	s.records[idx] = updated

	if err := s.save(ctx); err != nil {
		return updated.Clone(), err
	}

	s.metrics.IncrementMutation("records", "update")
	s.logger.Info("record updated", slog.String("id", id))
	return updated.Clone(), nil
}

// Delete removes one record by id. The confirmed flag is the caller's
// explicit acknowledgement of the destructive prompt; without it nothing is
// touched.
func (s *RecordService) Delete(ctx context.Context, id string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return apperror.PreconditionFailed("deletion requires confirmation")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "record ID is required")
	}

	idx := -1
	for i := range s.records {
		if s.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperror.NotFound("record", id)
	}

	s.records = append(s.records[:idx], s.records[idx+1:]...)

	if err := s.save(ctx); err != nil {
		return err
	}

	s.metrics.IncrementMutation("records", "delete")
	s.logger.Info("record deleted", slog.String("id", id))
	return nil
}

// DeleteAll clears the whole collection. This is the one legitimate way to
// persist an empty set: it writes directly, bypassing the empty-save guard,
// and resets the backup snapshot so the guard doesn't resurrect the data.
func (s *RecordService) DeleteAll(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return apperror.PreconditionFailed("deleting all records requires confirmation")
	}

	count := len(s.records)
	s.records = []model.Record{}

	if err := s.store.WriteRecords(ctx, s.records); err != nil {
		s.metrics.IncrementStorageError("records", "write")
		s.logger.Error("failed to persist cleared record collection",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving records: %w", err)
	}

	s.lastSaved = []model.Record{}
	s.metrics.IncrementMutation("records", "delete_all")
	s.logger.Info("all records deleted", slog.Int("count", count))
	return nil
}

// Stats reports the collection totals shown on the landing page.
type Stats struct {
	TotalRecords int `json:"totalRecords"`
	TodayRecords int `json:"todayRecords"`
}

// Stats counts all records and those created today (local calendar day).
func (s *RecordService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	y, m, d := today.Date()

	st := Stats{TotalRecords: len(s.records)}
	for i := range s.records {
		cy, cm, cd := s.records[i].CreatedAt.In(today.Location()).Date()
		if cy == y && cm == m && cd == d {
			st.TodayRecords++
		}
	}
	return st
}

// CommunityNames returns every community string attached to any record, in
// first-seen order, de-duplicated. Merged with the standalone community
// collection for the suggestion list.
func (s *RecordService) CommunityNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	seen := make(map[string]bool)
	for i := range s.records {
		for _, name := range s.records[i].Communities {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// save persists the working set and refreshes the backup snapshot. Callers
// hold the mutex.
func (s *RecordService) save(ctx context.Context) error {
	// Empty-save guard: an empty working set alongside a non-empty snapshot
	// means something upstream went wrong, not that the user cleared their
	// data. Restore and skip the write.
	if len(s.records) == 0 && len(s.lastSaved) > 0 {
		s.records = model.CloneRecords(s.lastSaved)
		s.logger.Warn("prevented saving empty record collection, restored backup",
			slog.Int("count", len(s.records)),
		)
		return nil
	}

	if err := s.store.WriteRecords(ctx, s.records); err != nil {
		s.metrics.IncrementStorageError("records", "write")
		s.logger.Error("failed to save records",
			slog.Int("count", len(s.records)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving records: %w", err)
	}

	s.lastSaved = model.CloneRecords(s.records)
	return nil
}

// validate enforces the submission rules. excludeID is the id of the record
// being edited, so a record keeping its own NIC doesn't trip the uniqueness
// check.
func (s *RecordService) validate(in RecordInput, excludeID string) error {
	switch {
	case in.Name == "":
		return apperror.ValidationFailed("name", "name is required")
	case in.NIC == "":
		return apperror.ValidationFailed("nic", "NIC is required")
	case in.Address == "":
		return apperror.ValidationFailed("address", "address is required")
	case in.DOB == "":
		return apperror.ValidationFailed("dob", "date of birth is required")
	case in.PoliticalPartyID == "":
		return apperror.ValidationFailed("politicalPartyId", "Political Party ID is required")
	case in.Region == "":
		return apperror.ValidationFailed("region", "region is required")
	case in.AGADivision == "":
		return apperror.ValidationFailed("agaDivision", "AGA Division is required")
	case in.GSDivision == "":
		return apperror.ValidationFailed("gsDivision", "GS Division is required")
	case in.PoolingBooth == "":
		return apperror.ValidationFailed("poolingBooth", "Pooling Booth is required")
	}

	if len(in.NIC) < MinNICLength {
		return apperror.ValidationFailed("nic",
			fmt.Sprintf("NIC must be at least %d characters long", MinNICLength))
	}
	if !partyIDPattern.MatchString(in.PoliticalPartyID) {
		return apperror.ValidationFailed("politicalPartyId", "Political Party ID must be exactly 6 digits")
	}
	if _, err := time.Parse("2006-01-02", in.DOB); err != nil {
		return apperror.ValidationFailed("dob", "date of birth must be a valid YYYY-MM-DD date")
	}
	if !model.ValidPriority(in.Priority) {
		return apperror.ValidationFailed("priority", "priority must be one of 1-5")
	}

	for i := range s.records {
		if s.records[i].ID == excludeID {
			continue
		}
		if strings.TrimSpace(s.records[i].NIC) == in.NIC {
			return apperror.Conflict("nic", "this NIC number already exists")
		}
	}

	return nil
}

// trim mirrors the form handling: every free-text field is whitespace-trimmed
// before validation.
func (in *RecordInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.NIC = strings.TrimSpace(in.NIC)
	in.DOB = strings.TrimSpace(in.DOB)
	in.PoliticalPartyID = strings.TrimSpace(in.PoliticalPartyID)
	in.Mobile1 = strings.TrimSpace(in.Mobile1)
	in.Mobile2 = strings.TrimSpace(in.Mobile2)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	in.HomeNumber = strings.TrimSpace(in.HomeNumber)
	in.Address = strings.TrimSpace(in.Address)
	in.Connectivity = strings.TrimSpace(in.Connectivity)
	for i, c := range in.Communities {
		in.Communities[i] = strings.TrimSpace(c)
	}
}

func dedupeCommunities(values []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

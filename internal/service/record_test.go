package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/apperror"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/filter"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/normalize"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/refdata"
)

// mockStore is a hand-written test double for repository.Store. Set the
// fail* flags to simulate storage faults; writes are captured so tests can
// assert exactly what would have hit disk.
type mockStore struct {
	records     []model.Record
	communities []model.Community

	failReadRecords  bool
	failWriteRecords bool
	writeCalls       int
	lastWritten      []model.Record
}

func (m *mockStore) ReadRecords(ctx context.Context) ([]model.Record, error) {
	if m.failReadRecords {
		return nil, errors.New("mock: read failure")
	}
	return model.CloneRecords(m.records), nil
}

func (m *mockStore) WriteRecords(ctx context.Context, records []model.Record) error {
	m.writeCalls++
	if m.failWriteRecords {
		return errors.New("mock: write failure")
	}
	m.lastWritten = model.CloneRecords(records)
	m.records = model.CloneRecords(records)
	return nil
}

func (m *mockStore) ReadCommunities(ctx context.Context) ([]model.Community, error) {
	return model.CloneCommunities(m.communities), nil
}

func (m *mockStore) WriteCommunities(ctx context.Context, communities []model.Community) error {
	m.communities = model.CloneCommunities(communities)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecordService(store *mockStore) *RecordService {
	svc := NewRecordService(store, normalize.New(refdata.Default()), nil, testLogger())
	return svc.WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	})
}

func validInput() RecordInput {
	return RecordInput{
		Name:             "Kamala Perera",
		NIC:              "912345678V",
		DOB:              "1991-03-21",
		PoliticalPartyID: "123456",
		Priority:         "3",
		Address:          "12 Temple Road, Jaffna",
		Region:           "NR",
		AGADivision:      "AGA-02",
		GSDivision:       "GS-104",
		PoolingBooth:     "PB-01",
		Communities:      []string{"fishing", "fishing", "weavers"},
	}
}

func TestAdd_PrependsAndPersists(t *testing.T) {
	store := &mockStore{}
	svc := testRecordService(store)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	first, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	second := validInput()
	second.NIC = "887654321V"
	second.Name = "Nimal Silva"
	added, err := svc.Add(context.Background(), second)
	if err != nil {
		t.Fatalf("Add second: %v", err)
	}

	page := svc.List(filter.Spec{}, 1, 25)
	if page.TotalRecords != 2 {
		t.Fatalf("expected 2 records, got %d", page.TotalRecords)
	}
	// Newest record must come first.
	if page.Records[0].ID != added.ID || page.Records[1].ID != first.ID {
		t.Errorf("expected newest-first ordering, got %s then %s",
			page.Records[0].ID, page.Records[1].ID)
	}
	if len(store.lastWritten) != 2 {
		t.Errorf("expected persisted collection of 2, got %d", len(store.lastWritten))
	}
}

func TestAdd_GeneratesRegIDAndDedupesCommunities(t *testing.T) {
	svc := testRecordService(&mockStore{})

	record, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if record.ID == "" {
		t.Error("expected a generated ID")
	}
	// Initials of "Northern" and "Colombo-04" plus the clock's millisecond tail.
	if got, want := record.RegID[:6], "NO-CO-"; got != want {
		t.Errorf("RegID prefix = %q, want %q", got, want)
	}
	if len(record.Communities) != 2 {
		t.Errorf("expected deduplicated communities, got %v", record.Communities)
	}
	if record.Region == nil || record.Region.Label != "Northern" {
		t.Errorf("expected region resolved to Northern, got %+v", record.Region)
	}
}

func TestAdd_ValidationRules(t *testing.T) {
	svc := testRecordService(&mockStore{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RecordInput)
	}{
		{"missing name", func(in *RecordInput) { in.Name = "" }},
		{"missing nic", func(in *RecordInput) { in.NIC = "" }},
		{"short nic", func(in *RecordInput) { in.NIC = "12345678" }},
		{"missing address", func(in *RecordInput) { in.Address = "" }},
		{"party id not six digits", func(in *RecordInput) { in.PoliticalPartyID = "12345" }},
		{"party id non-numeric", func(in *RecordInput) { in.PoliticalPartyID = "12a456" }},
		{"bad dob", func(in *RecordInput) { in.DOB = "21-03-1991" }},
		{"bad priority", func(in *RecordInput) { in.Priority = "9" }},
		{"missing region", func(in *RecordInput) { in.Region = "" }},
		{"missing booth", func(in *RecordInput) { in.PoolingBooth = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Add(ctx, in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAdd_RejectsDuplicateNIC(t *testing.T) {
	svc := testRecordService(&mockStore{})
	ctx := context.Background()

	if _, err := svc.Add(ctx, validInput()); err != nil {
		t.Fatalf("Add: %v", err)
	}

	dup := validInput()
	dup.Name = "Someone Else"
	_, err := svc.Add(ctx, dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict error for duplicate NIC, got %v", err)
	}
}

func TestUpdate_KeepsOwnNICAndPreservesIdentity(t *testing.T) {
	svc := testRecordService(&mockStore{})
	ctx := context.Background()

	record, err := svc.Add(ctx, validInput())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	in := validInput() // same NIC as the record being edited
	in.Name = "Kamala P. Perera"
	updated, err := svc.Update(ctx, record.ID, in)
	if err != nil {
		t.Fatalf("Update with own NIC should succeed: %v", err)
	}
	if updated.Name != "Kamala P. Perera" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.RegID != record.RegID {
		t.Errorf("RegID changed on edit: %q -> %q", record.RegID, updated.RegID)
	}
	if !updated.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("createdAt changed on edit")
	}
}

func TestUpdate_RejectsAnotherRecordsNIC(t *testing.T) {
	svc := testRecordService(&mockStore{})
	ctx := context.Background()

	if _, err := svc.Add(ctx, validInput()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	second := validInput()
	second.NIC = "887654321V"
	target, err := svc.Add(ctx, second)
	if err != nil {
		t.Fatalf("Add second: %v", err)
	}

	in := validInput() // NIC belongs to the first record
	_, err = svc.Update(ctx, target.ID, in)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := testRecordService(&mockStore{})

	_, err := svc.Update(context.Background(), "missing", validInput())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	svc := testRecordService(&mockStore{})
	ctx := context.Background()

	record, err := svc.Add(ctx, validInput())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(ctx, record.ID, false); !errors.Is(err, apperror.ErrPrecondition) {
		t.Fatalf("unconfirmed delete: expected precondition error, got %v", err)
	}
	if _, err := svc.Get(record.ID); err != nil {
		t.Fatalf("record should still exist after refused delete: %v", err)
	}

	if err := svc.Delete(ctx, record.ID, true); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if _, err := svc.Get(record.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
}

func TestLoad_ReadFailureRestoresBackup(t *testing.T) {
	store := &mockStore{records: seedRecords(5)}
	svc := testRecordService(store)
	ctx := context.Background()

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("initial Load: %v", err)
	}

	store.failReadRecords = true
	if err := svc.Load(ctx); err == nil {
		t.Fatal("expected error from failed load")
	}

	// The 5-record working set must survive the failed reload.
	page := svc.List(filter.Spec{}, 1, 25)
	if page.TotalRecords != 5 {
		t.Fatalf("expected backup of 5 records after failed load, got %d", page.TotalRecords)
	}
}

func TestSave_EmptyCollectionGuard(t *testing.T) {
	store := &mockStore{records: seedRecords(3)}
	svc := testRecordService(store)
	ctx := context.Background()

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Empty the working set behind the service's back, the way an upstream
	// defect would, then exercise save directly.
	svc.mu.Lock()
	svc.records = nil
	err := svc.save(ctx)
	restored := len(svc.records)
	svc.mu.Unlock()

	if err != nil {
		t.Fatalf("guarded save should not error: %v", err)
	}
	if restored != 3 {
		t.Fatalf("expected snapshot of 3 records restored, got %d", restored)
	}
	if len(store.records) != 3 {
		t.Fatalf("stored collection should be untouched, got %d", len(store.records))
	}
}

func TestDeleteAll_BypassesEmptySaveGuard(t *testing.T) {
	store := &mockStore{records: seedRecords(3)}
	svc := testRecordService(store)
	ctx := context.Background()

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := svc.DeleteAll(ctx, false); !errors.Is(err, apperror.ErrPrecondition) {
		t.Fatalf("unconfirmed delete-all: expected precondition error, got %v", err)
	}

	if err := svc.DeleteAll(ctx, true); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if len(store.records) != 0 {
		t.Fatalf("expected empty persisted collection, got %d", len(store.records))
	}
	// The snapshot is reset too, so a later save doesn't resurrect data.
	if page := svc.List(filter.Spec{}, 1, 25); page.TotalRecords != 0 {
		t.Fatalf("expected empty working set, got %d", page.TotalRecords)
	}
}

func TestAdd_WriteFailureKeepsMutationInMemory(t *testing.T) {
	store := &mockStore{}
	svc := testRecordService(store)
	ctx := context.Background()

	store.failWriteRecords = true
	record, err := svc.Add(ctx, validInput())
	if err == nil {
		t.Fatal("expected save error")
	}
	if _, getErr := svc.Get(record.ID); getErr != nil {
		t.Fatalf("record should stay in memory for retry: %v", getErr)
	}

	// Retry path: the next successful mutation persists it.
	store.failWriteRecords = false
	second := validInput()
	second.NIC = "887654321V"
	if _, err := svc.Add(ctx, second); err != nil {
		t.Fatalf("retry Add: %v", err)
	}
	if len(store.lastWritten) != 2 {
		t.Fatalf("expected both records persisted, got %d", len(store.lastWritten))
	}
}

func TestStats_CountsTodayByCalendarDay(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)
	store := &mockStore{records: []model.Record{
		{ID: "a", NIC: "1", CreatedAt: now.Add(-30 * time.Minute)},       // today
		{ID: "b", NIC: "2", CreatedAt: now.Add(-24 * time.Hour)},         // yesterday
		{ID: "c", NIC: "3", CreatedAt: time.Date(2024, 6, 15, 0, 0, 1, 0, time.UTC)}, // today, early
	}}
	svc := testRecordService(store).WithClock(func() time.Time { return now })
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st := svc.Stats()
	if st.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", st.TotalRecords)
	}
	if st.TodayRecords != 2 {
		t.Errorf("TodayRecords = %d, want 2", st.TodayRecords)
	}
}

func seedRecords(n int) []model.Record {
	records := make([]model.Record, n)
	for i := range records {
		records[i] = model.Record{
			ID:        string(rune('a' + i)),
			NIC:       "91234567" + string(rune('0'+i)),
			Name:      "Seed",
			CreatedAt: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return records
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadRecords_EmptyDatabase(t *testing.T) {
	db := testDB(t)

	records, err := db.ReadRecords(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestWriteRecords_RoundTripPreservesOrder(t *testing.T) {
	db := testDB(t)

	in := []model.Record{
		{ID: "newest", NIC: "3", Name: "C", Region: &model.Option{Value: "NR", Label: "Northern"}},
		{ID: "middle", NIC: "2", Name: "B", Communities: []string{"fishing"}},
		{ID: "oldest", NIC: "1", Name: "A", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	assert.NoError(t, db.WriteRecords(context.Background(), in))

	out, err := db.ReadRecords(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 3)
	// Most-recent-first collection order must survive the round trip.
	assert.Equal(t, "newest", out[0].ID)
	assert.Equal(t, "oldest", out[2].ID)
	assert.Equal(t, "Northern", out[0].Region.Label)
	assert.Equal(t, []string{"fishing"}, out[1].Communities)
}

func TestWriteRecords_ReplacesWholeCollection(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	assert.NoError(t, db.WriteRecords(ctx, []model.Record{{ID: "a", NIC: "1"}, {ID: "b", NIC: "2"}}))
	assert.NoError(t, db.WriteRecords(ctx, []model.Record{{ID: "c", NIC: "3"}}))

	out, err := db.ReadRecords(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ID)
}

func TestWriteRecords_EmptySetClears(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	assert.NoError(t, db.WriteRecords(ctx, []model.Record{{ID: "a", NIC: "1"}}))
	assert.NoError(t, db.WriteRecords(ctx, []model.Record{}))

	out, err := db.ReadRecords(ctx)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestCommunities_RoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	in := []model.Community{{
		ID:          "c1",
		Name:        "weavers",
		AGADivision: &model.Option{Value: "AGA-02", Label: "Nallur"},
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}
	assert.NoError(t, db.WriteCommunities(ctx, in))

	out, err := db.ReadCommunities(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "weavers", out[0].Name)
	assert.Equal(t, "Nallur", out[0].AGADivision.Label)
}

package subway_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/subway"
	"github.com/helixml/subway/application/service"
	"github.com/helixml/subway/domain/line"
	"github.com/helixml/subway/domain/repository"
)

func newTestClient(t *testing.T) *subway.Client {
	t.Helper()
	tmpDir := t.TempDir()
	client, err := subway.New(
		subway.WithSQLite(filepath.Join(tmpDir, "test.db")),
		subway.WithDataDir(tmpDir),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := subway.New()
	assert.ErrorIs(t, err, subway.ErrNoDatabase)
}

func TestNew_WithSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := subway.New(subway.WithSQLite(dbPath), subway.WithDataDir(tmpDir))
	require.NoError(t, err)
	defer func() { assert.NoError(t, client.Close()) }()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
	assert.Equal(t, tmpDir, client.DataDir())
}

func TestNew_UnsupportedURL(t *testing.T) {
	_, err := subway.New(subway.WithDatabaseURL("mysql://localhost/subway"))
	assert.Error(t, err)
}

func TestClient_Close_Idempotent(t *testing.T) {
	client, err := subway.New(subway.WithSQLite(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.True(t, client.Closed())
	assert.ErrorIs(t, client.Close(), subway.ErrClientClosed)
}

func TestClient_APIKeys(t *testing.T) {
	client, err := subway.New(
		subway.WithSQLite(filepath.Join(t.TempDir(), "test.db")),
		subway.WithAPIKeys("a", "b"),
	)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	keys := client.APIKeys()
	assert.Equal(t, []string{"a", "b"}, keys)

	keys[0] = "mutated"
	assert.Equal(t, "a", client.APIKeys()[0])
}

func TestClient_LineLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	names := []string{"A", "B", "C", "D"}
	ids := make(map[string]int64, len(names))
	for _, n := range names {
		st, err := client.Stations.Create(ctx, n)
		require.NoError(t, err)
		ids[n] = st.ID()
	}

	l, err := client.Lines.Create(ctx, &service.LineCreateParams{
		Name: "Line 1", Color: "blue",
		UpStationID: ids["A"], DownStationID: ids["C"], Length: 10,
	})
	require.NoError(t, err)

	l, err = client.Lines.AddSection(ctx, l.ID(), &service.SectionAddParams{
		UpStationID: ids["A"], DownStationID: ids["B"], Length: 4,
	})
	require.NoError(t, err)

	l, err = client.Lines.AddSection(ctx, l.ID(), &service.SectionAddParams{
		UpStationID: ids["C"], DownStationID: ids["D"], Length: 5,
	})
	require.NoError(t, err)

	got, err := client.Lines.Get(ctx, repository.WithID(l.ID()))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, stationNames(got))
	assert.Equal(t, 15, got.TotalLength())

	_, err = client.Lines.AddSection(ctx, l.ID(), &service.SectionAddParams{
		UpStationID: ids["A"], DownStationID: ids["D"], Length: 3,
	})
	assert.ErrorIs(t, err, line.ErrDuplicateSegment)

	got, err = client.Lines.RemoveStation(ctx, l.ID(), ids["B"])
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, stationNames(got))
	assert.Equal(t, 15, got.TotalLength())
}

func stationNames(l line.Line) []string {
	stations := l.Stations()
	names := make([]string, 0, len(stations))
	for _, st := range stations {
		names = append(names, st.Name())
	}
	return names
}

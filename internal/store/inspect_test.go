package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTablesListsUserTables(t *testing.T) {
	client, ctx := newTestClient(t)
	builder := newTestBuilder(t, client)
	require.NoError(t, builder.Build(ctx, testContinents, testCountries, testAirports))

	tables, err := client.Tables(ctx)
	require.NoError(t, err)
	require.Contains(t, tables, "airport")
	require.Contains(t, tables, "country")
	require.Contains(t, tables, "continent")
	require.Contains(t, tables, "airport_search")
}

func TestPreviewFixedColumns(t *testing.T) {
	client, ctx := newTestClient(t)
	builder := newTestBuilder(t, client)
	require.NoError(t, builder.Build(ctx, testContinents, testCountries, testAirports))

	preview, err := client.Preview(ctx, "airport", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"iata", "name", "municipality", "country_code", "timezone", "latitude", "longitude"}, preview.Columns)
	require.Len(t, preview.Rows, 2)
	require.Equal(t, "CDG", preview.Rows[0][0])
}

func TestPreviewRespectsLimit(t *testing.T) {
	client, ctx := newTestClient(t)
	builder := newTestBuilder(t, client)
	require.NoError(t, builder.Build(ctx, testContinents, testCountries, testAirports))

	preview, err := client.Preview(ctx, "airport", 1)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)
}

func TestPreviewSkipsSearchIndex(t *testing.T) {
	client, ctx := newTestClient(t)
	builder := newTestBuilder(t, client)
	require.NoError(t, builder.Build(ctx, testContinents, testCountries, testAirports))

	preview, err := client.Preview(ctx, "airport_search", 10)
	require.NoError(t, err)
	require.Empty(t, preview.Rows)

	preview, err = client.Preview(ctx, "airport_search_data", 10)
	require.NoError(t, err)
	require.Empty(t, preview.Rows)
}

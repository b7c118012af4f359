package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stationdocs/pkg/contracts/domain"
)

func TestCrossTabulateProgress(t *testing.T) {
	stations := []domain.EnrichedStation{
		station("Dusit", "Temple", "a", 1, 1, 1, 3),
		station("Dusit", "Temple", "b", 1, 1, 1, 3),
		station("Dusit", "Private", "c", 1, 1, 1, 0),
		station("Bang Kapi", "Private", "d", 1, 1, 1, 6),
	}

	tab := CrossTabulateProgress(stations, ByDistrict)
	assert.False(t, tab.HasUnknown())
	assert.Equal(t, domain.ProgressLabels(), tab.Labels)
	require.Len(t, tab.Rows, 2)

	assert.Equal(t, "Bang Kapi", tab.Rows[0].Key)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, tab.Rows[0].Counts)

	assert.Equal(t, "Dusit", tab.Rows[1].Key)
	assert.Equal(t, []int{1, 0, 0, 2, 0, 0, 0}, tab.Rows[1].Counts)
	assert.Equal(t, 3, tab.Rows[1].Total)
}

func TestCrossTabulateProgressUnknownColumn(t *testing.T) {
	stations := []domain.EnrichedStation{
		station("D1", "L1", "a", 0, 0, 0, 9),
		station("D1", "L1", "b", 0, 0, 0, -1),
		station("D2", "L1", "c", 0, 0, 0, 2),
	}

	tab := CrossTabulateProgress(stations, ByLandowner)
	require.True(t, tab.HasUnknown())
	require.Len(t, tab.Labels, 8)
	assert.Equal(t, domain.UnknownProgressLabel, tab.Labels[7])

	require.Len(t, tab.Rows, 1)
	assert.Equal(t, []int{0, 0, 1, 0, 0, 0, 0, 2}, tab.Rows[0].Counts)
}

func TestCrossTabRowSumsMatchGroupSizes(t *testing.T) {
	stations := enrichedSample(t)

	for name, key := range map[string]KeyFunc{"district": ByDistrict, "landowner": ByLandowner} {
		t.Run(name, func(t *testing.T) {
			groupSizes := make(map[string]int)
			for _, s := range stations {
				groupSizes[key(s)]++
			}

			tab := CrossTabulateProgress(stations, key)
			require.Len(t, tab.Rows, len(groupSizes))
			for _, row := range tab.Rows {
				sum := 0
				for _, n := range row.Counts {
					sum += n
				}
				assert.Equal(t, groupSizes[row.Key], sum, row.Key)
				assert.Equal(t, row.Total, sum)
			}
		})
	}
}

func TestCrossTabSheet(t *testing.T) {
	tab := CrossTabulateProgress([]domain.EnrichedStation{station("D1", "L1", "a", 0, 0, 0, 3)}, ByDistrict)
	sheet := CrossTabSheet("Progress_Code_Analysis", "DistrictName", tab)

	require.Len(t, sheet.Columns, 8)
	assert.Equal(t, "DistrictName", sheet.Columns[0])
	assert.Equal(t, "ผ่าน", sheet.Columns[4])
	assert.Equal(t, 1, sheet.IndexColumns)
	assert.Equal(t, []any{"D1", 0, 0, 0, 1, 0, 0, 0}, sheet.Rows[0])
}

package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/launchdash/internal/launch"
)

func TestLoadCSV_Testdata(t *testing.T) {
	ds, err := LoadCSV(filepath.Join("testdata", "launches.csv"))
	require.NoError(t, err)

	assert.Equal(t, 8, ds.Len())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}, ds.Sites())
	assert.Equal(t, launch.PayloadRange{Min: 0, Max: 9600}, ds.PayloadBounds())

	first := ds.Records()[0]
	assert.Equal(t, launch.Record{
		FlightNumber:           1,
		LaunchSite:             "CCAFS LC-40",
		PayloadMassKg:          0,
		BoosterVersion:         "F9 v1.0  B0003",
		BoosterVersionCategory: "v1.0",
		Class:                  launch.Failure,
	}, first)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to open dataset")
}

func TestReadCSV_MinimalColumnsAnyOrder(t *testing.T) {
	input := `class,Booster Version Category,Payload Mass (kg),Launch Site
1,FT,2500,KSC LC-39A
0, v1.1 ,  3000.5 , CCAFS LC-40
`
	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, launch.Record{
		LaunchSite:             "KSC LC-39A",
		PayloadMassKg:          2500,
		BoosterVersionCategory: "FT",
		Class:                  launch.Success,
	}, records[0])
	assert.Equal(t, "CCAFS LC-40", records[1].LaunchSite)
	assert.Equal(t, "v1.1", records[1].BoosterVersionCategory)
	assert.Equal(t, 3000.5, records[1].PayloadMassKg)
}

func TestReadCSV_ByteOrderMark(t *testing.T) {
	input := "\ufeffLaunch Site,Payload Mass (kg),Booster Version Category,class\nKSC,1,FT,1\n"
	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReadCSV_FloatOutcome(t *testing.T) {
	input := "Launch Site,Payload Mass (kg),Booster Version Category,class\nKSC,1,FT,1.0\nKSC,1,FT,0.0\n"
	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, launch.Success, records[0].Class)
	assert.Equal(t, launch.Failure, records[1].Class)
}

func TestReadCSV_Errors(t *testing.T) {
	const header = "Launch Site,Payload Mass (kg),Booster Version Category,class\n"

	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "header only",
			input:   header,
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "missing class column",
			input:   "Launch Site,Payload Mass (kg),Booster Version Category\nKSC,1,FT\n",
			wantErr: ErrMissingColumn,
			wantMsg: `"class"`,
		},
		{
			name:    "outcome out of range",
			input:   header + "KSC,1,FT,2\n",
			wantErr: ErrInvalidOutcome,
			wantMsg: "line 2",
		},
		{
			name:    "fractional outcome",
			input:   header + "KSC,1,FT,0.5\n",
			wantErr: ErrInvalidOutcome,
		},
		{
			name:    "non-numeric payload",
			input:   header + "KSC,1,FT,1\nKSC,heavy,FT,1\n",
			wantErr: ErrInvalidPayload,
			wantMsg: "line 3",
		},
		{
			name:    "negative payload",
			input:   header + "KSC,-5,FT,1\n",
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "NaN payload",
			input:   header + "KSC,NaN,FT,1\n",
			wantErr: ErrInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestReadCSV_RaggedRow(t *testing.T) {
	input := "Launch Site,Payload Mass (kg),Booster Version Category,class\nKSC,1,FT\n"
	_, err := ReadCSV(strings.NewReader(input))
	assert.Error(t, err)
}

func TestReadCSV_InvalidFlightNumber(t *testing.T) {
	input := "Flight Number,Launch Site,Payload Mass (kg),Booster Version Category,class\nfirst,KSC,1,FT,1\n"
	_, err := ReadCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Flight Number")
}

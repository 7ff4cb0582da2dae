package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery(t *testing.T) {
	t.Parallel()

	v := VehicleInfo{Make: "Freightliner", Model: "Cascadia", Year: 2019, Engine: "DD15"}
	got := BuildSearchQuery(v, []string{"SPN 3216", "FMI 4"}, "derates under load")
	require.Equal(t, "Freightliner Cascadia 2019 DD15 SPN 3216 FMI 4 derates under load", got)
}

func TestBuildSearchQueryEmptyInputs(t *testing.T) {
	t.Parallel()

	require.Empty(t, BuildSearchQuery(VehicleInfo{}, nil, ""))
	require.Empty(t, BuildSearchQuery(VehicleInfo{}, []string{"  ", ""}, "   "))
}

func TestBuildSearchQueryPartialInputs(t *testing.T) {
	t.Parallel()

	require.Equal(t, "no start", BuildSearchQuery(VehicleInfo{}, nil, "no start"))
	require.Equal(t, "Volvo D13", BuildSearchQuery(VehicleInfo{Make: "Volvo", Engine: "D13"}, nil, ""))
}

func TestBuildSearchQueryDeterministic(t *testing.T) {
	t.Parallel()

	v := VehicleInfo{Make: "Peterbilt", Model: "579", Year: 2021, Engine: "MX-13"}
	codes := []string{"P226C"}
	first := BuildSearchQuery(v, codes, "low boost")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, BuildSearchQuery(v, codes, "low boost"))
	}
}

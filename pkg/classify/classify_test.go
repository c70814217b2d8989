package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptrI32(v int32) *int32    { return &v }
func ptrStr(v string) *string { return &v }

// B1: MagicBean:5.9.9 classifies as zcashd; MagicBean:6.0.0 as flux.
func TestClientOfMagicBeanMajorBoundary(t *testing.T) {
	require.Equal(t, Zcashd, ClientOf("/MagicBean:5.9.9/"))
	require.Equal(t, Flux, ClientOf("/MagicBean:6.0.0/"))
}

func TestClientOfZebraAndOther(t *testing.T) {
	require.Equal(t, Zebra, ClientOf("/Zebra:1.0.0/"))
	require.Equal(t, Other, ClientOf("/Foo/"))
	require.Equal(t, Flux, ClientOf("/MagicBean:5.4.2-flux/"))
}

// B2: height exactly 2,500,000 fails relevance.
func TestIsRelevantHeightBoundary(t *testing.T) {
	ua := "/MagicBean:5.4.2/"
	require.False(t, IsRelevant(&ua, ptrI32(2_500_000), 2_500_000))
	require.True(t, IsRelevant(&ua, ptrI32(2_500_001), 2_500_001))
}

func TestIsRelevantRejectsFluxAndMissingFields(t *testing.T) {
	flux := "/MagicBean:5.4.2-flux/"
	require.False(t, IsRelevant(&flux, ptrI32(2_700_000), 2_700_000))
	require.False(t, IsRelevant(nil, ptrI32(2_700_000), 2_700_000))
	require.False(t, IsRelevant(ptrStr("/MagicBean:5.4.2/"), nil, 2_700_000))
}

func TestIsRelevantHeightDeltaPerClient(t *testing.T) {
	zebra := "/Zebra:1.0.0/"
	require.True(t, IsRelevant(&zebra, ptrI32(2_700_000), 2_719_000))
	require.False(t, IsRelevant(&zebra, ptrI32(2_700_000), 2_721_001))

	zcashd := "/MagicBean:5.4.2/"
	require.True(t, IsRelevant(&zcashd, ptrI32(2_700_000), 2_799_000))
	require.False(t, IsRelevant(&zcashd, ptrI32(2_700_000), 2_801_001))
}

// S5: classification matrix.
func TestClassificationMatrix(t *testing.T) {
	cases := []struct {
		ua   string
		want ClientType
	}{
		{"/MagicBean:5.4.2/", Zcashd},
		{"/MagicBean:6.0.0/", Flux},
		{"/Zebra:1.0.0/", Zebra},
		{"/MagicBean:5.4.2-flux/", Flux},
		{"/Foo/", Other},
	}
	counts := map[ClientType]int{}
	for _, c := range cases {
		got := ClientOf(c.ua)
		require.Equal(t, c.want, got)
		counts[got]++
	}
	require.Equal(t, 1, counts[Zcashd])
	require.Equal(t, 1, counts[Zebra])
	require.Equal(t, 2, counts[Flux])
	require.Equal(t, 1, counts[Other])
}

func TestNetworkTypeOf(t *testing.T) {
	ua := "/MagicBean:5.4.2/"
	require.Equal(t, Zcash, NetworkTypeOf(&ua, ptrI32(2_100_000), MainnetPort))
	require.Equal(t, Unknown, NetworkTypeOf(&ua, ptrI32(1_999_999), MainnetPort))

	fluxUA := "/MagicBean:6.0.0/"
	require.Equal(t, Unknown, NetworkTypeOf(&fluxUA, ptrI32(5_000_000), MainnetPort))

	other := "/Foo/"
	require.Equal(t, Unknown, NetworkTypeOf(&other, ptrI32(5_000_000), 9999))
}

func TestEstimateTipDefaultsWhenEmpty(t *testing.T) {
	require.Equal(t, MinRPCRelevanceHeight, EstimateTip(nil))
}

func TestEstimateTipPercentile(t *testing.T) {
	heights := make([]int32, 0, 100)
	for i := int32(1); i <= 100; i++ {
		heights = append(heights, MinRPCRelevanceHeight+i)
	}
	tip := EstimateTip(heights)
	require.Equal(t, MinRPCRelevanceHeight+95, tip)
}

// internal/record/record_test.go
package record

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOf(t *testing.T) {
	s := Status{
		Fwd:         800,
		PTT:         true,
		PWMPump:     128,
		PWMCooler:   64,
		Band:        "20m",
		AutoPWMPump: true,
		State:       true,
		Alarm:       true,
	}

	st := StateOf(s)

	assert.Equal(t, State{
		PTT:         true,
		PWMPump:     128,
		PWMCooler:   64,
		Band:        "20m",
		AutoPWMPump: true,
		State:       true,
		Alarm:       true,
	}, st)
}

func TestStateOf_TruncatesBand(t *testing.T) {
	st := StateOf(Status{Band: "0123456789abc"})
	assert.Equal(t, "012345678", st.Band)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 9, ""},
		{"20m", 9, "20m"},
		{"123456789", 9, "123456789"},
		{"1234567890", 9, "123456789"},
		{"abc", 0, ""},
		{"abc", -1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), "Truncate(%q, %d)", tt.in, tt.n)
	}
}

func TestSection_NameRoundTrip(t *testing.T) {
	for _, s := range []Section{SectionStatus, SectionSettings, SectionCalibration} {
		got, ok := ParseSection(s.Name())
		require.True(t, ok)
		require.Equal(t, s, got)
	}

	_, ok := ParseSection("state")
	require.False(t, ok)
	require.Equal(t, "", AllSections.Name())
}

func TestSection_Has(t *testing.T) {
	set := SectionStatus | SectionCalibration

	assert.True(t, set.Has(SectionStatus))
	assert.True(t, set.Has(SectionCalibration))
	assert.False(t, set.Has(SectionSettings))
	assert.False(t, set.Has(0))
	assert.True(t, AllSections.Has(set))
}

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var st Store

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st.Update(func(s *Set) {
				s.Status.PWMPump++
				s.Valid |= SectionStatus
			})
			_ = st.Snapshot()
		}(i)
	}
	wg.Wait()

	snap := st.Snapshot()
	require.Equal(t, 8, snap.Status.PWMPump)
	require.True(t, snap.Valid.Has(SectionStatus))

	// snapshots are copies
	snap.Status.PWMPump = 0
	require.Equal(t, 8, st.Snapshot().Status.PWMPump)
}

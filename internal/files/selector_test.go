package files

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"omiecli/pkg/contracts/domain"
)

func TestSelectLatest(t *testing.T) {
	d1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)

	mk := func(name string, date time.Time, revision int, zone domain.Zone) RawFile {
		return RawFile{Name: name, Date: date, Revision: revision, Zone: zone}
	}

	t.Run("highest revision kept per date and zone", func(t *testing.T) {
		selected := SelectLatest([]RawFile{
			mk("a_20251001.1", d1, 1, domain.ZoneSpain),
			mk("a_20251001.3", d1, 3, domain.ZoneSpain),
			mk("a_20251001.2", d1, 2, domain.ZoneSpain),
		})

		assert.Len(t, selected, 1)
		assert.Equal(t, "a_20251001.3", selected[0].Name)
	})

	t.Run("zones never compete", func(t *testing.T) {
		selected := SelectLatest([]RawFile{
			mk("a_20251001.1", d1, 1, domain.ZoneSpain),
			mk("a_20251001.2", d1, 2, domain.ZonePortugal),
		})

		assert.Len(t, selected, 2)
	})

	t.Run("dates never compete", func(t *testing.T) {
		selected := SelectLatest([]RawFile{
			mk("a_20251001.1", d1, 1, domain.ZoneSpain),
			mk("a_20251002.1", d2, 1, domain.ZoneSpain),
		})

		assert.Len(t, selected, 2)
	})

	t.Run("result is deterministically ordered", func(t *testing.T) {
		selected := SelectLatest([]RawFile{
			mk("a_20251002.1", d2, 1, domain.ZoneSpain),
			mk("a_20251001.2", d1, 2, domain.ZonePortugal),
			mk("a_20251001.1", d1, 1, domain.ZoneSpain),
		})

		assert.Equal(t, "a_20251001.2", selected[0].Name)
		assert.Equal(t, "a_20251001.1", selected[1].Name)
		assert.Equal(t, "a_20251002.1", selected[2].Name)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SelectLatest(nil))
	})
}

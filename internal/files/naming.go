package files

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	ierrors "omiecli/internal/errors"
	"omiecli/pkg/contracts/domain"
)

// RawFile describes one raw daily file whose name parsed successfully:
// <prefix>_<YYYYMMDD>.<revision>, where the revision suffix doubles as the
// zone indicator (.1 Spain, .2 Portugal in the default configuration).
type RawFile struct {
	Path     string
	Name     string
	Date     time.Time
	Revision int
	Zone     domain.Zone
}

// DayKey returns the (date, zone) identity of the file.
func (f RawFile) DayKey() domain.DayKey {
	return domain.DayKey{
		Year:  f.Date.Year(),
		Month: int(f.Date.Month()),
		Day:   f.Date.Day(),
		Zone:  f.Zone,
	}
}

// Namer parses raw filenames against the configured pattern and zone map.
type Namer struct {
	prefix  string
	zones   map[int]domain.Zone
	pattern *regexp.Regexp
}

// NewNamer creates a Namer for the given filename prefix and
// revision-to-zone mapping.
func NewNamer(prefix string, zones map[int]domain.Zone) *Namer {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `_(\d{8})\.(\d+)$`)
	return &Namer{prefix: prefix, zones: zones, pattern: pattern}
}

// Prefix returns the configured filename prefix.
func (n *Namer) Prefix() string {
	return n.prefix
}

// Parse extracts the calendar date, revision and zone from a raw filename.
// A name that does not match the pattern, or whose revision has no zone
// mapping, yields a NAMING_ERROR.
func (n *Namer) Parse(name string) (RawFile, error) {
	m := n.pattern.FindStringSubmatch(name)
	if m == nil {
		return RawFile{}, ierrors.Naming("filename %q does not match %s_YYYYMMDD.N", name, n.prefix)
	}

	date, err := time.Parse("20060102", m[1])
	if err != nil {
		return RawFile{}, ierrors.Naming("filename %q has invalid date %q", name, m[1])
	}

	revision, err := strconv.Atoi(m[2])
	if err != nil {
		return RawFile{}, ierrors.Naming("filename %q has invalid revision %q", name, m[2])
	}

	zone, ok := n.zones[revision]
	if !ok {
		return RawFile{}, ierrors.Naming("filename %q has unrecognized revision %d", name, revision)
	}

	return RawFile{
		Name:     name,
		Date:     date.UTC(),
		Revision: revision,
		Zone:     zone,
	}, nil
}

// SortRawFiles orders files deterministically by (date, zone, revision,
// name). Merge precedence depends on processing order, so every caller that
// feeds the merger goes through this one ordering.
func SortRawFiles(files []RawFile) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Zone != b.Zone {
			return a.Zone < b.Zone
		}
		if a.Revision != b.Revision {
			return a.Revision < b.Revision
		}
		return a.Name < b.Name
	})
}

// String implements fmt.Stringer for log output.
func (f RawFile) String() string {
	return fmt.Sprintf("%s (%s, %s, rev %d)", f.Name, f.Date.Format("2006-01-02"), f.Zone, f.Revision)
}

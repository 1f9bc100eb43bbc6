package assembler

import (
	"fmt"
	"sort"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// MaxVetFlags bounds the number of flags Vet enumerates (2^n builds).
const MaxVetFlags = 8

// VetResult is the outcome of one flag combination.
type VetResult struct {
	Flags map[string]bool
	Build *Build
	Err   error
}

// Label renders the flag combination, e.g. "use_extmem=true".
func (r VetResult) Label() string {
	return FlagLabel(r.Flags)
}

// FlagLabel renders flags sorted by name.
func FlagLabel(flags map[string]bool) string {
	if len(flags) == 0 {
		return "(no flags)"
	}
	names := make([]string, 0, len(flags))
	for n := range flags {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%t", n, flags[n])
	}
	return strings.Join(parts, ",")
}

// Vet assembles t once for every combination of its flags, so each branch
// is proven valid on its own. Flags in p are ignored. The returned error
// aggregates the failures of all branches.
func (a *Assembler) Vet(t Target, p BuildParams) ([]VetResult, error) {
	n := len(t.Flags)
	if n > MaxVetFlags {
		return nil, fmt.Errorf("target %s declares %d flags, vet enumerates at most %d", t.Name, n, MaxVetFlags)
	}

	results := make([]VetResult, 0, 1<<n)
	var errs []error
	for mask := 0; mask < 1<<n; mask++ {
		flags := make(map[string]bool, n)
		for i, f := range t.Flags {
			flags[f.Name] = mask&(1<<i) != 0
		}
		bp := p.Clone()
		bp.Flags = flags

		b, err := a.Assemble(t, bp)
		results = append(results, VetResult{Flags: flags, Build: b, Err: err})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", FlagLabel(flags), err))
		}
	}
	return results, utilerrors.NewAggregate(errs)
}

package index

import (
	"strings"

	"github.com/madfam-org/avala/internal/sync/extract"
)

// Index holds the reverse-lookup maps derived from one run's extracts. It is
// built once per run, carries no storage handles, and is passed explicitly
// into every resolver that needs it.
type Index struct {
	// StandardCommittee maps a standard code to the committee record whose
	// embedded listing names it. First writer wins when two committees claim
	// the same code.
	StandardCommittee map[string]*extract.CommitteeRecord

	// DetailByCode maps a standard code to its auxiliary detail record.
	DetailByCode map[string]extract.DetailRecord
}

func Build(b *extract.Bundle) *Index {
	idx := &Index{
		StandardCommittee: map[string]*extract.CommitteeRecord{},
		DetailByCode:      map[string]extract.DetailRecord{},
	}
	if b == nil {
		return idx
	}
	for i := range b.Committees {
		com := &b.Committees[i]
		for _, code := range com.StandardCodes {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			if _, ok := idx.StandardCommittee[code]; ok {
				continue
			}
			idx.StandardCommittee[code] = com
		}
	}
	for code, det := range b.Details {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		idx.DetailByCode[code] = det
	}
	return idx
}

package extract

// Raw extract records. The shapes are the crawler's output contract; fields
// are stored as published, cleanup happens in the resolvers.

type StandardRecord struct {
	Code       string `json:"code"`
	Title      string `json:"title"`
	Level      int    `json:"level"`
	Active     bool   `json:"active"`
	Committee  string `json:"committee"`
	Sector     string `json:"sector"`
	SectorName string `json:"sector_name"`
	Source     string `json:"source"`
}

type CommitteeRecord struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	President  string `json:"president"`
	Secretary  string `json:"secretary"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Sector     string `json:"sector"`
	// RegisteredAt is epoch milliseconds; 0 means unknown.
	RegisteredAt  int64    `json:"registered_at"`
	StandardCodes []string `json:"standards"`
}

type CertifierRecord struct {
	Key           string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	AltNames      []string `json:"alt_names"`
	NormalizedKey string   `json:"normalized_key"`
}

type CenterRecord struct {
	Key           string   `json:"id"`
	Name          string   `json:"name"`
	AltNames      []string `json:"alt_names"`
	NormalizedKey string   `json:"normalized_key"`
	StandardCodes []string `json:"standards"`
}

type DetailRecord struct {
	Occupations []string `json:"occupations"`
	Courses     []string `json:"courses"`
	Members     []string `json:"members"`
}

// Bundle holds one run's worth of loaded extracts. A nil field means the
// file was missing or unparsable; every consumer treats that as "no data".
type Bundle struct {
	Standards  []StandardRecord
	Committees []CommitteeRecord
	Certifiers []CertifierRecord
	Centers    []CenterRecord
	Matrix     map[string][]string
	Details    map[string]DetailRecord
}

// HasStandards reports whether the mandatory base extract is usable.
func (b *Bundle) HasStandards() bool {
	return b != nil && len(b.Standards) > 0
}

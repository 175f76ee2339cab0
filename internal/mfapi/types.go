package mfapi

// Scheme is the mfapi.in response for a single scheme.
type Scheme struct {
	Meta   SchemeMeta `json:"meta"`
	Data   []NAVPoint `json:"data"`
	Status string     `json:"status,omitempty"`
}

// SchemeMeta describes the scheme. Only SchemeName is guaranteed by the API.
type SchemeMeta struct {
	FundHouse      string `json:"fund_house,omitempty"`
	SchemeType     string `json:"scheme_type,omitempty"`
	SchemeCategory string `json:"scheme_category,omitempty"`
	SchemeCode     int64  `json:"scheme_code,omitempty"`
	SchemeName     string `json:"scheme_name"`
}

// NAVPoint is one raw row of the series. Both fields arrive as strings;
// Date uses the DD-MM-YYYY layout.
type NAVPoint struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

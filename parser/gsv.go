package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	gsvFields          = 4
	satellitesPerPage  = 4
	fieldsPerSatellite = 4
)

// SatelliteView is one page of a GSV listing. Pages are not merged; use
// Page, TotalPages and Complete to follow a listing across sentences.
type SatelliteView struct {
	Sentence
	TotalPages       int
	Page             int
	SatellitesInView int
	satellites       []SatelliteInfo
}

func decodeGSV(s Sentence) (*SatelliteView, error) {
	if err := s.requireFields(gsvFields); err != nil {
		return nil, err
	}
	m := &SatelliteView{Sentence: s}
	var err error
	if m.TotalPages, err = fieldToNumber[int](s.field(1)); err != nil {
		return nil, s.fieldError(1, err)
	}
	if m.Page, err = fieldToNumber[int](s.field(2)); err != nil {
		return nil, s.fieldError(2, err)
	}
	if m.SatellitesInView, err = fieldToNumber[int](s.field(3)); err != nil {
		return nil, s.fieldError(3, err)
	}
	// The last page is shortened rather than padded.
	onPage := min(satellitesPerPage, m.SatellitesInView-(m.Page-1)*satellitesPerPage)
	for i := 0; i < onPage; i++ {
		offset := gsvFields + i*fieldsPerSatellite
		if !hasContent(s.field(offset)) {
			continue
		}
		info, err := parseSatelliteInfo(s.field(offset), s.field(offset+1), s.field(offset+2), s.field(offset+3))
		if err != nil {
			return nil, s.fieldError(offset, err)
		}
		m.satellites = append(m.satellites, info)
	}
	return m, nil
}

// Satellites returns the records carried on this page.
func (m *SatelliteView) Satellites() []SatelliteInfo {
	return slices.Clone(m.satellites)
}

// Complete reports whether this is the last page of the listing.
func (m *SatelliteView) Complete() bool { return m.Page == m.TotalPages }

func (m *SatelliteView) Kind() Kind { return KindGSV }

func (m *SatelliteView) Valid() bool { return true }

func (m *SatelliteView) String() string {
	parts := make([]string, 0, len(m.satellites))
	for _, sat := range m.satellites {
		parts = append(parts, sat.String())
	}
	return fmt.Sprintf("Page %d/%d; In view: %d; %s", m.Page, m.TotalPages, m.SatellitesInView, strings.Join(parts, " | "))
}

func (m *SatelliteView) MarshalJSON() ([]byte, error) {
	type alias SatelliteView
	return json.Marshal(struct {
		*alias
		Complete   bool            `json:"Complete"`
		Satellites []SatelliteInfo `json:"Satellites"`
	}{alias: (*alias)(m), Complete: m.Complete(), Satellites: m.Satellites()})
}

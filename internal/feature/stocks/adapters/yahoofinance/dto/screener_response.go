// Package dto defines data transfer objects for Yahoo Finance screener responses.
package dto

import "encoding/json"

// FormattedNumber tolerates Yahoo's two numeric encodings: a plain number
// (12.3) or a formatted object ({"raw":12.3,"fmt":"12.30"}). Absent or null
// values decode to zero.
type FormattedNumber struct {
	Raw float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FormattedNumber) UnmarshalJSON(data []byte) error {
	n.Raw = 0
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			Raw float64 `json:"raw"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil // tolerate malformed sub-fields, keep zero
		}
		n.Raw = obj.Raw
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	n.Raw = f
	return nil
}

// Quote is a single screener hit. Every numeric sub-field is optional.
type Quote struct {
	Symbol                 string          `json:"symbol"`
	ShortName              string          `json:"shortName"`
	LongName               string          `json:"longName"`
	RegularMarketPrice     FormattedNumber `json:"regularMarketPrice"`
	RegularMarketChange    FormattedNumber `json:"regularMarketChange"`
	RegularMarketChangePct FormattedNumber `json:"regularMarketChangePercent"`
	RegularMarketVolume    FormattedNumber `json:"regularMarketVolume"`
}

// ScreenerResponse represents the JSON response from the predefined
// screener endpoint. A missing Finance envelope means the payload is
// unusable; an empty result list is valid.
type ScreenerResponse struct {
	Finance *struct {
		Result []struct {
			Quotes []Quote `json:"quotes"`
		} `json:"result"`
	} `json:"finance"`
}

package pexels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// PhotoID identifies a photo within a result set. The API sends numbers;
// pre-fetched documents written by hand sometimes carry strings.
type PhotoID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *PhotoID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("photo id: %w", err)
		}
		*id = PhotoID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("photo id: %w", err)
	}
	*id = PhotoID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so saved documents match the API.
func (id PhotoID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Photo mirrors a photo record in /v1/search responses.
type Photo struct {
	ID              PhotoID  `json:"id"`
	Width           int      `json:"width,omitempty"`
	Height          int      `json:"height,omitempty"`
	URL             string   `json:"url,omitempty"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url,omitempty"`
	Alt             string   `json:"alt,omitempty"`
	Src             PhotoSrc `json:"src"`
}

// PhotoSrc lists the image URLs Pexels renders for a photo.
type PhotoSrc struct {
	Original  string `json:"original,omitempty"`
	Large2x   string `json:"large2x,omitempty"`
	Large     string `json:"large,omitempty"`
	Medium    string `json:"medium"`
	Small     string `json:"small,omitempty"`
	Portrait  string `json:"portrait,omitempty"`
	Landscape string `json:"landscape,omitempty"`
	Tiny      string `json:"tiny,omitempty"`
}

// BestSrc returns the highest resolution suited for the enlarged view.
func (p Photo) BestSrc() string {
	switch {
	case p.Src.Large2x != "":
		return p.Src.Large2x
	case p.Src.Large != "":
		return p.Src.Large
	default:
		return p.Src.Medium
	}
}

// Label returns the accessible text for the photo, falling back to the photographer.
func (p Photo) Label() string {
	if p.Alt != "" {
		return p.Alt
	}
	return p.Photographer
}

// SearchResponse mirrors /v1/search and the pre-fetched documents.
type SearchResponse struct {
	TotalResults int     `json:"total_results,omitempty"`
	Page         int     `json:"page,omitempty"`
	PerPage      int     `json:"per_page,omitempty"`
	Photos       []Photo `json:"photos"`
	NextPage     string  `json:"next_page,omitempty"`
}

// ErrorResponse is the body Pexels sends with non-success statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrNoPhotos reports a body without a photos array.
var ErrNoPhotos = errors.New("response has no photos field")

// DecodePhotos reads a search response and returns its photos. A body
// without a photos array is rejected so unrelated JSON is not taken as an
// empty result.
func DecodePhotos(r io.Reader) ([]Photo, error) {
	var raw struct {
		Photos *[]Photo `json:"photos"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if raw.Photos == nil {
		return nil, ErrNoPhotos
	}
	photos := *raw.Photos
	if photos == nil {
		photos = []Photo{}
	}
	return photos, nil
}

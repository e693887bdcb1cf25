package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Point is one recycling location, reshaped from the Places payload to just
// the fields the front-end renders.
type Point struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PlaceID string  `json:"place_id"`
}

type Places struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewPlaces(apiKey, baseURL string) *Places {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/place"
	}
	return &Places{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		PlaceID          string  `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// RecyclingPoints text-searches recycling locations for a city. A non-OK
// Places status is an error carrying that status for the caller to surface.
func (p *Places) RecyclingPoints(ctx context.Context, city string) ([]Point, string, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("recycling point in %s Turkey", city))
	params.Set("language", "tr")
	params.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/textsearch/json?"+params.Encode(), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var body placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", err
	}

	if body.Status != "OK" {
		if body.ErrorMessage != "" {
			return nil, body.Status, fmt.Errorf("places: %s: %s", body.Status, body.ErrorMessage)
		}
		return nil, body.Status, fmt.Errorf("places: %s", body.Status)
	}

	points := make([]Point, 0, len(body.Results))
	for _, r := range body.Results {
		points = append(points, Point{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
			PlaceID: r.PlaceID,
		})
	}
	return points, body.Status, nil
}

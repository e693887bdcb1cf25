package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Event is one volunteer-relevant happening from any aggregated source.
type Event struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	When   string `json:"when"`
	Org    string `json:"org"`
	URL    string `json:"url"`
}

// EventsConfig points the aggregator at its sources. URLs default to the
// public endpoints; tests swap in local servers.
type EventsConfig struct {
	EventbriteToken string
	EventbriteURL   string
	IstanbulURL     string
	AnkaraURL       string
	IzmirURL        string
}

// Events aggregates environment events from Eventbrite and the municipal
// open-data portals. Each source fails independently: an unreachable feed is
// logged and skipped, never fatal to the whole listing.
type Events struct {
	cfg    EventsConfig
	client *http.Client
}

func NewEvents(cfg EventsConfig) *Events {
	if cfg.EventbriteURL == "" {
		cfg.EventbriteURL = "https://www.eventbriteapi.com/v3/events/search/"
	}
	if cfg.IstanbulURL == "" {
		cfg.IstanbulURL = "https://data.ibb.gov.tr/api/3/action/datastore_search?resource_id=adf7f776-cedd-4b96-878f-4a8f564c64b9"
	}
	if cfg.AnkaraURL == "" {
		cfg.AnkaraURL = "https://acikveri.ankara.bel.tr/api/3/action/datastore_search?resource_id=8b920a81-9c35-4090-be4e-94a3e3fad100"
	}
	if cfg.IzmirURL == "" {
		cfg.IzmirURL = "https://acikveri.bizizmir.com/api/data/etkinlik"
	}
	return &Events{cfg: cfg, client: &http.Client{Timeout: 15 * time.Second}}
}

// ForCity returns events from every source that applies to the city.
func (e *Events) ForCity(ctx context.Context, city string) []Event {
	var results []Event

	if e.cfg.EventbriteToken != "" {
		ev, err := e.eventbrite(ctx, city)
		if err != nil {
			log.Printf("events: eventbrite: %v", err)
		} else {
			results = append(results, ev...)
		}
	}

	var (
		ev  []Event
		err error
	)
	switch city {
	case "istanbul":
		ev, err = e.ckanFeed(ctx, "ibb", e.cfg.IstanbulURL, "İBB")
	case "ankara":
		ev, err = e.ankara(ctx)
	case "izmir":
		ev, err = e.izmir(ctx)
	}
	if err != nil {
		log.Printf("events: %s: %v", city, err)
	} else {
		results = append(results, ev...)
	}
	return results
}

func (e *Events) getJSON(ctx context.Context, rawURL string, auth string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (e *Events) eventbrite(ctx context.Context, city string) ([]Event, error) {
	u := e.cfg.EventbriteURL + "?q=environment&location.address=" + url.QueryEscape(city)

	var body struct {
		Events []struct {
			Name           struct{ Text string }  `json:"name"`
			Description    struct{ Text string }  `json:"description"`
			Start          struct{ Local string } `json:"start"`
			OrganizationID string                 `json:"organization_id"`
			URL            string                 `json:"url"`
		} `json:"events"`
	}
	if err := e.getJSON(ctx, u, "Bearer "+e.cfg.EventbriteToken, &body); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(body.Events))
	for _, ev := range body.Events {
		out = append(out, Event{
			Source: "eventbrite",
			Title:  ev.Name.Text,
			Desc:   ev.Description.Text,
			When:   ev.Start.Local,
			Org:    ev.OrganizationID,
			URL:    ev.URL,
		})
	}
	return out, nil
}

// ckanFeed reads a CKAN datastore_search response (the İstanbul portal).
func (e *Events) ckanFeed(ctx context.Context, source, rawURL, defaultOrg string) ([]Event, error) {
	var body struct {
		Result struct {
			Records []struct {
				EtkinlikAdi    string `json:"etkinlik_adi"`
				Aciklama       string `json:"aciklama"`
				EtkinlikTarihi string `json:"etkinlik_tarihi"`
				Organizasyon   string `json:"organizasyon"`
				Link           string `json:"link"`
			} `json:"records"`
		} `json:"result"`
	}
	if err := e.getJSON(ctx, rawURL, "", &body); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(body.Result.Records))
	for _, r := range body.Result.Records {
		org := r.Organizasyon
		if org == "" {
			org = defaultOrg
		}
		out = append(out, Event{
			Source: source,
			Title:  r.EtkinlikAdi,
			Desc:   r.Aciklama,
			When:   r.EtkinlikTarihi,
			Org:    org,
			URL:    r.Link,
		})
	}
	return out, nil
}

func (e *Events) ankara(ctx context.Context) ([]Event, error) {
	var body struct {
		Result struct {
			Records []struct {
				EtkinlikAdi             string `json:"EtkinlikAdi"`
				EtkinlikAciklamasi      string `json:"EtkinlikAciklamasi"`
				EtkinlikBaslangicTarihi string `json:"EtkinlikBaslangicTarihi"`
				Duzenleyen              string `json:"Duzenleyen"`
				Link                    string `json:"Link"`
			} `json:"records"`
		} `json:"result"`
	}
	if err := e.getJSON(ctx, e.cfg.AnkaraURL, "", &body); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(body.Result.Records))
	for _, r := range body.Result.Records {
		org := r.Duzenleyen
		if org == "" {
			org = "Ankara Büyükşehir"
		}
		out = append(out, Event{
			Source: "abb",
			Title:  r.EtkinlikAdi,
			Desc:   r.EtkinlikAciklamasi,
			When:   r.EtkinlikBaslangicTarihi,
			Org:    org,
			URL:    r.Link,
		})
	}
	return out, nil
}

func (e *Events) izmir(ctx context.Context) ([]Event, error) {
	var body []struct {
		EtkinlikAdi     string `json:"etkinlikAdi"`
		Detay           string `json:"detay"`
		BaslangicTarihi string `json:"baslangicTarihi"`
		Duzenleyen      string `json:"duzenleyen"`
		Kaynak          string `json:"kaynak"`
	}
	if err := e.getJSON(ctx, e.cfg.IzmirURL, "", &body); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(body))
	for _, r := range body {
		org := r.Duzenleyen
		if org == "" {
			org = "İzmir Büyükşehir"
		}
		out = append(out, Event{
			Source: "izmir",
			Title:  r.EtkinlikAdi,
			Desc:   r.Detay,
			When:   r.BaslangicTarihi,
			Org:    org,
			URL:    r.Kaynak,
		})
	}
	return out, nil
}

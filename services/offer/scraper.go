package offer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Partner offer pages grouped by spend category.
var categorySites = map[string][]string{
	"TRAVEL": {
		"https://www.makemytrip.com/offers",
		"https://www.goibibo.com/offers",
	},
	"ENTERTAINMENT": {
		"https://in.bookmyshow.com/offers",
		"https://www.paytm.com/offers/movies",
	},
	"SHOPPING": {
		"https://www.amazon.in/gp/goldbox",
		"https://www.flipkart.com/offers-store",
	},
	"DINING": {
		"https://www.zomato.com/offers",
		"https://www.swiggy.com/offers",
	},
	"FUEL": {
		"https://www.rupay.co.in/offers/fuel",
	},
}

// ScraperSource pulls offer listings off partner sites and keeps the
// entries that mention the card's bank or network. Best effort: sites
// change markup and block bots, so anything found is returned as-is with
// no dedup or ranking.
type ScraperSource struct {
	http *resty.Client
}

func NewScraperSource() *ScraperSource {
	httpClient := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; OfferSense/1.0)")

	return &ScraperSource{http: httpClient}
}

func (s *ScraperSource) Name() string { return "scraper" }

func (s *ScraperSource) FetchOffers(ctx context.Context, card CardContext) ([]Offer, error) {
	var offers []Offer

	for category, sites := range categorySites {
		for _, site := range sites {
			found, err := s.scrapeSite(ctx, site, card)
			if err != nil {
				log.Printf("Scrape failed for %s: %v", site, err)
				continue
			}
			for _, o := range found {
				o.Category = category
				offers = append(offers, o)
			}
			if len(offers) >= 20 {
				return offers, nil
			}
		}
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("no offers scraped for %s %s", card.BankName, card.Network)
	}

	return offers, nil
}

func (s *ScraperSource) scrapeSite(ctx context.Context, site string, card CardContext) ([]Offer, error) {
	resp, err := s.http.R().SetContext(ctx).Get(site)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, err
	}

	bank := strings.ToLower(card.BankName)
	network := strings.ToLower(card.Network)

	var offers []Offer
	doc.Find("[class*=offer], [class*=deal], [class*=promo]").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) > 500 {
			return
		}

		lower := strings.ToLower(text)
		if !strings.Contains(lower, bank) && !strings.Contains(lower, network) {
			return
		}

		title := text
		if idx := strings.IndexAny(text, ".\n"); idx > 0 {
			title = strings.TrimSpace(text[:idx])
		}

		offers = append(offers, Offer{
			Title:       title,
			Description: text,
		})
	})

	return offers, nil
}

package scryfall

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

// Card is the subset of a Scryfall card object the importer needs.
type Card struct {
	ID            string     `json:"id"`
	OracleID      string     `json:"oracle_id"`
	Name          string     `json:"name"`
	ReleasedAt    string     `json:"released_at"`
	Layout        string     `json:"layout"`
	ManaCost      string     `json:"mana_cost,omitempty"`
	CMC           float64    `json:"cmc"`
	TypeLine      string     `json:"type_line"`
	OracleText    string     `json:"oracle_text,omitempty"`
	ColorIdentity []string   `json:"color_identity"`
	Keywords      []string   `json:"keywords,omitempty"`
	SetCode       string     `json:"set"`
	Rarity        string     `json:"rarity"`
	CardFaces     []CardFace `json:"card_faces,omitempty"`
	Legalities    Legalities `json:"legalities"`
	Prices        Prices     `json:"prices"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string `json:"name"`
	ManaCost   string `json:"mana_cost,omitempty"`
	TypeLine   string `json:"type_line"`
	OracleText string `json:"oracle_text,omitempty"`
}

// Legalities carries the format legality strings the importer checks.
type Legalities struct {
	Commander string `json:"commander"`
}

// Prices represents the prices of a card in various currencies.
type Prices struct {
	USD     *string `json:"usd,omitempty"`
	USDFoil *string `json:"usd_foil,omitempty"`
	EUR     *string `json:"eur,omitempty"`
}

// BulkDataList represents the list of bulk data files.
type BulkDataList struct {
	Object  string     `json:"object"`
	HasMore bool       `json:"has_more"`
	Data    []BulkData `json:"data"`
}

// BulkData represents a bulk data file download.
type BulkData struct {
	ID          string    `json:"id"`
	Object      string    `json:"object"`
	Type        string    `json:"type"`
	UpdatedAt   time.Time `json:"updated_at"`
	URI         string    `json:"uri"`
	Name        string    `json:"name"`
	DownloadURI string    `json:"download_uri"`
	ContentType string    `json:"content_type"`
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 error from the API.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ToCard converts a Scryfall card into a corpus record, resolving color
// identity, mechanics, and archetype flags once here so scoring never
// re-derives them. The color_identity field is trusted when present;
// otherwise identity is derived from mana cost plus rules text.
func (sc *Card) ToCard() *cards.Card {
	typeLine, oracleText, manaCost := sc.TypeLine, sc.OracleText, sc.ManaCost
	if len(sc.CardFaces) > 0 && oracleText == "" {
		// Multi-faced cards keep per-face text; fold the faces together
		// so mechanic detection sees all of it.
		for _, face := range sc.CardFaces {
			if oracleText != "" {
				oracleText += "\n"
			}
			oracleText += face.OracleText
			if manaCost == "" {
				manaCost = face.ManaCost
			}
		}
		if typeLine == "" {
			typeLine = sc.CardFaces[0].TypeLine
		}
	}

	var identity colors.Identity
	if len(sc.ColorIdentity) > 0 {
		identity = colors.FromSymbols(sc.ColorIdentity)
	} else {
		identity = colors.FromManaCostAndText(manaCost, oracleText)
	}

	card := &cards.Card{
		Name:           sc.Name,
		TypeLine:       typeLine,
		OracleText:     oracleText,
		SetCode:        sc.SetCode,
		ManaValue:      sc.CMC,
		Rarity:         sc.Rarity,
		Identity:       identity,
		Mechanics:      cards.DetectMechanics(oracleText),
		CommanderLegal: sc.Legalities.Commander == "legal",
		Price:          sc.Prices.USDValue(),
	}
	card.Archetypes = cards.DetectArchetypes(typeLine, oracleText, sc.CMC)

	if t, err := time.Parse("2006-01-02", sc.ReleasedAt); err == nil {
		card.ReleasedAt = t
	}
	return card
}

// USDValue parses the USD price string, nil when absent or malformed.
func (p Prices) USDValue() *float64 {
	if p.USD == nil {
		return nil
	}
	v, err := strconv.ParseFloat(*p.USD, 64)
	if err != nil {
		return nil
	}
	return &v
}

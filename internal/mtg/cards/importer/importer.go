// Package importer loads the Scryfall oracle-card corpus into the local
// store, resolving color identity, mechanics, and archetype flags at
// import time.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards/scryfall"
	"github.com/mattgraham93/mtgecorec-sub000/internal/storage"
)

// batchSize bounds the upsert transaction size during streaming import.
const batchSize = 500

// CardSaver persists batches of card records.
type CardSaver interface {
	SaveCards(ctx context.Context, batch []*cards.Card) error
}

var _ CardSaver = (*storage.Store)(nil)

// Importer streams Scryfall bulk data into the card store.
type Importer struct {
	client *scryfall.Client
	store  CardSaver
	logger *slog.Logger
}

// New creates an importer. A nil client gets the default Scryfall client.
func New(client *scryfall.Client, store CardSaver, logger *slog.Logger) *Importer {
	if client == nil {
		client = scryfall.NewClient()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{client: client, store: store, logger: logger}
}

// ImportBulk downloads the current oracle-cards bulk file and saves every
// card. Returns the number of cards imported.
func (i *Importer) ImportBulk(ctx context.Context) (int, error) {
	uri, err := i.client.OracleCardsURI(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolving bulk data: %w", err)
	}
	i.logger.Info("importing oracle cards", "uri", uri)

	count, err := i.importStream(ctx, func(handle func(*scryfall.Card) error) error {
		return i.client.StreamBulkFile(ctx, uri, handle)
	})
	if err != nil {
		return count, fmt.Errorf("streaming bulk file: %w", err)
	}

	i.logger.Info("oracle card import complete", "cards", count)
	return count, nil
}

// ImportFile imports a previously downloaded bulk JSON file.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening bulk file: %w", err)
	}
	defer func() { _ = f.Close() }()

	count, err := i.importStream(ctx, func(handle func(*scryfall.Card) error) error {
		return scryfall.DecodeBulkStream(ctx, f, handle)
	})
	if err != nil {
		return count, fmt.Errorf("decoding bulk file %s: %w", path, err)
	}

	i.logger.Info("bulk file import complete", "path", path, "cards", count)
	return count, nil
}

// importStream converts and saves cards from a bulk stream in batches.
func (i *Importer) importStream(ctx context.Context, stream func(func(*scryfall.Card) error) error) (int, error) {
	var count int
	batch := make([]*cards.Card, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.store.SaveCards(ctx, batch); err != nil {
			return fmt.Errorf("saving batch: %w", err)
		}
		count += len(batch)
		batch = batch[:0]
		return nil
	}

	err := stream(func(sc *scryfall.Card) error {
		batch = append(batch, sc.ToCard())
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, flush()
}

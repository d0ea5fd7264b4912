package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

const dateLayout = "2006-01-02"

// Store provides card corpus and combo-card persistence.
type Store struct {
	db     *DB
	logger *slog.Logger
}

// NewStore creates a Store on an open database.
func NewStore(db *DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

const cardColumns = `name, set_code, released_at, type_line, oracle_text, mana_value,
	rarity, color_identity, mechanics, archetypes,
	is_infinite_combo, is_combo_piece, commander_legal, price_usd`

// SaveCard inserts or updates one printing.
func (s *Store) SaveCard(ctx context.Context, card *cards.Card) error {
	query := `
		INSERT INTO cards (` + cardColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name, set_code) DO UPDATE SET
			released_at = excluded.released_at,
			type_line = excluded.type_line,
			oracle_text = excluded.oracle_text,
			mana_value = excluded.mana_value,
			rarity = excluded.rarity,
			color_identity = excluded.color_identity,
			mechanics = excluded.mechanics,
			archetypes = excluded.archetypes,
			is_infinite_combo = excluded.is_infinite_combo,
			is_combo_piece = excluded.is_combo_piece,
			commander_legal = excluded.commander_legal,
			price_usd = excluded.price_usd,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.db.Conn().ExecContext(ctx, query,
		card.Name, card.SetCode, releasedAtValue(card.ReleasedAt),
		card.TypeLine, card.OracleText, card.ManaValue,
		card.Rarity, encodeIdentity(card.Identity),
		strings.Join(card.Mechanics, ","), strings.Join(card.Archetypes.Active(), ","),
		card.IsInfiniteCombo, card.IsComboPiece, card.CommanderLegal, card.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to save card %q: %w", card.Name, err)
	}
	return nil
}

// SaveCards upserts a batch of printings in one transaction.
func (s *Store) SaveCards(ctx context.Context, batch []*cards.Card) error {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO cards (` + cardColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name, set_code) DO UPDATE SET
			released_at = excluded.released_at,
			type_line = excluded.type_line,
			oracle_text = excluded.oracle_text,
			mana_value = excluded.mana_value,
			rarity = excluded.rarity,
			color_identity = excluded.color_identity,
			mechanics = excluded.mechanics,
			archetypes = excluded.archetypes,
			is_infinite_combo = excluded.is_infinite_combo,
			is_combo_piece = excluded.is_combo_piece,
			commander_legal = excluded.commander_legal,
			price_usd = excluded.price_usd,
			updated_at = CURRENT_TIMESTAMP
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare card upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, card := range batch {
		if card == nil || card.Name == "" {
			continue
		}
		_, err := stmt.ExecContext(ctx,
			card.Name, card.SetCode, releasedAtValue(card.ReleasedAt),
			card.TypeLine, card.OracleText, card.ManaValue,
			card.Rarity, encodeIdentity(card.Identity),
			strings.Join(card.Mechanics, ","), strings.Join(card.Archetypes.Active(), ","),
			card.IsInfiniteCombo, card.IsComboPiece, card.CommanderLegal, card.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to save card %q: %w", card.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card batch: %w", err)
	}
	return nil
}

// AllCards returns every Commander-legal printing in the corpus.
func (s *Store) AllCards(ctx context.Context) ([]*cards.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE commander_legal = 1
		ORDER BY name ASC, set_code ASC
	`

	rows, err := s.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// SearchLeads returns lead-eligible cards matching the given name:
// legendary creatures, legendary planeswalkers, or cards whose rules text
// allows them to be a commander. Exact name matches sort first, then
// newest printings, so callers taking the first match get a stable pick.
func (s *Store) SearchLeads(ctx context.Context, name string) ([]*cards.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE commander_legal = 1
		  AND name LIKE ?
		  AND (
			(type_line LIKE '%Legendary%'
			 AND (type_line LIKE '%Creature%' OR type_line LIKE '%Planeswalker%'))
			OR oracle_text LIKE '%can be your commander%'
		  )
		ORDER BY
			CASE WHEN LOWER(name) = LOWER(?) THEN 0 ELSE 1 END,
			released_at DESC,
			name ASC,
			set_code ASC
	`

	rows, err := s.db.Conn().QueryContext(ctx, query, "%"+name+"%", name)
	if err != nil {
		return nil, fmt.Errorf("failed to search leads for %q: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// SaveComboCards records card names as known combo pieces. Names already
// marked infinite stay infinite.
func (s *Store) SaveComboCards(ctx context.Context, names []string, infinite bool) error {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO combo_cards (name, is_infinite, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			is_infinite = MAX(is_infinite, excluded.is_infinite),
			updated_at = CURRENT_TIMESTAMP
	`
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, name, infinite); err != nil {
			return fmt.Errorf("failed to save combo card %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit combo cards: %w", err)
	}
	return nil
}

// ComboNames returns the known combo-card names and the subset flagged as
// infinite-combo pieces.
func (s *Store) ComboNames(ctx context.Context) (known, infinite []string, err error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT name, is_infinite FROM combo_cards ORDER BY name ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get combo cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var isInfinite bool
		if err := rows.Scan(&name, &isInfinite); err != nil {
			return nil, nil, fmt.Errorf("failed to scan combo card: %w", err)
		}
		known = append(known, name)
		if isInfinite {
			infinite = append(infinite, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating combo cards: %w", err)
	}
	return known, infinite, nil
}

// CardCount returns the number of stored printings.
func (s *Store) CardCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

func scanCards(rows *sql.Rows) ([]*cards.Card, error) {
	var out []*cards.Card
	for rows.Next() {
		var (
			card       cards.Card
			releasedAt sql.NullString
			identity   string
			mechanics  string
			archetypes string
		)
		err := rows.Scan(
			&card.Name, &card.SetCode, &releasedAt,
			&card.TypeLine, &card.OracleText, &card.ManaValue,
			&card.Rarity, &identity, &mechanics, &archetypes,
			&card.IsInfiniteCombo, &card.IsComboPiece, &card.CommanderLegal, &card.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		if releasedAt.Valid {
			if t, err := time.Parse(dateLayout, releasedAt.String); err == nil {
				card.ReleasedAt = t
			}
		}
		card.Identity = decodeIdentity(identity)
		card.Mechanics = splitList(mechanics)
		card.Archetypes = cards.ArchetypesFromNames(splitList(archetypes))

		out = append(out, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return out, nil
}

// encodeIdentity stores a color identity as its symbol string, e.g. "BG".
func encodeIdentity(id colors.Identity) string {
	return strings.Join(id.Symbols(), "")
}

func decodeIdentity(encoded string) colors.Identity {
	if encoded == "" {
		return colors.Colorless
	}
	symbols := make([]string, 0, len(encoded))
	for _, r := range encoded {
		symbols = append(symbols, string(r))
	}
	return colors.FromSymbols(symbols)
}

func splitList(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, ",")
}

func releasedAtValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem is a line in users/{uid}/carts. Title, price and image are copied
// from the game when the item is added and are what checkout charges. AddedAt
// (epoch ms) tells a line apart from an earlier line for the same game that
// was already checked out.
type CartItem struct {
	ID       string  `json:"id" firestore:"-"`
	GameID   string  `json:"game_id" firestore:"gameId"`
	Title    string  `json:"title" firestore:"title"`
	Price    float64 `json:"price" firestore:"price"`
	ImageURL string  `json:"image_url" firestore:"imageUrl"`
	Quantity int     `json:"quantity" firestore:"quantity"`
	AddedAt  int64   `json:"added_at" firestore:"addedAt,omitempty"`
}

func (i *CartItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *CartItem) Validate() error {
	if i.GameID == "" {
		return ErrInvalidCartItem
	}
	if i.Quantity < 1 || i.Price < 0 {
		return ErrInvalidCartItem
	}
	return nil
}

// CartTotal sums price*quantity over items and rounds to cents.
func CartTotal(items []*CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// CartSnapshotKey fingerprints this particular cart. Two calls over the same
// lines in any order produce the same key; changing a line, or emptying the
// cart and adding the same games again, changes it.
func CartSnapshotKey(items []*CartItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, strings.Join([]string{
			item.ID,
			item.GameID,
			item.Title,
			decimal.NewFromFloat(item.Price).String(),
			strconv.Itoa(item.Quantity),
			strconv.FormatInt(item.AddedAt, 10),
		}, "\x1f"))
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "\x1e")))
	return hex.EncodeToString(sum[:])
}

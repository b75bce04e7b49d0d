// Package post implements paid social posts. Posting burns tokens to a fee
// address through a ledger transaction, and the price climbs as the total
// number of posts grows.
package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BurnAccount receives the posting fee. Nothing ever spends from this
// address, so the fee is effectively destroyed.
const BurnAccount = "POST_FEE"

// baseCost is the price of a post on an empty board. Every five posts on
// the board raise the price of the next one by a token.
const (
	baseCost      = 10
	costStepEvery = 5
)

// ErrInsufficientFunds indicates the poster can't cover the current cost.
var ErrInsufficientFunds = errors.New("insufficient balance")

// Ledger represents the behavior posting needs from the ledger.
type Ledger interface {
	Balance(address string) int64
	SubmitTransaction(sender string, recipient string, amount uint64) (uint64, error)
}

// Post represents a single paid post on the board.
type Post struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	Content     string    `json:"content"`
	Cost        uint64    `json:"cost"`
	DateCreated time.Time `json:"date_created"`
}

// Core manages the set of posts and their persistence.
type Core struct {
	ledger Ledger
	path   string

	mu    sync.Mutex
	posts []Post
}

// New constructs a post core, loading any previously saved posts. An
// unreadable posts file is treated as an empty board, the same recovery
// policy the ledger applies to its own snapshot.
func New(ledger Ledger, path string) (*Core, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create posts directory: %w", err)
	}

	c := Core{
		ledger: ledger,
		path:   path,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &c, nil
	case err != nil:
		return nil, fmt.Errorf("unable to read posts: %w", err)
	}

	if err := json.Unmarshal(data, &c.posts); err != nil {
		c.posts = nil
	}

	return &c, nil
}

// Cost returns the price of the next post.
func (c *Core) Cost() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cost()
}

// Create charges the address the current cost and places the post on the
// board. The charge is a regular ledger transaction to the burn address,
// so it shows up in balances immediately.
func (c *Core) Create(address string, content string) (Post, error) {
	if address == "" || content == "" {
		return Post{}, errors.New("address and content are required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cost := c.cost()
	if balance := c.ledger.Balance(address); balance < int64(cost) {
		return Post{}, fmt.Errorf("need %d, have %d: %w", cost, balance, ErrInsufficientFunds)
	}

	if _, err := c.ledger.SubmitTransaction(address, BurnAccount, cost); err != nil {
		return Post{}, fmt.Errorf("unable to charge post fee: %w", err)
	}

	post := Post{
		ID:          uuid.NewString(),
		Address:     address,
		Content:     content,
		Cost:        cost,
		DateCreated: time.Now().UTC(),
	}
	c.posts = append(c.posts, post)

	if err := c.save(); err != nil {
		return Post{}, err
	}

	return post, nil
}

// List returns a copy of every post in creation order.
func (c *Core) List() []Post {
	c.mu.Lock()
	defer c.mu.Unlock()

	posts := make([]Post, len(c.posts))
	copy(posts, c.posts)
	return posts
}

// =============================================================================

// cost computes the current price. Callers must hold mu.
func (c *Core) cost() uint64 {
	return baseCost + uint64(len(c.posts)/costStepEvery)
}

// save writes the board durably. Callers must hold mu.
func (c *Core) save() error {
	data, err := json.MarshalIndent(c.posts, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal posts: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("unable to write posts: %w", err)
	}

	return os.Rename(tmp, c.path)
}

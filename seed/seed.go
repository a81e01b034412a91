// Package seed populates a social graph with demo data. Randomness comes
// from an injected source so that the same seed always produces the same
// sequence of writes, which keeps demos and tests reproducible.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/socialgraph-dev/socialgraph"
)

// Writer is the subset of the core's write surface the seeder needs.
type Writer interface {
	UpsertUser(ctx context.Context, u socialgraph.User) error
	CreatePost(ctx context.Context, authorEmail string, in socialgraph.PostInput) (string, error)
	CreateFriendship(ctx context.Context, emailA, emailB string) error
}

// TagCatalog is the fixed tag vocabulary the demo posts draw from.
var TagCatalog = []string{"music", "travel", "sports", "food", "tech"}

// Users is the demo roster. Emails are the identity keys the rest of the
// demo refers to.
var Users = []socialgraph.User{
	{ID: "U001", Name: "Ada", Email: "ada@example.com", RegisteredAt: "2025-01-01"},
	{ID: "U002", Name: "Boris", Email: "boris@example.com", RegisteredAt: "2025-01-02"},
	{ID: "U003", Name: "Carmen", Email: "carmen@example.com", RegisteredAt: "2025-01-03"},
	{ID: "U004", Name: "Dmitri", Email: "dmitri@example.com", RegisteredAt: "2025-01-04"},
	{ID: "U005", Name: "Elsa", Email: "elsa@example.com", RegisteredAt: "2025-01-05"},
	{ID: "U006", Name: "Felix", Email: "felix@example.com", RegisteredAt: "2024-03-01"},
	{ID: "U007", Name: "Greta", Email: "greta@example.com", RegisteredAt: "2024-03-05"},
	{ID: "U008", Name: "Hugo", Email: "hugo@example.com", RegisteredAt: "2024-03-10"},
	{ID: "U009", Name: "Ines", Email: "ines@example.com", RegisteredAt: "2024-03-15"},
	{ID: "U010", Name: "Jonas", Email: "jonas@example.com", RegisteredAt: "2024-03-20"},
	{ID: "U011", Name: "Klara", Email: "klara@example.com", RegisteredAt: "2024-04-01"},
	{ID: "U012", Name: "Lukas", Email: "lukas@example.com", RegisteredAt: "2024-04-05"},
	{ID: "U013", Name: "Marta", Email: "marta@example.com", RegisteredAt: "2024-04-10"},
	{ID: "U014", Name: "Nils", Email: "nils@example.com", RegisteredAt: "2024-04-15"},
	{ID: "U015", Name: "Olga", Email: "olga@example.com", RegisteredAt: "2024-04-20"},
}

var postContents = []string{
	"Just wrapped up my first graph database project, loving it #tech",
	"Exploring the newest language release features #tech",
	"Machine learning on real-world data this week #tech",
	"Any album recommendations for the weekend? #music",
	"Incredible concert last night, the band was on fire #music",
	"New playlist for deep-focus work sessions #music",
	"Heading to the coast this weekend #travel",
	"Museum day in the city, stunning exhibitions #travel",
	"Photos from my mountain trip are up #travel",
	"Grandma's secret lasagna recipe, finally mastered #food",
	"Homemade pizza from scratch tonight #food",
	"Quick dessert idea: chocolate flan #food",
	"Ran my first marathon today, what a feeling #sports",
	"Heavy training block before the next tournament #sports",
	"We won the match today #sports",
}

// PostsPerUser is how many posts the seeder creates for each demo user.
const PostsPerUser = 3

// Seeder writes the demo data set through a Writer.
type Seeder struct {
	store Writer
	rng   *rand.Rand
	now   time.Time
}

// Option customizes a Seeder.
type Option func(*Seeder)

// WithNow fixes the reference time used for post dates. Defaults to
// time.Now; fixing it makes the full output byte-for-byte reproducible.
func WithNow(now time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// New creates a Seeder whose randomness is derived entirely from the given
// seed value.
func New(store Writer, seedValue int64, opts ...Option) *Seeder {
	s := &Seeder{
		store: store,
		rng:   rand.New(rand.NewSource(seedValue)),
		now:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run writes the full demo data set: the user roster, PostsPerUser posts
// per user with 2-3 tags each, and 2-3 friendships per user. Stops at the
// first failed write.
func (s *Seeder) Run(ctx context.Context) error {
	for _, u := range Users {
		if err := s.store.UpsertUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for i, u := range Users {
		for j := 0; j < PostsPerUser; j++ {
			content := postContents[(i*PostsPerUser+j)%len(postContents)]
			daysBack := 1 + s.rng.Intn(365)
			date := s.now.AddDate(0, 0, -daysBack).Format("2006-01-02")

			in := socialgraph.PostInput{
				Content: content,
				Date:    date,
				Likes:   int64(s.rng.Intn(51)),
				Tags:    s.pickTags(2 + s.rng.Intn(2)),
			}
			if _, err := s.store.CreatePost(ctx, u.Email, in); err != nil {
				return fmt.Errorf("seed post for %s: %w", u.Email, err)
			}
		}
	}

	for _, u := range Users {
		others := make([]string, 0, len(Users)-1)
		for _, o := range Users {
			if o.Email != u.Email {
				others = append(others, o.Email)
			}
		}
		wanted := 2 + s.rng.Intn(2)
		for _, friend := range s.pickStrings(others, wanted) {
			if err := s.store.CreateFriendship(ctx, u.Email, friend); err != nil {
				return fmt.Errorf("seed friendship %s-%s: %w", u.Email, friend, err)
			}
		}
	}

	return nil
}

// pickTags samples n distinct tags from the catalog.
func (s *Seeder) pickTags(n int) []string {
	return s.pickStrings(TagCatalog, n)
}

// pickStrings samples n distinct elements of pool without mutating it.
func (s *Seeder) pickStrings(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

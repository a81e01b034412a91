package socialgraph

import (
	"context"
)

// schemaQueries are the uniqueness constraints backing the core's identity
// invariants. All use IF NOT EXISTS, so InitSchema is idempotent.
var schemaQueries = []string{
	`CREATE CONSTRAINT IF NOT EXISTS
	 FOR (u:User) REQUIRE u.email IS UNIQUE`,
	`CREATE CONSTRAINT IF NOT EXISTS
	 FOR (u:User) REQUIRE u.id IS NOT NULL`,
	`CREATE CONSTRAINT IF NOT EXISTS
	 FOR (p:Post) REQUIRE p.id IS UNIQUE`,
	`CREATE CONSTRAINT IF NOT EXISTS
	 FOR (t:Tag) REQUIRE t.name IS UNIQUE`,
}

// InitSchema installs the uniqueness and existence constraints the core
// relies on. Safe to call repeatedly.
func (s *Service) InitSchema(ctx context.Context) error {
	for _, query := range schemaQueries {
		if _, err := s.runner.Run(ctx, query, nil); err != nil {
			return err
		}
	}
	return nil
}

// Reset removes every node and relationship from the database. Admin/demo
// path only; nothing in the core calls it.
func (s *Service) Reset(ctx context.Context) error {
	_, err := s.runner.Run(ctx, `MATCH (n) DETACH DELETE n`, nil)
	return err
}

// FriendDegree pairs a user's display name with their direct friend count.
type FriendDegree struct {
	Name    string
	Friends int64
}

// Stats is a verification snapshot of the graph's contents.
type Stats struct {
	Users    int64
	Posts    int64
	Tags     int64
	TagNames []string
	// MostFriended lists up to five users by descending friend count.
	MostFriended []FriendDegree
}

// Stats gathers node counts, the tag catalog, and the most-connected users.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`MATCH (u:User) RETURN count(u) AS c`, &stats.Users},
		{`MATCH (p:Post) RETURN count(p) AS c`, &stats.Posts},
		{`MATCH (t:Tag) RETURN count(t) AS c`, &stats.Tags},
	}
	for _, count := range counts {
		result, err := s.runner.Run(ctx, count.query, nil)
		if err != nil {
			return nil, err
		}
		rec, err := result.single()
		if err != nil {
			return nil, err
		}
		c, err := intField(rec, "c")
		if err != nil {
			return nil, err
		}
		*count.dest = c
	}

	tagResult, err := s.runner.Run(ctx,
		`MATCH (t:Tag) RETURN t.name AS name ORDER BY name`, nil)
	if err != nil {
		return nil, err
	}
	stats.TagNames, err = collectNames(tagResult)
	if err != nil {
		return nil, err
	}

	const degreeQuery = `
		MATCH (u:User)
		RETURN coalesce(u.name, u.email) AS name,
		       size([(u)-[:FRIEND_OF]-(:User) | 1]) AS friends
		ORDER BY friends DESC
		LIMIT 5`
	degreeResult, err := s.runner.Run(ctx, degreeQuery, nil)
	if err != nil {
		return nil, err
	}
	for _, rec := range degreeResult.Records {
		name, err := stringField(rec, "name")
		if err != nil {
			return nil, err
		}
		friends, err := intField(rec, "friends")
		if err != nil {
			return nil, err
		}
		stats.MostFriended = append(stats.MostFriended, FriendDegree{Name: name, Friends: friends})
	}

	return stats, nil
}

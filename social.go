package socialgraph

import (
	"context"
	"fmt"
)

// CreateFriendship merges the symmetric friendship between two users,
// located by email. Both directed FRIEND_OF edges are merged in a single
// statement, so the "A friend of B implies B friend of A" invariant holds
// after every successful call, and repeating the call creates no duplicate
// edges.
//
// Both users must exist. The underlying MATCH would otherwise yield zero
// rows and merge nothing, so existence is checked up front and the call
// fails fast with ErrNotFound instead of silently doing nothing.
func (s *Service) CreateFriendship(ctx context.Context, emailA, emailB string) error {
	for _, email := range []string{emailA, emailB} {
		ok, err := s.userExists(ctx, email)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("create friendship: user %q: %w", email, ErrNotFound)
		}
	}

	const query = `
		MATCH (a:User {email: $emailA})
		MATCH (b:User {email: $emailB})
		MERGE (a)-[:FRIEND_OF]->(b)
		MERGE (b)-[:FRIEND_OF]->(a)`
	_, err := s.runner.Run(ctx, query, map[string]any{
		"emailA": emailA,
		"emailB": emailB,
	})
	return err
}

// CreateFollow merges the asymmetric follow edge from follower to followee.
// Idempotent by merge semantics. Self-follows are not rejected here; guard
// at the caller if they are undesirable.
func (s *Service) CreateFollow(ctx context.Context, followerEmail, followeeEmail string) error {
	for _, email := range []string{followerEmail, followeeEmail} {
		ok, err := s.userExists(ctx, email)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("create follow: user %q: %w", email, ErrNotFound)
		}
	}

	return MergeRelation(ctx, s.runner,
		&User{Email: followerEmail},
		&User{Email: followeeEmail},
		RelFollows,
	)
}

// MutualFriends returns the display names (name, falling back to email) of
// the distinct users who are friends of both given users, excluding the two
// themselves, ordered ascending.
//
// An empty slice is a valid answer and is also what a lookup of two
// nonexistent users yields: the match is existential, so missing endpoints
// produce zero rows rather than an error.
func (s *Service) MutualFriends(ctx context.Context, emailA, emailB string) ([]string, error) {
	const query = `
		MATCH (a:User {email: $emailA}), (b:User {email: $emailB})
		MATCH (f:User)
		WHERE (a)-[:FRIEND_OF]-(f)
		  AND (b)-[:FRIEND_OF]-(f)
		  AND f <> a
		  AND f <> b
		RETURN DISTINCT coalesce(f.name, f.email) AS name
		ORDER BY name`
	result, err := s.runner.Run(ctx, query, map[string]any{
		"emailA": emailA,
		"emailB": emailB,
	})
	if err != nil {
		return nil, err
	}
	return collectNames(result)
}

// FriendSuggestions returns the display names of users at friendship
// distance exactly two from the given user: friends of friends who are not
// already direct friends and are not the user. No scoring is applied; the
// names are ordered ascending only to make the output deterministic.
func (s *Service) FriendSuggestions(ctx context.Context, email string) ([]string, error) {
	const query = `
		MATCH (u:User {email: $email})-[:FRIEND_OF]-(:User)-[:FRIEND_OF]-(c:User)
		WHERE NOT (u)-[:FRIEND_OF]-(c)
		  AND u <> c
		RETURN DISTINCT coalesce(c.name, c.email) AS name
		ORDER BY name`
	result, err := s.runner.Run(ctx, query, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	return collectNames(result)
}

// collectNames extracts the "name" column from every record.
func collectNames(result *Result) ([]string, error) {
	names := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		name, err := stringField(rec, "name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

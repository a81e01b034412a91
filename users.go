package socialgraph

import (
	"context"
	"fmt"
)

// User is a member of the network. Email is the stable identity key for
// every relationship operation; the opaque ID is application-assigned and
// carried along but never used for lookups.
type User struct {
	ID           string `crud:"property:id"`
	Name         string `crud:"property:name"`
	Email        string `crud:"pk,property:email"`
	RegisteredAt string `crud:"property:registeredAt"`
}

// Tag is a catalog entity: a bare name, unique across the graph, created
// lazily on first reference from a post.
type Tag struct {
	Name string `crud:"pk,property:name"`
}

// UpsertUser creates the user if no node carries the email yet, and
// otherwise overwrites id, name and registration date in place. Idempotent:
// repeating the call with identical input leaves one node in the same final
// state, with the later call's field values winning.
//
// The core does not validate email shape; two intended users sharing an
// email silently converge onto one node.
func (s *Service) UpsertUser(ctx context.Context, u User) error {
	if u.Email == "" {
		return fmt.Errorf("%w: user email must not be empty", ErrQuery)
	}
	return s.users.Save(ctx, &u)
}

// InsertUser creates the user with a plain CREATE, surfacing
// ErrConstraintViolation when the email is already taken. Use UpsertUser
// for the idempotent path.
func (s *Service) InsertUser(ctx context.Context, u User) error {
	if u.Email == "" {
		return fmt.Errorf("%w: user email must not be empty", ErrQuery)
	}
	const query = `
		CREATE (u:User {
			id: $id, name: $name, email: $email,
			registeredAt: $registeredAt, active: true
		})`
	_, err := s.runner.Run(ctx, query, map[string]any{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"registeredAt": u.RegisteredAt,
	})
	return err
}

// FindUser looks a user up by email, returning ErrNotFound when absent.
func (s *Service) FindUser(ctx context.Context, email string) (*User, error) {
	u, err := s.users.FindByKey(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", email, err)
	}
	return u, nil
}

// AllUsers returns every user in the graph, ordered by email.
func (s *Service) AllUsers(ctx context.Context) ([]User, error) {
	const query = `
		MATCH (u:User)
		RETURN u.id AS id, u.name AS name, u.email AS email,
		       u.registeredAt AS registeredAt
		ORDER BY u.email`
	result, err := s.runner.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(result.Records))
	for _, rec := range result.Records {
		email, err := stringField(rec, "email")
		if err != nil {
			return nil, err
		}
		u := User{Email: email}
		// id, name and registeredAt are optional on nodes created outside
		// the upsert path.
		if id, ok := rec["id"].(string); ok {
			u.ID = id
		}
		if name, ok := rec["name"].(string); ok {
			u.Name = name
		}
		if reg, ok := rec["registeredAt"].(string); ok {
			u.RegisteredAt = reg
		}
		users = append(users, u)
	}
	return users, nil
}

// UpsertTag merges a tag node by name. Tags have no other attributes, so
// the operation is a pure create-if-absent.
func (s *Service) UpsertTag(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: tag name must not be empty", ErrQuery)
	}
	_, err := s.runner.Run(ctx,
		`MERGE (t:Tag {name: $name})`,
		map[string]any{"name": name},
	)
	return err
}

// userExists reports whether a user node carries the given email.
func (s *Service) userExists(ctx context.Context, email string) (bool, error) {
	result, err := s.runner.Run(ctx,
		`MATCH (u:User {email: $email}) RETURN count(u) AS c`,
		map[string]any{"email": email},
	)
	if err != nil {
		return false, err
	}
	rec, err := result.single()
	if err != nil {
		return false, err
	}
	c, err := intField(rec, "c")
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

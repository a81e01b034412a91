package socialgraph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Post is a publication owned by exactly one user through a CREATED edge.
// Dates are ISO-8601 YYYY-MM-DD strings throughout the package, so their
// lexicographic order matches chronological order.
type Post struct {
	ID      string `crud:"pk,property:id"`
	Content string `crud:"property:content"`
	Date    string `crud:"property:date"`
	Likes   int64  `crud:"property:likes"`
}

// PostInput carries the caller-supplied fields of a new post. The id is
// never supplied by the caller; CreatePost generates it.
type PostInput struct {
	Content string
	Date    string
	Likes   int64
	Tags    []string
}

// PostSummary is the projected result shape of the post queries.
type PostSummary struct {
	ID      string
	Content string
	Date    string
	Likes   int64
	Tags    []string
}

// RankedPost annotates a post summary with its author's name for the
// top-posts ranking.
type RankedPost struct {
	PostSummary
	Author string
}

// DefaultTopPostsLimit is used by TopPosts when the caller passes a
// non-positive limit.
const DefaultTopPostsLimit = 5

// CreatePost creates a post for the given author inside one atomic
// transaction: the author is matched by email, the post node is merged
// under a freshly generated unique id, the CREATED edge is merged, and one
// Tag node plus HAS_TAG edge is merged per distinct tag. If any step fails,
// including the author not existing, the whole transaction rolls back and no
// post or tag edge survives.
//
// The returned id is generated once per call and never reused on retry;
// callers needing to update the post later must retain it. Duplicate tags
// in the input are collapsed to set semantics before the fan-out.
func (s *Service) CreatePost(ctx context.Context, authorEmail string, in PostInput) (string, error) {
	postID := uuid.NewString()
	tags := dedupeTags(in.Tags)

	err := s.runner.ExecuteWrite(ctx, func(tx Tx) error {
		result, err := tx.Run(ctx,
			`MATCH (u:User {email: $email}) RETURN count(u) AS c`,
			map[string]any{"email": authorEmail},
		)
		if err != nil {
			return err
		}
		rec, err := result.single()
		if err != nil {
			return err
		}
		c, err := intField(rec, "c")
		if err != nil {
			return err
		}
		if c == 0 {
			return fmt.Errorf("create post: author %q: %w", authorEmail, ErrNotFound)
		}

		const query = `
			MATCH (u:User {email: $email})
			MERGE (p:Post {id: $id})
			SET p.content = $content, p.date = $date, p.likes = $likes
			MERGE (u)-[:CREATED]->(p)
			WITH p
			UNWIND $tags AS tag
			MERGE (t:Tag {name: tag})
			MERGE (p)-[:HAS_TAG]->(t)`
		_, err = tx.Run(ctx, query, map[string]any{
			"email":   authorEmail,
			"id":      postID,
			"content": in.Content,
			"date":    in.Date,
			"likes":   in.Likes,
			"tags":    tags,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return postID, nil
}

// UpdatePost overwrites the mutable fields (content, date, likes) of an
// existing post, located by the id CreatePost returned. The tag set is
// additive-only and not touched here. Returns ErrNotFound if no post
// carries the id.
func (s *Service) UpdatePost(ctx context.Context, postID string, in PostInput) error {
	const query = `
		MATCH (p:Post {id: $id})
		SET p.content = $content, p.date = $date, p.likes = $likes
		RETURN p.id AS id`
	result, err := s.runner.Run(ctx, query, map[string]any{
		"id":      postID,
		"content": in.Content,
		"date":    in.Date,
		"likes":   in.Likes,
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return fmt.Errorf("update post %q: %w", postID, ErrNotFound)
	}
	return nil
}

// PostsByUser returns every post created by the user, most recent first,
// each with its distinct tag list. A user with no posts (or no user at all)
// yields an empty slice. Posts sharing a date come back in a stable but
// implementation-defined order.
func (s *Service) PostsByUser(ctx context.Context, email string) ([]PostSummary, error) {
	const query = `
		MATCH (u:User {email: $email})-[:CREATED]->(p:Post)
		OPTIONAL MATCH (p)-[:HAS_TAG]->(t:Tag)
		WITH p, collect(DISTINCT t.name) AS tags
		RETURN p.id AS id, p.content AS content, p.date AS date,
		       p.likes AS likes, tags
		ORDER BY p.date DESC`
	result, err := s.runner.Run(ctx, query, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}

	posts := make([]PostSummary, 0, len(result.Records))
	for _, rec := range result.Records {
		summary, err := decodePostSummary(rec)
		if err != nil {
			return nil, err
		}
		posts = append(posts, summary)
	}
	return posts, nil
}

// TopPosts returns the limit highest-liked posts, annotated with author
// name and tag list, ordered by like count descending. A non-positive limit
// falls back to DefaultTopPostsLimit. The relative order of posts with
// equal like counts is backend-defined; do not rely on it.
func (s *Service) TopPosts(ctx context.Context, limit int) ([]RankedPost, error) {
	if limit <= 0 {
		limit = DefaultTopPostsLimit
	}

	const query = `
		MATCH (p:Post)<-[:CREATED]-(u:User)
		OPTIONAL MATCH (p)-[:HAS_TAG]->(t:Tag)
		WITH p, u, collect(DISTINCT t.name) AS tags
		RETURN p.id AS id, coalesce(u.name, u.email) AS author,
		       p.content AS content, p.date AS date, p.likes AS likes, tags
		ORDER BY p.likes DESC
		LIMIT $limit`
	result, err := s.runner.Run(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedPost, 0, len(result.Records))
	for _, rec := range result.Records {
		summary, err := decodePostSummary(rec)
		if err != nil {
			return nil, err
		}
		author, err := stringField(rec, "author")
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedPost{PostSummary: summary, Author: author})
	}
	return ranked, nil
}

// decodePostSummary maps one query record onto a PostSummary, rejecting
// records missing required fields.
func decodePostSummary(rec Record) (PostSummary, error) {
	id, err := stringField(rec, "id")
	if err != nil {
		return PostSummary{}, err
	}
	content, err := stringField(rec, "content")
	if err != nil {
		return PostSummary{}, err
	}
	date, err := stringField(rec, "date")
	if err != nil {
		return PostSummary{}, err
	}
	likes, err := intField(rec, "likes")
	if err != nil {
		return PostSummary{}, err
	}
	tags, err := stringSliceField(rec, "tags")
	if err != nil {
		return PostSummary{}, err
	}
	return PostSummary{ID: id, Content: content, Date: date, Likes: likes, Tags: tags}, nil
}

// dedupeTags collapses the tag list to set semantics, preserving first-seen
// order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

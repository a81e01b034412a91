package socialgraph

import (
	"context"
	"fmt"
	"regexp"
)

// Relationship types used by the social graph.
const (
	RelFriendOf = "FRIEND_OF"
	RelFollows  = "FOLLOWS"
	RelCreated  = "CREATED"
	RelHasTag   = "HAS_TAG"
)

// relTypePattern restricts relationship types to the conventional
// upper-snake form. The type is interpolated into the query text (Cypher
// has no parameter slot for it), so anything else is rejected outright.
var relTypePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// MergeRelation merges a directed relationship of the given type between
// two existing entities, located by their `crud` merge keys. The MERGE is
// keyed on the endpoint pair and the type, so repeated calls never create
// duplicate edges.
//
// Both endpoints must already exist; the match otherwise yields zero rows
// and the merge silently does nothing, which is why Service operations
// check existence before calling this.
func MergeRelation(ctx context.Context, runner Runner, fromEntity, toEntity any, relType string) error {
	if !relTypePattern.MatchString(relType) {
		return fmt.Errorf("%w: invalid relationship type %q", ErrQuery, relType)
	}

	fromMeta, fromKey, err := keyValue(fromEntity)
	if err != nil {
		return err
	}
	toMeta, toKey, err := keyValue(toEntity)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		MATCH (a:%s {%s: $fromKey})
		MATCH (b:%s {%s: $toKey})
		MERGE (a)-[:%s]->(b)`,
		fromMeta.Label, fromMeta.KeyProp,
		toMeta.Label, toMeta.KeyProp,
		relType,
	)

	_, err = runner.Run(ctx, query, map[string]any{
		"fromKey": fromKey,
		"toKey":   toKey,
	})
	return err
}

package crosspartition

import (
	"context"
	"fmt"
)

// CreateDistinct is the DISTINCT half of spec §4.7's factory dispatch. It
// parses an optional inbound cursor, builds the source stage through
// sourceFactory, restores (or creates) the DistinctMap, and returns the
// variant selected by env.
func CreateDistinct(ctx context.Context, env ExecutionEnvironment, sourceFactory SourceFactory, queryType DistinctQueryType, cursor *string, cfg Config) (Stage, error) {
	if env != Client && env != Compute {
		return nil, badRequest("CreateDistinct", fmt.Sprintf("unknown execution environment: ExecutionEnvironment(%d)", int(env)), "")
	}

	var sourceToken, distinctMapToken *string
	if cursor != nil && *cursor != "" {
		tok, err := parseDistinctContinuationToken(*cursor)
		if err != nil {
			return nil, badRequest("CreateDistinct", "malformed distinct continuation token", *cursor)
		}
		sourceToken, distinctMapToken = tok.SourceToken, tok.DistinctMapToken
	}

	source, err := sourceFactory(ctx, sourceToken)
	if err != nil {
		return nil, err
	}

	distinctMap, err := NewDistinctMap(queryType, distinctMapToken, cfg)
	if err != nil {
		return nil, err
	}

	return createDistinctStage(env, source, distinctMap), nil
}

// CreateGroupBy is the GROUP BY half of spec §4.7's factory dispatch.
func CreateGroupBy(ctx context.Context, env ExecutionEnvironment, sourceFactory SourceFactory, aliases []string, aggregates []AliasAggregate, hasSelectValue bool, cursor *string, cfg Config) (Stage, error) {
	if env != Client && env != Compute {
		return nil, badRequest("CreateGroupBy", fmt.Sprintf("unknown execution environment: ExecutionEnvironment(%d)", int(env)), "")
	}

	var sourceToken, tableToken *string
	if cursor != nil && *cursor != "" {
		tok, err := parseGroupByContinuationToken(*cursor)
		if err != nil {
			return nil, badRequest("CreateGroupBy", "malformed group-by continuation token", *cursor)
		}
		sourceToken, tableToken = tok.SourceToken, tok.GroupingTableToken
	}

	source, err := sourceFactory(ctx, sourceToken)
	if err != nil {
		return nil, err
	}

	var table *GroupingTable
	if tableToken != nil && *tableToken != "" {
		table, err = RestoreGroupingTable(*tableToken, aliases, aggregates, hasSelectValue, cfg)
		if err != nil {
			return nil, err
		}
	} else {
		table = NewGroupingTable(aliases, aggregates, hasSelectValue, cfg)
	}

	return createGroupByStage(env, source, table), nil
}

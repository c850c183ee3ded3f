package dynamo

import (
	"context"

	"coffee-chronicles/domain"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	dynamodbv2 "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const GSI1 = "GSI1"

// Item is a raw DynamoDB row. Callers unmarshal with attributevalue.UnmarshalMap.
type Item = map[string]types.AttributeValue

// API is the subset of the DynamoDB client the store uses. Tests substitute an
// in-memory implementation.
type API interface {
	GetItem(ctx context.Context, params *dynamodbv2.GetItemInput, optFns ...func(*dynamodbv2.Options)) (*dynamodbv2.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodbv2.PutItemInput, optFns ...func(*dynamodbv2.Options)) (*dynamodbv2.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodbv2.UpdateItemInput, optFns ...func(*dynamodbv2.Options)) (*dynamodbv2.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodbv2.DeleteItemInput, optFns ...func(*dynamodbv2.Options)) (*dynamodbv2.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodbv2.QueryInput, optFns ...func(*dynamodbv2.Options)) (*dynamodbv2.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodbv2.ScanInput, optFns ...func(*dynamodbv2.Options)) (*dynamodbv2.ScanOutput, error)
}

type (
	// Store is the generic typed access layer over the composite-key tables.
	// Every failure from the underlying client comes back wrapped in a single
	// *domain.DataAccessError carrying the cause.
	Store interface {
		// GetItem returns the item, or nil without error when it does not exist.
		GetItem(ctx context.Context, table, pk, sk string) (Item, error)
		// PutItem is an unconditional upsert; the item must carry its own keys.
		PutItem(ctx context.Context, table string, item any) error
		// UpdateItem applies a partial SET of the given attribute changes.
		UpdateItem(ctx context.Context, table, pk, sk string, changes map[string]any) error
		// DeleteItem is unconditional; deleting a missing item is not an error.
		DeleteItem(ctx context.Context, table, pk, sk string) error
		// QueryIndex reads one GSI1 partition, optionally pinned to a sort key.
		// Returns an empty slice, never an error, when nothing matches.
		QueryIndex(ctx context.Context, table, index, pk string, sk string, ascending bool) ([]Item, error)
		QueryByPK(ctx context.Context, table, pk string, ascending bool) ([]Item, error)
		ScanAll(ctx context.Context, table string) ([]Item, error)
	}

	store struct {
		ddb API
	}
)

func NewStore(ddb API) Store {
	return &store{ddb: ddb}
}

func (s *store) GetItem(ctx context.Context, table, pk, sk string) (Item, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodbv2.GetItemInput{
		TableName: &table,
		Key:       primaryKey(pk, sk),
	})
	if err != nil {
		return nil, &domain.DataAccessError{Op: "GetItem", Table: table, Err: err}
	}
	if out.Item == nil {
		return nil, nil
	}
	return out.Item, nil
}

func (s *store) PutItem(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return &domain.DataAccessError{Op: "PutItem", Table: table, Err: err}
	}
	_, err = s.ddb.PutItem(ctx, &dynamodbv2.PutItemInput{
		TableName: &table,
		Item:      av,
	})
	if err != nil {
		return &domain.DataAccessError{Op: "PutItem", Table: table, Err: err}
	}
	return nil
}

func (s *store) UpdateItem(ctx context.Context, table, pk, sk string, changes map[string]any) error {
	var update expression.UpdateBuilder
	for name, value := range changes {
		update = update.Set(expression.Name(name), expression.Value(value))
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return &domain.DataAccessError{Op: "UpdateItem", Table: table, Err: err}
	}
	_, err = s.ddb.UpdateItem(ctx, &dynamodbv2.UpdateItemInput{
		TableName:                 &table,
		Key:                       primaryKey(pk, sk),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return &domain.DataAccessError{Op: "UpdateItem", Table: table, Err: err}
	}
	return nil
}

func (s *store) DeleteItem(ctx context.Context, table, pk, sk string) error {
	_, err := s.ddb.DeleteItem(ctx, &dynamodbv2.DeleteItemInput{
		TableName: &table,
		Key:       primaryKey(pk, sk),
	})
	if err != nil {
		return &domain.DataAccessError{Op: "DeleteItem", Table: table, Err: err}
	}
	return nil
}

func (s *store) QueryIndex(ctx context.Context, table, index, pk string, sk string, ascending bool) ([]Item, error) {
	key := expression.KeyEqual(expression.Key("GSI1PK"), expression.Value(pk))
	if sk != "" {
		key = key.And(expression.KeyEqual(expression.Key("GSI1SK"), expression.Value(sk)))
	}
	expr, err := expression.NewBuilder().WithKeyCondition(key).Build()
	if err != nil {
		return nil, &domain.DataAccessError{Op: "Query", Table: table, Err: err}
	}
	return s.queryAll(ctx, table, &dynamodbv2.QueryInput{
		TableName:                 &table,
		IndexName:                 &index,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          &ascending,
	})
}

func (s *store) QueryByPK(ctx context.Context, table, pk string, ascending bool) ([]Item, error) {
	key := expression.KeyEqual(expression.Key("PK"), expression.Value(pk))
	expr, err := expression.NewBuilder().WithKeyCondition(key).Build()
	if err != nil {
		return nil, &domain.DataAccessError{Op: "Query", Table: table, Err: err}
	}
	return s.queryAll(ctx, table, &dynamodbv2.QueryInput{
		TableName:                 &table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          &ascending,
	})
}

// queryAll follows LastEvaluatedKey until the partition is exhausted.
func (s *store) queryAll(ctx context.Context, table string, input *dynamodbv2.QueryInput) ([]Item, error) {
	items := []Item{}
	for {
		out, err := s.ddb.Query(ctx, input)
		if err != nil {
			return nil, &domain.DataAccessError{Op: "Query", Table: table, Err: err}
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *store) ScanAll(ctx context.Context, table string) ([]Item, error) {
	items := []Item{}
	input := &dynamodbv2.ScanInput{TableName: &table}
	for {
		out, err := s.ddb.Scan(ctx, input)
		if err != nil {
			return nil, &domain.DataAccessError{Op: "Scan", Table: table, Err: err}
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func primaryKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

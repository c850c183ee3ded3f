package dynamo

import (
	"context"
	"errors"
	"testing"

	"coffee-chronicles/domain"

	dynamodbv2 "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI lets each test script the client calls it cares about.
type fakeAPI struct {
	getItem    func(*dynamodbv2.GetItemInput) (*dynamodbv2.GetItemOutput, error)
	putItem    func(*dynamodbv2.PutItemInput) (*dynamodbv2.PutItemOutput, error)
	updateItem func(*dynamodbv2.UpdateItemInput) (*dynamodbv2.UpdateItemOutput, error)
	deleteItem func(*dynamodbv2.DeleteItemInput) (*dynamodbv2.DeleteItemOutput, error)
	query      func(*dynamodbv2.QueryInput) (*dynamodbv2.QueryOutput, error)
	scan       func(*dynamodbv2.ScanInput) (*dynamodbv2.ScanOutput, error)
}

func (f *fakeAPI) GetItem(_ context.Context, params *dynamodbv2.GetItemInput, _ ...func(*dynamodbv2.Options)) (*dynamodbv2.GetItemOutput, error) {
	return f.getItem(params)
}

func (f *fakeAPI) PutItem(_ context.Context, params *dynamodbv2.PutItemInput, _ ...func(*dynamodbv2.Options)) (*dynamodbv2.PutItemOutput, error) {
	return f.putItem(params)
}

func (f *fakeAPI) UpdateItem(_ context.Context, params *dynamodbv2.UpdateItemInput, _ ...func(*dynamodbv2.Options)) (*dynamodbv2.UpdateItemOutput, error) {
	return f.updateItem(params)
}

func (f *fakeAPI) DeleteItem(_ context.Context, params *dynamodbv2.DeleteItemInput, _ ...func(*dynamodbv2.Options)) (*dynamodbv2.DeleteItemOutput, error) {
	return f.deleteItem(params)
}

func (f *fakeAPI) Query(_ context.Context, params *dynamodbv2.QueryInput, _ ...func(*dynamodbv2.Options)) (*dynamodbv2.QueryOutput, error) {
	return f.query(params)
}

func (f *fakeAPI) Scan(_ context.Context, params *dynamodbv2.ScanInput, _ ...func(*dynamodbv2.Options)) (*dynamodbv2.ScanOutput, error) {
	return f.scan(params)
}

func stringItem(pairs map[string]string) Item {
	item := Item{}
	for k, v := range pairs {
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	return item
}

func TestGetItemMissingReturnsNilNil(t *testing.T) {
	store := NewStore(&fakeAPI{
		getItem: func(*dynamodbv2.GetItemInput) (*dynamodbv2.GetItemOutput, error) {
			return &dynamodbv2.GetItemOutput{Item: nil}, nil
		},
	})

	item, err := store.GetItem(context.Background(), "coffee-dates", "COFFEE_DATE#missing", "METADATA")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGetItemSendsCompositeKey(t *testing.T) {
	var gotKey map[string]types.AttributeValue
	store := NewStore(&fakeAPI{
		getItem: func(in *dynamodbv2.GetItemInput) (*dynamodbv2.GetItemOutput, error) {
			gotKey = in.Key
			return &dynamodbv2.GetItemOutput{Item: stringItem(map[string]string{"id": "cd-1"})}, nil
		},
	})

	item, err := store.GetItem(context.Background(), "coffee-dates", "COFFEE_DATE#cd-1", "METADATA")
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, "COFFEE_DATE#cd-1", gotKey["PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "METADATA", gotKey["SK"].(*types.AttributeValueMemberS).Value)
}

func TestGetItemWrapsClientError(t *testing.T) {
	cause := errors.New("throttled")
	store := NewStore(&fakeAPI{
		getItem: func(*dynamodbv2.GetItemInput) (*dynamodbv2.GetItemOutput, error) {
			return nil, cause
		},
	})

	_, err := store.GetItem(context.Background(), "coffee-dates", "COFFEE_DATE#cd-1", "METADATA")
	require.Error(t, err)

	var daErr *domain.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "GetItem", daErr.Op)
	assert.Equal(t, "coffee-dates", daErr.Table)
	assert.True(t, errors.Is(err, cause))
}

func TestPutItemMarshalsStruct(t *testing.T) {
	var gotItem Item
	store := NewStore(&fakeAPI{
		putItem: func(in *dynamodbv2.PutItemInput) (*dynamodbv2.PutItemOutput, error) {
			gotItem = in.Item
			return &dynamodbv2.PutItemOutput{}, nil
		},
	})

	record := struct {
		PK string `dynamodbav:"PK"`
		SK string `dynamodbav:"SK"`
		ID string `dynamodbav:"id"`
	}{PK: "PHOTO#p-1", SK: "METADATA", ID: "p-1"}

	require.NoError(t, store.PutItem(context.Background(), "photos", record))
	assert.Equal(t, "PHOTO#p-1", gotItem["PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "p-1", gotItem["id"].(*types.AttributeValueMemberS).Value)
}

func TestUpdateItemBuildsSetExpression(t *testing.T) {
	var gotInput *dynamodbv2.UpdateItemInput
	store := NewStore(&fakeAPI{
		updateItem: func(in *dynamodbv2.UpdateItemInput) (*dynamodbv2.UpdateItemOutput, error) {
			gotInput = in
			return &dynamodbv2.UpdateItemOutput{}, nil
		},
	})

	err := store.UpdateItem(context.Background(), "photos", "PHOTO#p-1", "METADATA", map[string]any{
		"coffeeDateId": "cd-1",
	})
	require.NoError(t, err)

	require.NotNil(t, gotInput.UpdateExpression)
	assert.Contains(t, *gotInput.UpdateExpression, "SET")
	assert.Contains(t, gotInput.ExpressionAttributeNames, "#0")
	assert.Equal(t, "coffeeDateId", gotInput.ExpressionAttributeNames["#0"])
}

func TestDeleteItemWrapsClientError(t *testing.T) {
	cause := errors.New("access denied")
	store := NewStore(&fakeAPI{
		deleteItem: func(*dynamodbv2.DeleteItemInput) (*dynamodbv2.DeleteItemOutput, error) {
			return nil, cause
		},
	})

	err := store.DeleteItem(context.Background(), "photos", "PHOTO#p-1", "METADATA")
	require.Error(t, err)

	var daErr *domain.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "DeleteItem", daErr.Op)
}

func TestQueryIndexFollowsPagination(t *testing.T) {
	pages := 0
	store := NewStore(&fakeAPI{
		query: func(in *dynamodbv2.QueryInput) (*dynamodbv2.QueryOutput, error) {
			pages++
			if pages == 1 {
				assert.Nil(t, in.ExclusiveStartKey)
				return &dynamodbv2.QueryOutput{
					Items:            []Item{stringItem(map[string]string{"id": "cd-1"})},
					LastEvaluatedKey: stringItem(map[string]string{"PK": "COFFEE_DATE#cd-1"}),
				}, nil
			}
			assert.NotNil(t, in.ExclusiveStartKey)
			return &dynamodbv2.QueryOutput{
				Items: []Item{stringItem(map[string]string{"id": "cd-2"})},
			}, nil
		},
	})

	items, err := store.QueryIndex(context.Background(), "coffee-dates", GSI1, "COFFEE_DATES", "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Len(t, items, 2)
}

func TestQueryIndexEmptyPartition(t *testing.T) {
	store := NewStore(&fakeAPI{
		query: func(*dynamodbv2.QueryInput) (*dynamodbv2.QueryOutput, error) {
			return &dynamodbv2.QueryOutput{Items: []Item{}}, nil
		},
	})

	items, err := store.QueryIndex(context.Background(), "photos", GSI1, "COFFEE_DATE#cd-1", "", true)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestQueryIndexSetsIndexAndDirection(t *testing.T) {
	var gotInput *dynamodbv2.QueryInput
	store := NewStore(&fakeAPI{
		query: func(in *dynamodbv2.QueryInput) (*dynamodbv2.QueryOutput, error) {
			gotInput = in
			return &dynamodbv2.QueryOutput{}, nil
		},
	})

	_, err := store.QueryIndex(context.Background(), "coffee-dates", GSI1, "COFFEE_DATES", "", false)
	require.NoError(t, err)

	require.NotNil(t, gotInput.IndexName)
	assert.Equal(t, GSI1, *gotInput.IndexName)
	require.NotNil(t, gotInput.ScanIndexForward)
	assert.False(t, *gotInput.ScanIndexForward)
}

func TestScanAllFollowsPagination(t *testing.T) {
	pages := 0
	store := NewStore(&fakeAPI{
		scan: func(*dynamodbv2.ScanInput) (*dynamodbv2.ScanOutput, error) {
			pages++
			if pages == 1 {
				return &dynamodbv2.ScanOutput{
					Items:            []Item{stringItem(map[string]string{"id": "p-1"})},
					LastEvaluatedKey: stringItem(map[string]string{"PK": "PHOTO#p-1"}),
				}, nil
			}
			return &dynamodbv2.ScanOutput{Items: []Item{stringItem(map[string]string{"id": "p-2"})}}, nil
		},
	})

	items, err := store.ScanAll(context.Background(), "photos")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

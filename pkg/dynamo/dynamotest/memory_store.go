// Package dynamotest provides an in-memory dynamo.Store for service tests.
package dynamotest

import (
	"context"
	"sort"
	"sync"

	"coffee-chronicles/domain"
	"coffee-chronicles/pkg/dynamo"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]map[string]dynamo.Item

	// FailOps injects a failure for a given operation name ("GetItem",
	// "PutItem", "UpdateItem", "DeleteItem", "Query", "Scan").
	FailOps map[string]error
}

var _ dynamo.Store = &MemoryStore{}

func New() *MemoryStore {
	return &MemoryStore{
		tables:  make(map[string]map[string]dynamo.Item),
		FailOps: make(map[string]error),
	}
}

func (m *MemoryStore) fail(op, table string) error {
	if err, ok := m.FailOps[op]; ok {
		return &domain.DataAccessError{Op: op, Table: table, Err: err}
	}
	return nil
}

func (m *MemoryStore) GetItem(_ context.Context, table, pk, sk string) (dynamo.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetItem", table); err != nil {
		return nil, err
	}
	item, ok := m.tables[table][pk+"|"+sk]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MemoryStore) PutItem(_ context.Context, table string, item any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("PutItem", table); err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return &domain.DataAccessError{Op: "PutItem", Table: table, Err: err}
	}
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]dynamo.Item)
	}
	m.tables[table][stringAttr(av, "PK")+"|"+stringAttr(av, "SK")] = av
	return nil
}

func (m *MemoryStore) UpdateItem(_ context.Context, table, pk, sk string, changes map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateItem", table); err != nil {
		return err
	}
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]dynamo.Item)
	}
	item, ok := m.tables[table][pk+"|"+sk]
	if !ok {
		// DynamoDB UpdateItem upserts
		item = dynamo.Item{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		}
	}
	for name, value := range changes {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return &domain.DataAccessError{Op: "UpdateItem", Table: table, Err: err}
		}
		item[name] = av
	}
	m.tables[table][pk+"|"+sk] = item
	return nil
}

func (m *MemoryStore) DeleteItem(_ context.Context, table, pk, sk string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteItem", table); err != nil {
		return err
	}
	delete(m.tables[table], pk+"|"+sk)
	return nil
}

func (m *MemoryStore) QueryIndex(_ context.Context, table, _ string, pk string, sk string, ascending bool) ([]dynamo.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Query", table); err != nil {
		return nil, err
	}
	items := []dynamo.Item{}
	for _, item := range m.tables[table] {
		if stringAttr(item, "GSI1PK") != pk {
			continue
		}
		if sk != "" && stringAttr(item, "GSI1SK") != sk {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		less := stringAttr(items[i], "GSI1SK") < stringAttr(items[j], "GSI1SK")
		if ascending {
			return less
		}
		return !less
	})
	return items, nil
}

func (m *MemoryStore) QueryByPK(_ context.Context, table, pk string, ascending bool) ([]dynamo.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Query", table); err != nil {
		return nil, err
	}
	items := []dynamo.Item{}
	for _, item := range m.tables[table] {
		if stringAttr(item, "PK") == pk {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		less := stringAttr(items[i], "SK") < stringAttr(items[j], "SK")
		if ascending {
			return less
		}
		return !less
	})
	return items, nil
}

func (m *MemoryStore) ScanAll(_ context.Context, table string) ([]dynamo.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Scan", table); err != nil {
		return nil, err
	}
	items := []dynamo.Item{}
	for _, item := range m.tables[table] {
		items = append(items, item)
	}
	return items, nil
}

// Len reports how many items a table holds.
func (m *MemoryStore) Len(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table])
}

func stringAttr(item dynamo.Item, name string) string {
	if av, ok := item[name].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}

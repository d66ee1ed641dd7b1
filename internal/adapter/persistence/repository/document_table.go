package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"poolpro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrAlreadyExists is returned by Create when the id is taken.
var ErrAlreadyExists = interfaces.ErrAlreadyExists

// DynamoAPI is the subset of the DynamoDB client the repositories use.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// documentItem is the stored shape of every aggregate: the entity as a JSON
// document plus the attributes the tables are keyed and indexed on.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id), invoice payments use
//     invoice_id-index (PK: invoice_id) instead
type documentItem struct {
	ID         string `dynamodbav:"id"`
	CustomerID string `dynamodbav:"customer_id,omitempty"`
	InvoiceID  string `dynamodbav:"invoice_id,omitempty"`
	Status     string `dynamodbav:"status,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
	Version    int    `dynamodbav:"version"`
	Doc        string `dynamodbav:"doc"`
}

// keys extracts the indexed attributes of an entity.
type keys struct {
	ID         string
	CustomerID string
	InvoiceID  string
	Status     string
	CreatedAt  time.Time
}

// documentTable stores one aggregate type in one table.
type documentTable[T any] struct {
	ddb       DynamoAPI
	tableName string
	keysOf    func(T) keys

	// version and setVersion are nil for records updated blindly.
	version    func(T) int
	setVersion func(T, int) T
}

func newDocumentTable[T any](ddb DynamoAPI, tableName string, keysOf func(T) keys) *documentTable[T] {
	return &documentTable[T]{ddb: ddb, tableName: tableName, keysOf: keysOf}
}

// versioned makes update conditional on the stored version attribute.
func (t *documentTable[T]) versioned(version func(T) int, setVersion func(T, int) T) *documentTable[T] {
	t.version = version
	t.setVersion = setVersion
	return t
}

func (t *documentTable[T]) toItem(v T) (map[string]types.AttributeValue, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	k := t.keysOf(v)
	it := documentItem{
		ID:         k.ID,
		CustomerID: k.CustomerID,
		InvoiceID:  k.InvoiceID,
		Status:     k.Status,
		CreatedAt:  k.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		Doc:        string(doc),
	}
	if t.version != nil {
		it.Version = t.version(v)
	}
	return attributevalue.MarshalMap(it)
}

func fromItem[T any](raw map[string]types.AttributeValue) (T, documentItem, error) {
	var (
		v  T
		it documentItem
	)
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return v, it, err
	}
	if err := json.Unmarshal([]byte(it.Doc), &v); err != nil {
		return v, it, err
	}
	return v, it, nil
}

func (t *documentTable[T]) create(ctx context.Context, v T) (T, error) {
	var zero T
	av, err := t.toItem(v)
	if err != nil {
		return zero, err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return zero, ErrAlreadyExists
		}
		return zero, err
	}
	return v, nil
}

// update replaces the stored document. A missing item yields the zero value.
// On a versioned table the write only lands when the stored version still
// matches v's, and the returned value carries the next version.
func (t *documentTable[T]) update(ctx context.Context, v T) (T, error) {
	var zero T
	cond := "attribute_exists(#id)"
	names := map[string]string{"#id": "id"}
	var values map[string]types.AttributeValue
	if t.version != nil {
		expected := t.version(v)
		names["#ver"] = "version"
		values = map[string]types.AttributeValue{
			":ver": &types.AttributeValueMemberN{Value: strconv.Itoa(expected)},
		}
		cond = "attribute_exists(#id) AND #ver = :ver"
		if expected == 0 {
			cond = "attribute_exists(#id) AND (attribute_not_exists(#ver) OR #ver = :ver)"
		}
		v = t.setVersion(v, expected+1)
	}
	av, err := t.toItem(v)
	if err != nil {
		return zero, err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                           aws.String(t.tableName),
		Item:                                av,
		ConditionExpression:                 aws.String(cond),
		ExpressionAttributeNames:            names,
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) > 0 {
				return zero, interfaces.ErrVersionConflict
			}
			return zero, nil
		}
		return zero, err
	}
	return v, nil
}

func (t *documentTable[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	out, err := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return zero, err
	}
	if len(out.Item) == 0 {
		return zero, nil
	}
	v, _, err := fromItem[T](out.Item)
	return v, err
}

type stored[T any] struct {
	v         T
	id        string
	createdAt string
}

// collect decodes raw items and orders them by creation time, then id, so
// listings are stable across scans.
func collect[T any](pages [][]map[string]types.AttributeValue) ([]T, error) {
	var all []stored[T]
	for _, page := range pages {
		for _, raw := range page {
			v, it, err := fromItem[T](raw)
			if err != nil {
				return nil, err
			}
			all = append(all, stored[T]{v: v, id: it.ID, createdAt: it.CreatedAt})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].createdAt != all[j].createdAt {
			return all[i].createdAt < all[j].createdAt
		}
		return all[i].id < all[j].id
	})
	out := make([]T, 0, len(all))
	for _, s := range all {
		out = append(out, s.v)
	}
	return out, nil
}

func (t *documentTable[T]) list(ctx context.Context) ([]T, error) {
	p := dynamodb.NewScanPaginator(t.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(t.tableName),
		ConsistentRead: aws.Bool(true),
	})
	var pages [][]map[string]types.AttributeValue
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		pages = append(pages, out.Items)
	}
	return collect[T](pages)
}

// listBy queries a single-attribute GSI named "<attr>-index".
func (t *documentTable[T]) listBy(ctx context.Context, attr, value string) ([]T, error) {
	p := dynamodb.NewQueryPaginator(t.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(t.tableName),
		IndexName:              aws.String(attr + "-index"),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	var pages [][]map[string]types.AttributeValue
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		pages = append(pages, out.Items)
	}
	return collect[T](pages)
}

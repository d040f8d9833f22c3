package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const dynamoMaxAttempts = 3

// DynamoAPI is the part of *dynamodb.Client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore persists carts in a table keyed by session_id. Writes are
// conditional on the version read, so concurrent updates of one cart from
// several instances retry instead of losing quantities.
type DynamoStore struct {
	api   DynamoAPI
	table string
	ttl   time.Duration
	now   func() time.Time
}

func NewDynamoStore(api DynamoAPI, table string, ttl time.Duration) *DynamoStore {
	return &DynamoStore{api: api, table: table, ttl: ttl, now: time.Now}
}

type dynamoLine struct {
	ProductID string    `dynamodbav:"product_id"`
	Name      string    `dynamodbav:"name"`
	Price     string    `dynamodbav:"price"`
	Currency  string    `dynamodbav:"currency"`
	Images    []string  `dynamodbav:"images"`
	Quantity  int       `dynamodbav:"quantity"`
	AddedAt   time.Time `dynamodbav:"added_at"`
}

type dynamoCart struct {
	Session   string       `dynamodbav:"session_id"`
	Version   int64        `dynamodbav:"version"`
	Lines     []dynamoLine `dynamodbav:"lines"`
	UpdatedAt time.Time    `dynamodbav:"updated_at"`
	// epoch seconds, read by the table's TTL setting
	ExpiresAt int64 `dynamodbav:"expires_at,omitempty"`
}

func (s *DynamoStore) Get(ctx context.Context, session string) (*Cart, error) {
	c, _, err := s.load(ctx, session)
	return c, err
}

func (s *DynamoStore) Update(ctx context.Context, session string, fn func(*Cart) error) (*Cart, error) {
	for attempt := 0; attempt < dynamoMaxAttempts; attempt++ {
		c, version, err := s.load(ctx, session)
		if err != nil {
			return nil, err
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		err = s.save(ctx, session, version, c)
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, ErrConflict
}

func (s *DynamoStore) Delete(ctx context.Context, session string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(session),
	})
	return err
}

func (s *DynamoStore) key(session string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"session_id": &types.AttributeValueMemberS{Value: session},
	}
}

func (s *DynamoStore) load(ctx context.Context, session string) (*Cart, int64, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(session),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, 0, err
	}
	if out.Item == nil {
		return New(), 0, nil
	}
	var stored dynamoCart
	if err := attributevalue.UnmarshalMap(out.Item, &stored); err != nil {
		return nil, 0, fmt.Errorf("decode cart %s: %w", session, err)
	}
	lines := make([]Line, 0, len(stored.Lines))
	for _, l := range stored.Lines {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			return nil, 0, fmt.Errorf("decode cart %s: price of %s: %w", session, l.ProductID, err)
		}
		lines = append(lines, Line{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     price,
			Currency:  l.Currency,
			Images:    l.Images,
			Quantity:  l.Quantity,
			AddedAt:   l.AddedAt,
		})
	}
	return FromLines(lines), stored.Version, nil
}

func (s *DynamoStore) save(ctx context.Context, session string, version int64, c *Cart) error {
	now := s.now().UTC()
	stored := dynamoCart{Session: session, Version: version + 1, UpdatedAt: now}
	if s.ttl > 0 {
		stored.ExpiresAt = now.Add(s.ttl).Unix()
	}
	for _, l := range c.Lines() {
		stored.Lines = append(stored.Lines, dynamoLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.String(),
			Currency:  l.Currency,
			Images:    l.Images,
			Quantity:  l.Quantity,
			AddedAt:   l.AddedAt,
		})
	}
	item, err := attributevalue.MarshalMap(stored)
	if err != nil {
		return err
	}
	in := &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}
	if version == 0 {
		in.ConditionExpression = aws.String("attribute_not_exists(session_id)")
	} else {
		in.ConditionExpression = aws.String("version = :v")
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
		}
	}
	_, err = s.api.PutItem(ctx, in)
	return err
}

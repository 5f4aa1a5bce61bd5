// Package dynamo records run summaries in a DynamoDB table.
//
// Table schema:
//   - Partition key: source (string) - where the points came from
//   - Sort key: created_at (number) - Unix nanoseconds of the run
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name kmeans2d-runs \
//	  --attribute-definitions AttributeName=source,AttributeType=S AttributeName=created_at,AttributeType=N \
//	  --key-schema AttributeName=source,KeyType=HASH AttributeName=created_at,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/kmeans2d/codec"
	"github.com/hupe1980/kmeans2d/report"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// ErrDuplicateRun is returned when a run with the same source and timestamp
// was already recorded.
var ErrDuplicateRun = errors.New("run already recorded")

// defaultSource keys summaries that carry no source.
const defaultSource = "-"

// Ledger implements report.Sink on DynamoDB.
type Ledger struct {
	client    DDBClient
	tableName string
	codec     codec.Codec
}

// NewLedger creates a Ledger writing to tableName.
func NewLedger(client DDBClient, tableName string) *Ledger {
	return &Ledger{
		client:    client,
		tableName: tableName,
		codec:     codec.Default,
	}
}

var _ report.Sink = (*Ledger)(nil)

// Publish implements report.Sink. Each run is written once; a second write
// of the same key fails with ErrDuplicateRun.
func (l *Ledger) Publish(ctx context.Context, s *report.Summary) error {
	payload, err := l.codec.Marshal(s)
	if err != nil {
		return err
	}

	_, err = l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.tableName),
		Item: map[string]types.AttributeValue{
			"source":     &types.AttributeValueMemberS{Value: sourceKey(s.Source)},
			"created_at": &types.AttributeValueMemberN{Value: strconv.FormatInt(s.CreatedAt.UnixNano(), 10)},
			"run_id":     &types.AttributeValueMemberS{Value: s.ID},
			"strategy":   &types.AttributeValueMemberS{Value: s.Strategy},
			"outcome":    &types.AttributeValueMemberS{Value: s.Outcome},
			"k":          &types.AttributeValueMemberN{Value: strconv.Itoa(s.K)},
			"n":          &types.AttributeValueMemberN{Value: strconv.Itoa(s.N)},
			"iterations": &types.AttributeValueMemberN{Value: strconv.Itoa(s.Iterations)},
			"elapsed_ns": &types.AttributeValueMemberN{Value: strconv.FormatInt(s.ElapsedNanos, 10)},
			"codec":      &types.AttributeValueMemberS{Value: l.codec.Name()},
			"payload":    &types.AttributeValueMemberS{Value: string(payload)},
		},
		ConditionExpression: aws.String("attribute_not_exists(created_at)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: %s", ErrDuplicateRun, s.ID)
		}
		return fmt.Errorf("failed to put run: %w", err)
	}
	return nil
}

// Latest returns the most recent summaries for source, newest first.
func (l *Ledger) Latest(ctx context.Context, source string, limit int) ([]*report.Summary, error) {
	if limit <= 0 {
		limit = 1
	}

	resp, err := l.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.tableName),
		KeyConditionExpression: aws.String("#src = :src"),
		ExpressionAttributeNames: map[string]string{
			"#src": "source",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":src": &types.AttributeValueMemberS{Value: sourceKey(source)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	out := make([]*report.Summary, 0, len(resp.Items))
	for _, item := range resp.Items {
		s, err := l.decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (l *Ledger) decode(item map[string]types.AttributeValue) (*report.Summary, error) {
	c := l.codec
	if attr, ok := item["codec"].(*types.AttributeValueMemberS); ok {
		byName, ok := codec.ByName(attr.Value)
		if !ok {
			return nil, fmt.Errorf("unknown codec %q", attr.Value)
		}
		c = byName
	}

	payload, ok := item["payload"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("invalid payload attribute in DynamoDB")
	}

	var s report.Summary
	if err := c.Unmarshal([]byte(payload.Value), &s); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &s, nil
}

func sourceKey(source string) string {
	if source == "" {
		return defaultSource
	}
	return source
}

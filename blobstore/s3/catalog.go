package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/arrio/arrio/blobstore"
)

// DDBClient is the subset of the DynamoDB API the catalog uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentCommit is returned when another writer committed the same
// dataset version first.
var ErrConcurrentCommit = errors.New("concurrent catalog commit detected")

// ErrDatasetNotFound is returned when a dataset has no committed versions.
var ErrDatasetNotFound = blobstore.ErrNotFound

// Catalog tracks which blob holds the current version of a named dataset.
// S3 has no compare-and-swap, so the version pointer lives in a DynamoDB
// table with conditional writes; concurrent publishers of the same dataset
// fail cleanly instead of overwriting each other.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: version (number), monotonically increasing
//   - Attribute: blob_name (string), the blob holding that version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name arrio-catalog \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Catalog struct {
	client    DDBClient
	tableName string
}

// NewCatalog creates a Catalog on the given table.
func NewCatalog(client DDBClient, tableName string) *Catalog {
	return &Catalog{client: client, tableName: tableName}
}

// Latest returns the highest committed version of a dataset and the blob
// name it points at. Returns ErrDatasetNotFound for unknown datasets.
func (c *Catalog) Latest(ctx context.Context, dataset string) (uint64, string, error) {
	version, blobName, err := c.latest(ctx, dataset)
	if err != nil {
		return 0, "", err
	}
	if version == 0 {
		return 0, "", ErrDatasetNotFound
	}
	return version, blobName, nil
}

// Commit publishes blobName as the next version of the dataset and returns
// the version it was assigned. Returns ErrConcurrentCommit if another
// writer claimed that version first; the caller may re-read and retry.
func (c *Catalog) Commit(ctx context.Context, dataset, blobName string) (uint64, error) {
	current, _, err := c.latest(ctx, dataset)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"dataset":   &types.AttributeValueMemberS{Value: dataset},
			"version":   &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"blob_name": &types.AttributeValueMemberS{Value: blobName},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentCommit
		}
		return 0, fmt.Errorf("commit dataset version: %w", err)
	}
	return next, nil
}

func (c *Catalog) latest(ctx context.Context, dataset string) (uint64, string, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("dataset = :d"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d": &types.AttributeValueMemberS{Value: dataset},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query catalog: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in catalog item")
	}
	nameAttr, ok := item["blob_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid blob_name attribute in catalog item")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse catalog version: %w", err)
	}
	return version, nameAttr.Value, nil
}

package s3

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func queryOutput(version, blobName string) *dynamodb.QueryOutput {
	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{
				"version":   &types.AttributeValueMemberN{Value: version},
				"blob_name": &types.AttributeValueMemberS{Value: blobName},
			},
		},
	}
}

func TestCatalogLatest(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewCatalog(mockDDB, "arrio-catalog")

	mockDDB.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return *input.TableName == "arrio-catalog"
	})).Return(queryOutput("7", "mnist/v7.mat"), nil).Once()

	version, blobName, err := catalog.Latest(context.Background(), "mnist")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), version)
	assert.Equal(t, "mnist/v7.mat", blobName)
}

func TestCatalogLatestUnknownDataset(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewCatalog(mockDDB, "arrio-catalog")

	mockDDB.On("Query", mock.Anything, mock.Anything).
		Return(&dynamodb.QueryOutput{}, nil).Once()

	_, _, err := catalog.Latest(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestCatalogCommit(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewCatalog(mockDDB, "arrio-catalog")

	mockDDB.On("Query", mock.Anything, mock.Anything).
		Return(queryOutput("3", "mnist/v3.mat"), nil).Once()
	mockDDB.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
		version := input.Item["version"].(*types.AttributeValueMemberN)
		name := input.Item["blob_name"].(*types.AttributeValueMemberS)
		return version.Value == "4" && name.Value == "mnist/v4.mat" &&
			*input.ConditionExpression == "attribute_not_exists(version)"
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	version, err := catalog.Commit(context.Background(), "mnist", "mnist/v4.mat")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), version)
	mockDDB.AssertExpectations(t)
}

func TestCatalogCommitConflict(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewCatalog(mockDDB, "arrio-catalog")

	mockDDB.On("Query", mock.Anything, mock.Anything).
		Return(queryOutput("3", "mnist/v3.mat"), nil).Once()
	mockDDB.On("PutItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{}).Once()

	_, err := catalog.Commit(context.Background(), "mnist", "mnist/v4.mat")
	assert.ErrorIs(t, err, ErrConcurrentCommit)
}

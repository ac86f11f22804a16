package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTables struct {
	existing  map[string]bool
	createErr error
	created   []string
}

func (f *fakeTables) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.existing[aws.ToString(in.TableName)] {
		return &dynamodb.DescribeTableOutput{}, nil
	}
	return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
}

func (f *fakeTables) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, aws.ToString(in.TableName))
	return &dynamodb.CreateTableOutput{}, nil
}

func TestEnsureTables(t *testing.T) {
	f := &fakeTables{existing: map[string]bool{"user_documents": true}}

	created, err := EnsureTables(context.Background(), f, ApplicationsTable("project_applications"), DocumentsTable("user_documents"))
	require.NoError(t, err)
	assert.Equal(t, []string{"project_applications"}, created)
	assert.Equal(t, []string{"project_applications"}, f.created)
}

func TestEnsureTables_CreateError(t *testing.T) {
	f := &fakeTables{createErr: errors.New("access denied")}

	_, err := EnsureTables(context.Background(), f, ApplicationsTable("project_applications"))
	assert.ErrorContains(t, err, "create table project_applications: access denied")
}

func TestEnsureTables_ConcurrentCreate(t *testing.T) {
	f := &fakeTables{createErr: &types.ResourceInUseException{Message: aws.String("in use")}}

	created, err := EnsureTables(context.Background(), f, DocumentsTable("user_documents"))
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestApplicationsTable_Indexes(t *testing.T) {
	in := ApplicationsTable("apps")
	require.Len(t, in.GlobalSecondaryIndexes, 2)
	assert.Equal(t, "id-index", aws.ToString(in.GlobalSecondaryIndexes[0].IndexName))
	assert.Equal(t, "status-index", aws.ToString(in.GlobalSecondaryIndexes[1].IndexName))
	assert.Equal(t, "user_id", aws.ToString(in.KeySchema[0].AttributeName))
}

func TestDocumentsTable_KeyedByUser(t *testing.T) {
	in := DocumentsTable("docs")
	require.Len(t, in.KeySchema, 2)
	assert.Equal(t, "user_id", aws.ToString(in.KeySchema[0].AttributeName))
	assert.Equal(t, types.KeyTypeHash, in.KeySchema[0].KeyType)
	assert.Equal(t, "id", aws.ToString(in.KeySchema[1].AttributeName))
	assert.Equal(t, types.KeyTypeRange, in.KeySchema[1].KeyType)
	assert.Empty(t, in.GlobalSecondaryIndexes)
}

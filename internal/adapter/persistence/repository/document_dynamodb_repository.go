package repository

import (
	"context"
	"slices"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultDocumentsTableName = "user_documents"

type documentItem struct {
	ID          string `dynamodbav:"id"`
	UserID      string `dynamodbav:"user_id"`
	DocKey      string `dynamodbav:"doc_key"`
	FilePath    string `dynamodbav:"file_path"`
	FileName    string `dynamodbav:"file_name"`
	ContentType string `dynamodbav:"content_type,omitempty"`
	SizeBytes   int64  `dynamodbav:"size_bytes"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// DocumentDynamoRepository persists uploaded document records in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: id (string)
//
// Records are append-only: a re-upload adds a new record for the same key.
// Listing reads the base table with ConsistentRead, so an upload is visible to
// the submit that follows it.

type DocumentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IDocumentRepository = (*DocumentDynamoRepository)(nil)

func NewDocumentDynamoRepository(ddb DynamoAPI, tableName string) *DocumentDynamoRepository {
	return &DocumentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, DefaultDocumentsTableName),
	}
}

func (r *DocumentDynamoRepository) Create(ctx context.Context, d entities.Document) (entities.Document, error) {
	av, err := attributevalue.MarshalMap(toDocumentItem(d))
	if err != nil {
		return entities.Document{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Document{}, err
	}
	return d, nil
}

func (r *DocumentDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Document, error) {
	var (
		out      []entities.Document
		startKey map[string]types.AttributeValue
	)
	for {
		page, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			ConsistentRead:         aws.Bool(true),
			KeyConditionExpression: aws.String("#user_id = :user_id"),
			ExpressionAttributeNames: map[string]string{
				"#user_id": "user_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":user_id": str(userID),
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, av := range page.Items {
			var it documentItem
			if err := attributevalue.UnmarshalMap(av, &it); err != nil {
				return nil, err
			}
			out = append(out, fromDocumentItem(it))
		}
		if len(page.LastEvaluatedKey) == 0 {
			slices.SortStableFunc(out, func(a, b entities.Document) int {
				return a.CreatedAt.Compare(b.CreatedAt)
			})
			return out, nil
		}
		startKey = page.LastEvaluatedKey
	}
}

func toDocumentItem(d entities.Document) documentItem {
	return documentItem{
		ID:          d.ID,
		UserID:      d.UserID,
		DocKey:      string(d.DocKey),
		FilePath:    d.FilePath,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   formatTime(d.CreatedAt),
	}
}

func fromDocumentItem(it documentItem) entities.Document {
	return entities.Document{
		ID:          it.ID,
		UserID:      it.UserID,
		DocKey:      entities.DocumentKey(it.DocKey),
		FilePath:    it.FilePath,
		FileName:    it.FileName,
		ContentType: it.ContentType,
		SizeBytes:   it.SizeBytes,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}
